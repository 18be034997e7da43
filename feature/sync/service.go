package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"maintenance-manager/core/glpi"
	"maintenance-manager/core/utils"
	"maintenance-manager/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAlreadyRunning is returned when a sync is requested while another pass
// holds the run lock.
var ErrAlreadyRunning = errors.New("sync already running")

// DefaultPageSize is the GLPI page size used when none is configured.
const DefaultPageSize = 50

// Result summarizes a completed sync pass.
type Result struct {
	ComputersSynced  int    `json:"computers_synced"`
	ComponentsSynced int    `json:"components_synced"`
	Message          string `json:"message"`
}

// Service orchestrates the GLPI sync: it pages through remote computers,
// reconciles each against the local database, replaces component sets, and
// publishes progress to the state tracker. At most one pass runs at a time.
type Service struct {
	client   glpi.Client
	db       *gorm.DB
	state    *StateTracker
	logger   *zap.Logger
	pageSize int

	// runMu is the single-flight guard. It is acquired with TryLock only:
	// a contended attempt reports ErrAlreadyRunning instead of queueing.
	runMu gosync.Mutex
}

// NewService creates a new sync service.
func NewService(client glpi.Client, db *gorm.DB, state *StateTracker, logger *zap.Logger, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		client:   client,
		db:       db,
		state:    state,
		logger:   logger,
		pageSize: pageSize,
	}
}

// State returns the run state tracker.
func (s *Service) State() *StateTracker {
	return s.state
}

// RunExclusive runs a sync pass under the single-flight lock. It fails fast
// with ErrAlreadyRunning when another pass is in flight.
func (s *Service) RunExclusive(ctx context.Context) (*Result, error) {
	if !s.runMu.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer s.runMu.Unlock()

	return s.run(ctx)
}

// TryRunBackground schedules a sync pass on a new goroutine unless one is
// already in flight. It returns immediately; the caller polls the state
// tracker for the outcome. The return value reports whether a run started.
func (s *Service) TryRunBackground() bool {
	if s.state.Snapshot().Running {
		return false
	}
	if !s.runMu.TryLock() {
		return false
	}

	go func() {
		defer s.runMu.Unlock()
		if _, err := s.run(context.Background()); err != nil {
			s.logger.Error("Background sync failed", zap.Error(err))
		}
	}()

	return true
}

// run executes one full sync pass. State finalization (running=false, finish
// timestamp, current id cleared) happens on every exit path.
func (s *Service) run(ctx context.Context) (result *Result, err error) {
	started := time.Now().UTC()
	s.state.Update(func(st *Status) {
		*st = Status{
			Running:   true,
			StartedAt: &started,
			Message:   "Sync in progress",
		}
	})

	defer func() {
		finished := time.Now().UTC()
		s.state.Update(func(st *Status) {
			st.Running = false
			st.FinishedAt = &finished
			st.CurrentGlpiID = nil
		})
	}()

	result, err = s.pass(ctx)
	if err != nil {
		// Best-effort logout; the session may or may not exist at this point.
		_ = s.client.KillSession(ctx)

		s.state.Update(func(st *Status) {
			st.LastError = err.Error()
			st.Message = "Sync failed"
		})
		return nil, err
	}

	s.state.Update(func(st *Status) {
		st.Message = result.Message
	})
	return result, nil
}

// pass pages through GLPI computers and commits each page as one transaction,
// so a later failure loses at most one page of work.
func (s *Service) pass(ctx context.Context) (*Result, error) {
	if err := s.client.InitSession(ctx); err != nil {
		return nil, err
	}

	computersSynced := 0
	componentsSynced := 0

	start := 0
	for {
		page, err := s.client.GetComputers(ctx, start, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching computers at offset %d: %w", start, err)
		}
		if len(page) == 0 {
			break
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			for _, record := range page {
				devices, components, err := s.syncComputer(ctx, tx, record)
				if err != nil {
					return err
				}

				computersSynced += devices
				componentsSynced += components
				s.state.Update(func(st *Status) {
					st.ComputersSynced = computersSynced
					st.ComponentsSynced = componentsSynced
				})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		// A short page signals end of data; don't issue another request.
		if len(page) < s.pageSize {
			break
		}
		start += s.pageSize
	}

	if err := s.client.KillSession(ctx); err != nil {
		s.logger.Warn("GLPI session teardown failed", zap.Error(err))
	}

	msg := fmt.Sprintf("Synced %d computers and %d components", computersSynced, componentsSynced)
	return &Result{
		ComputersSynced:  computersSynced,
		ComponentsSynced: componentsSynced,
		Message:          msg,
	}, nil
}

// syncComputer reconciles a single raw GLPI record and its components.
// It returns the number of computers (0 or 1) and components written.
func (s *Service) syncComputer(ctx context.Context, tx *gorm.DB, record map[string]any) (int, int, error) {
	glpiID := utils.ToInt(record["id"])
	if glpiID == 0 {
		// Malformed record; skipped silently per contract.
		return 0, 0, nil
	}

	s.state.Update(func(st *Status) {
		id := glpiID
		st.CurrentGlpiID = &id
	})

	var computer models.Computer
	err := tx.Where("glpi_id = ?", glpiID).First(&computer).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, fmt.Errorf("looking up computer %d: %w", glpiID, err)
		}
		computer = models.Computer{GlpiID: glpiID}
	}

	name := DropdownString(record["name"])
	if name == "" {
		name = fmt.Sprintf("Computer-%d", glpiID)
	}

	computer.Name = name
	computer.Entity = DropdownString(record["entities_id"])
	computer.Patrimonio = DropdownString(record["otherserial"])
	computer.Serial = DropdownString(record["serial"])
	computer.Location = DropdownString(record["locations_id"])
	computer.Status = DropdownString(record["states_id"])
	computer.GlpiData = models.JSON(record)

	// Flush before children: components reference computer.ID.
	if err := tx.Save(&computer).Error; err != nil {
		return 0, 0, fmt.Errorf("saving computer %d: %w", glpiID, err)
	}

	components, err := s.client.GetAllComponents(ctx, glpiID)
	if err != nil {
		// Isolated failure: this computer keeps its previous components,
		// the pass moves on.
		s.logger.Error("Failed to sync components",
			zap.Int("glpi_id", glpiID),
			zap.Error(err),
		)
		return 1, 0, nil
	}

	if err := tx.Where("computer_id = ?", computer.ID).Delete(&models.Component{}).Error; err != nil {
		return 0, 0, fmt.Errorf("clearing components of computer %d: %w", glpiID, err)
	}

	written := 0
	for _, itemType := range componentTypeOrder(components) {
		for _, item := range components[itemType] {
			component := models.Component{
				ComputerID:    computer.ID,
				ComponentType: strings.TrimPrefix(itemType, "Item_Device"),
				Name:          DropdownString(item["designation"]),
				Manufacturer:  DropdownString(item["manufacturers_id"]),
				Model:         DropdownString(item["devicemodels_id"]),
				Serial:        DropdownString(item["serial"]),
				Capacity:      DropdownString(item["size"]),
				ComponentData: models.JSON(item),
			}
			if err := tx.Create(&component).Error; err != nil {
				return 0, 0, fmt.Errorf("inserting component for computer %d: %w", glpiID, err)
			}
			written++
		}
	}

	return 1, written, nil
}

// componentTypeOrder returns the map's keys in the client's fetch order, with
// any unknown keys appended in sorted order so iteration stays deterministic.
func componentTypeOrder(components map[string][]map[string]any) []string {
	seen := make(map[string]bool, len(components))
	order := make([]string, 0, len(components))

	for _, itemType := range glpi.ComponentTypes() {
		if _, ok := components[itemType]; ok {
			order = append(order, itemType)
			seen[itemType] = true
		}
	}

	var extra []string
	for itemType := range components {
		if !seen[itemType] {
			extra = append(extra, itemType)
		}
	}
	sort.Strings(extra)

	return append(order, extra...)
}
