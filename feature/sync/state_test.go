package sync

import (
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateTracker(t *testing.T) {
	t.Run("Zero Value", func(t *testing.T) {
		tracker := NewStateTracker()

		status := tracker.Snapshot()
		assert.False(t, status.Running)
		assert.Nil(t, status.StartedAt)
		assert.Zero(t, status.ComputersSynced)
	})

	t.Run("Update Merges Fields", func(t *testing.T) {
		tracker := NewStateTracker()
		started := time.Now().UTC()

		tracker.Update(func(st *Status) {
			st.Running = true
			st.StartedAt = &started
		})
		tracker.Update(func(st *Status) {
			st.ComputersSynced = 3
		})

		status := tracker.Snapshot()
		assert.True(t, status.Running)
		assert.Equal(t, 3, status.ComputersSynced)
		assert.Equal(t, &started, status.StartedAt)
	})

	t.Run("Snapshot Is A Copy", func(t *testing.T) {
		tracker := NewStateTracker()
		status := tracker.Snapshot()
		status.ComputersSynced = 99

		assert.Zero(t, tracker.Snapshot().ComputersSynced)
	})

	t.Run("Concurrent Readers", func(t *testing.T) {
		tracker := NewStateTracker()

		var wg gosync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 1000; j++ {
					_ = tracker.Snapshot()
				}
			}()
		}
		for i := 0; i < 1000; i++ {
			n := i
			tracker.Update(func(st *Status) {
				st.ComputersSynced = n
			})
		}
		wg.Wait()

		assert.Equal(t, 999, tracker.Snapshot().ComputersSynced)
	})
}
