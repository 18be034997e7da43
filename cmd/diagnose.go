package cmd

import (
	"context"
	"fmt"
	"sort"

	"maintenance-manager/core/config"
	"maintenance-manager/core/glpi"
	"maintenance-manager/core/utils"

	"github.com/spf13/cobra"
)

var diagnoseComputerID int

// diagnoseCmd inspects the raw component payloads GLPI returns for one
// computer, so field mappings can be checked against a live instance.
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Dump raw GLPI component payloads for one computer",
	Long: `Connects to GLPI, fetches the component records of a single computer,
and prints each record's keys and values. Useful when a GLPI instance
uses plugins or custom fields and synced components come out empty.

Examples:
  # Inspect the first computer GLPI returns
  diagnose

  # Inspect a specific computer
  diagnose --computer-id 42`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().IntVar(&diagnoseComputerID, "computer-id", 0, "GLPI computer id to inspect (0 picks the first one)")
	RootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := glpi.NewClient(cfg.Glpi)
	if err := client.InitSession(ctx); err != nil {
		return fmt.Errorf("failed to open GLPI session: %w", err)
	}
	defer client.KillSession(ctx)

	computerID := diagnoseComputerID
	if computerID == 0 {
		page, err := client.GetComputers(ctx, 0, 1)
		if err != nil {
			return fmt.Errorf("failed to fetch computers: %w", err)
		}
		if len(page) == 0 {
			return fmt.Errorf("GLPI returned no computers")
		}
		computerID = utils.ToInt(page[0]["id"])
		fmt.Printf("No --computer-id given, using first computer: %d (%v)\n", computerID, page[0]["name"])
	}

	components, err := client.GetAllComponents(ctx, computerID)
	if err != nil {
		return fmt.Errorf("failed to fetch components: %w", err)
	}

	for _, itemType := range glpi.ComponentTypes() {
		items := components[itemType]
		fmt.Printf("\n=== %s: %d record(s) ===\n", itemType, len(items))

		for i, item := range items {
			fmt.Printf("--- record %d ---\n", i)

			keys := make([]string, 0, len(item))
			for k := range item {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("  %-24s = %v\n", k, item[k])
			}
		}
	}

	return nil
}
