package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inventree-tools/crewplan/infra/inventree"
	"github.com/inventree-tools/crewplan/infra/logger"
)

var (
	orderDescription string
	orderTargetDate  string
	orderLocation    string
	orderQty         float64
)

var orderCmd = &cobra.Command{
	Use:   "order <part name>...",
	Short: "Create an InvenTree sales order for missing parts",
	Long: `Looks each part up in InvenTree, prefers stock at the given
location, creates one sales order for the configured customer and adds
one line per part found in stock.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrder,
}

func init() {
	orderCmd.Flags().StringVar(&orderDescription, "description", "", "sales order description")
	orderCmd.Flags().StringVar(&orderTargetDate, "target-date", "", "sales order target date (YYYY-MM-DD)")
	orderCmd.Flags().StringVar(&orderLocation, "location", "", "preferred stock location")
	orderCmd.Flags().Float64Var(&orderQty, "qty", 1, "quantity per line item")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("order-command")
	client, err := inventree.NewClient(cfg.InvenTree)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	location := orderLocation
	if location == "" {
		location = cfg.InvenTree.DefaultLocation
	}

	// resolve parts before touching the order so a typo fails early
	var lines []inventree.Part
	for _, name := range args {
		part, err := client.SearchPart(ctx, name)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("part %q not found", name)
		}
		cands, err := client.PickCandidates(ctx, []inventree.Part{*part}, location)
		if err != nil {
			return err
		}
		if len(cands) == 0 {
			return fmt.Errorf("part %q has no stock at %q", name, location)
		}
		lines = append(lines, cands[0].Part)
	}

	description := orderDescription
	if description == "" {
		description = "crewplan order " + uuid.NewString()[:8]
	}
	so, err := client.CreateSalesOrder(ctx, description, orderTargetDate)
	if err != nil {
		return err
	}
	for _, part := range lines {
		if err := client.AddLineItem(ctx, so.PK, part.PK, orderQty); err != nil {
			return err
		}
	}
	logg.Infof("sales order %d (%s) created with %d line(s)", so.PK, so.Reference, len(lines))
	fmt.Printf("%d\n", so.PK)
	return nil
}
