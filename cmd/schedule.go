package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inventree-tools/crewplan/core/scheduler"
	"github.com/inventree-tools/crewplan/core/solver"
	"github.com/inventree-tools/crewplan/infra/logger"
	"github.com/inventree-tools/crewplan/pkg/export"
	"github.com/inventree-tools/crewplan/roster"
)

var (
	multiDay bool
	strict   bool
	outCSV   string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <staff.csv> <mapping.json>",
	Short: "Assign maintenance tasks to staff",
	Long: `Reads a staff roster CSV and a machine-to-missing-parts mapping,
solves the assignment problem and prints the schedule as JSON. With
--out-csv the tabular form is written as well.`,
	Args: cobra.ExactArgs(2),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&multiDay, "multi-day", false, "spread tasks across a day horizon honoring target dates")
	scheduleCmd.Flags().BoolVar(&strict, "strict", false, "fail when a task location matches no staff instead of widening")
	scheduleCmd.Flags().StringVar(&outCSV, "out-csv", "", "also write the schedule CSV to this path")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("schedule-command")

	staffFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = staffFile.Close() }()
	staff, err := roster.Loader{Log: logg}.LoadStaff(staffFile)
	if err != nil {
		return err
	}

	mappingFile, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open mapping: %w", err)
	}
	defer func() { _ = mappingFile.Close() }()
	tasks, err := roster.ReadTasks(mappingFile)
	if err != nil {
		return err
	}

	schedCfg := cfg.Scheduler
	if multiDay {
		schedCfg.Mode = scheduler.ModeMultiDay
	}
	if strict {
		schedCfg.Policy = scheduler.PolicyStrict
	}
	s, err := scheduler.New(schedCfg, solver.NewBranchAndBound(), logg, nil)
	if err != nil {
		return err
	}
	sched, err := s.Schedule(cmd.Context(), staff, tasks, time.Now())
	if err != nil {
		return err
	}

	if err := export.WriteJSON(os.Stdout, sched); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	if outCSV != "" {
		f, err := os.Create(outCSV)
		if err != nil {
			return fmt.Errorf("create %s: %w", outCSV, err)
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteCSV(f, sched); err != nil {
			return fmt.Errorf("write %s: %w", outCSV, err)
		}
		logg.Infof("wrote schedule to %s", outCSV)
	}
	return nil
}
