package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/storypath/internal/cli"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage saved search reports",
}

var reportListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := cli.CreateReportStore(cfg.Reports)
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No reports found.")
			return nil
		}
		for _, id := range ids {
			report, err := store.Load(cmd.Context(), id)
			if err != nil {
				fmt.Printf("%s  (unreadable: %v)\n", id, err)
				continue
			}
			score := 0
			if report.Best != nil {
				score = report.Best.Score()
			}
			fmt.Printf("%s  %s  %-20s %-18s score %d\n",
				report.ID, report.CreatedAt.Format("2006-01-02 15:04"), report.Story, report.Outcome, score)
		}
		return nil
	},
}

var reportInspectCmd = &cobra.Command{
	Use:   "inspect [report-id]",
	Short: "Print a saved report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := cli.CreateReportStore(cfg.Reports)
		if err != nil {
			return err
		}
		defer closeStore()

		report, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

var reportRemoveCmd = &cobra.Command{
	Use:     "rm [report-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a saved report",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := cli.CreateReportStore(cfg.Reports)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		fmt.Printf("Report '%s' deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd, reportInspectCmd, reportRemoveCmd)
}
