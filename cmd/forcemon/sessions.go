package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/history"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded monitoring sessions",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&flagSessionsLimit, "limit", "l", 20, "maximum sessions to show (0 = all)")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.History.File)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := db.ListSessions(ctx, flagSessionsLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-5s %-17s %-9s %9s %10s %10s %10s  %s\n",
		"ID", "STARTED", "DURATION", "READINGS", "MIN (N)", "MAX (N)", "MEAN (N)", "EXPORT")
	for _, s := range sessions {
		export := s.ExportPath
		if export == "" {
			export = "-"
		}
		fmt.Printf("%-5d %-17s %-9s %9d %10.3f %10.3f %10.3f  %s\n",
			s.ID,
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.EndedAt.Sub(s.StartedAt).Round(time.Second),
			s.Readings,
			s.MinNewtons,
			s.MaxNewtons,
			s.MeanNewtons,
			export)
	}
	return nil
}
