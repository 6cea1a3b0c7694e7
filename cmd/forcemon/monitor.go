package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/calibration"
	"github.com/forcelab/forcemon/pkg/history"
	"github.com/forcelab/forcemon/pkg/session"
)

var flagExport bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously display force readings",
	Long: `monitor streams readings from the sensor, applies the persisted
calibration on the host side, and prints smoothed force values until
interrupted. Session statistics are printed periodically and the completed
session is recorded in the history database.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().BoolVar(&flagExport, "export", false, "export the session to a CSV file on exit")
	rootCmd.AddCommand(monitorCmd)
}

// Force bands for colored output.
var (
	bandZero   = color.New(color.FgHiBlack)
	bandLight  = color.New(color.FgGreen)
	bandMedium = color.New(color.FgYellow)
	bandStrong = color.New(color.FgRed, color.Bold)
)

func forceBand(newtons float64) (*color.Color, string) {
	switch {
	case newtons < 0.1:
		return bandZero, "ZERO"
	case newtons < 1:
		return bandLight, "LIGHT"
	case newtons < 10:
		return bandMedium, "MEDIUM"
	default:
		return bandStrong, "STRONG"
	}
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := calibration.NewStore(cfg.Calibration.File)
	rec, usedDefaults := store.Load()
	if usedDefaults {
		log.Warn("no valid calibration found, using defaults; run `forcemon tare` with the sensor unloaded")
	}

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	voltWin := session.NewWindow(cfg.Display.SmoothingWindow)
	stats := session.NewStats()

	var exporter *session.Exporter
	if flagExport {
		exporter = session.NewExporter(cfg.Export.Dir)
	}

	fmt.Printf("Monitoring FC2231 (%s, tare %.4f V, range %.1f N). Press Ctrl+C to stop.\n",
		rec.StabilityGrade(), rec.TareVoltage, rec.MaxForceNewtons)

	started := time.Now()
	var lastShown time.Time
	count := 0

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case r, ok := <-dev.Readings():
			if !ok {
				log.Warn("device stopped sending readings")
				break loop
			}

			voltWin.Push(r.Voltage)
			smoothed := voltWin.Median()
			newtons, grams := calibration.Convert(smoothed, rec)
			stats.Add(newtons)
			count++

			if exporter != nil {
				exporter.Record(session.Row{
					At:           r.ReceivedAt,
					Voltage:      smoothed,
					ForceNewtons: newtons,
					ForceGrams:   grams,
				})
			}

			if time.Since(lastShown) >= cfg.Display.Period {
				band, label := forceBand(newtons)
				band.Printf("[%-6s] %8.3f N %9.1f g  (%.4f V, %.1f°C)\n",
					label, newtons, grams, smoothed, r.Temperature)
				lastShown = time.Now()
			}

			if cfg.Display.StatsEvery > 0 && count%cfg.Display.StatsEvery == 0 {
				printSummary(stats)
			}
		}
	}

	fmt.Println()
	printSummary(stats)

	exportPath := ""
	if exporter != nil {
		exportPath, err = exporter.Flush()
		if err != nil {
			log.WithError(err).Error("CSV export failed")
		} else if exportPath != "" {
			fmt.Printf("Exported %d readings to %s\n", count, exportPath)
		}
	}

	if count > 0 {
		if err := recordSession(cfg.History.File, started, stats, exportPath); err != nil {
			log.WithError(err).Warn("could not record session history")
		}
	}

	return nil
}

func printSummary(stats *session.Stats) {
	sum, ok := stats.Summary()
	if !ok {
		fmt.Printf("--- %d readings, no force above noise floor ---\n", sum.Readings)
		return
	}
	fmt.Printf("--- %d readings over %s: min %.3f N, max %.3f N, mean %.3f N ± %.3f ---\n",
		sum.Readings, sum.Duration.Round(time.Second), sum.Min, sum.Max, sum.Mean, sum.StdDev)
}

func recordSession(dbPath string, started time.Time, stats *session.Stats, exportPath string) error {
	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sum, _ := stats.Summary()
	sess := history.Session{
		StartedAt:   started,
		EndedAt:     time.Now(),
		Readings:    sum.Readings,
		MinNewtons:  sum.Min,
		MaxNewtons:  sum.Max,
		MeanNewtons: sum.Mean,
		ExportPath:  exportPath,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.InsertSession(ctx, sess)
	return err
}
