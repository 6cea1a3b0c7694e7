package main

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/calibration"
)

var rangeCmd = &cobra.Command{
	Use:   "range <newtons>",
	Short: "Set the force at full-scale sensor output",
	Long: `range updates the stored full-scale force and pushes the new value to
the device so its reported force fields match. FC2231 sensors ship in several
ranges (10, 25, 50, 100 N and up); set this to the rating of your unit.`,
	Args: cobra.ExactArgs(1),
	RunE: runRange,
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}

func runRange(cmd *cobra.Command, args []string) error {
	newtons, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid force range %q: %w", args[0], err)
	}
	if newtons <= 0 {
		return fmt.Errorf("force range must be > 0, got %g", newtons)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := calibration.NewStore(cfg.Calibration.File)
	rec, _ := store.Load()
	rec.MaxForceNewtons = newtons

	if err := store.Save(rec); err != nil {
		return err
	}
	fmt.Printf("Full-scale force set to %.1f N\n", newtons)

	// Best effort: the host-side conversion is authoritative, the device just
	// mirrors the range in its own output.
	dev, err := openDevice(cfg)
	if err != nil {
		log.WithError(err).Warn("device not reachable, range will sync on next connect")
		return nil
	}
	defer dev.Close()

	if err := dev.SetForceRange(newtons); err != nil {
		log.WithError(err).Warn("could not push force range to the device")
	}
	return nil
}
