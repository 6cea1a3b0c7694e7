package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/calibration"
	"github.com/forcelab/forcemon/pkg/fc2231"
)

var (
	flagQuickTare   bool
	flagTareYes     bool
	flagTareSamples int
)

const tareReadTimeout = 5 * time.Second

var tareCmd = &cobra.Command{
	Use:   "tare",
	Short: "Set the zero-force reference",
	Long: `tare averages a series of voltage readings with the sensor unloaded
and stores the mean as the new zero-force reference. The spread of the samples
is saved as a stability metric. The result is previewed before it is written.`,
	RunE: runTare,
}

func init() {
	tareCmd.Flags().BoolVarP(&flagQuickTare, "quick", "q", false, "single-sample tare, no stability measurement")
	tareCmd.Flags().BoolVarP(&flagTareYes, "yes", "y", false, "save without asking for confirmation")
	tareCmd.Flags().IntVarP(&flagTareSamples, "samples", "n", 0, "number of samples to average (default from config)")
	rootCmd.AddCommand(tareCmd)
}

func runTare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := calibration.NewStore(cfg.Calibration.File)
	rec, _ := store.Load()

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	fmt.Println("Remove all weight from the sensor.")

	var newRec calibration.Record
	if flagQuickTare {
		v, err := nextVoltage(dev, tareReadTimeout)
		if err != nil {
			return err
		}
		newRec = calibration.QuickTare(v, rec)
		fmt.Printf("Quick tare: %.4f V\n", newRec.TareVoltage)
	} else {
		n := cfg.Calibration.TareSamples
		if flagTareSamples > 0 {
			n = flagTareSamples
		}
		fmt.Printf("Sampling %d readings...\n", n)

		newRec, err = calibration.Tare(func() (float64, error) {
			return nextVoltage(dev, tareReadTimeout)
		}, n, cfg.Calibration.TareDelay, rec)
		if err != nil {
			return err
		}

		fmt.Printf("Tare:      %.4f V\n", newRec.TareVoltage)
		fmt.Printf("Stability: %.4f V (%s)\n", newRec.Stability, newRec.StabilityGrade())
	}

	if !flagTareYes && !confirm("Save this calibration?") {
		fmt.Println("Calibration not saved.")
		return nil
	}

	if err := store.Save(newRec); err != nil {
		return err
	}
	fmt.Printf("Calibration saved to %s\n", store.Path)

	// Keep the device-side zero in sync; its reported force fields are
	// advisory, so a failure is not fatal.
	if err := dev.Send(fc2231.CmdTare); err != nil {
		log.WithError(err).Warn("could not tare the device side")
	}

	return nil
}

// nextVoltage discards buffered readings and waits for a fresh one, so the
// sample reflects the sensor state right now rather than whenever the channel
// last backed up.
func nextVoltage(dev fc2231.Device, timeout time.Duration) (float64, error) {
drain:
	for {
		select {
		case _, ok := <-dev.Readings():
			if !ok {
				return 0, errors.New("device stopped sending readings")
			}
		default:
			break drain
		}
	}

	select {
	case r, ok := <-dev.Readings():
		if !ok {
			return 0, errors.New("device stopped sending readings")
		}
		return r.Voltage, nil
	case <-time.After(timeout):
		return 0, fmt.Errorf("no reading within %s", timeout)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
