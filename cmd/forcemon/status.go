package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/calibration"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored calibration",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := calibration.NewStore(cfg.Calibration.File)
	rec, usedDefaults := store.Load()

	if usedDefaults {
		color.Yellow("No valid calibration on disk; showing defaults. Run `forcemon tare`.")
	}

	fmt.Printf("Sensor:       %s on %s (%s)\n", rec.SensorModel, rec.SerialPort, rec.ArduinoBoard)
	fmt.Printf("Tare voltage: %.4f V\n", rec.TareVoltage)
	fmt.Printf("Range:        %.4f V - %.4f V, full scale %.1f N\n", rec.VoltageMin, rec.VoltageMax, rec.MaxForceNewtons)
	fmt.Printf("Stability:    %.4f V (%s)\n", rec.Stability, rec.StabilityGrade())

	if at, ok := rec.CalibratedAt(); ok {
		age := time.Since(at).Round(time.Minute)
		fmt.Printf("Calibrated:   %s (%s ago)\n", at.Format("2006-01-02 15:04"), age)
		if age > 30*24*time.Hour {
			color.Yellow("Calibration is over a month old; consider re-taring.")
		}
	} else {
		fmt.Println("Calibrated:   never")
	}

	return nil
}
