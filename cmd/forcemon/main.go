// Command forcemon monitors and calibrates an FC2231 force sensor attached to
// an Arduino over a serial port.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forcelab/forcemon/pkg/config"
	"github.com/forcelab/forcemon/pkg/fc2231"
)

var (
	flagConfig string
	flagPort   string
	flagBaud   int
	flagMock   bool
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "forcemon",
	Short: "FC2231 force sensor monitor",
	Long: `forcemon reads force measurements from an FC2231 sensor wired to an
Arduino, converts the raw voltage with a persisted calibration, and keeps a
history of monitoring sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "forcemon.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagPort, "port", "p", "", "serial port (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&flagBaud, "baud", "b", 0, "baud rate (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "use a simulated sensor instead of serial hardware")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// loadConfig loads the YAML configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagPort != "" {
		cfg.Serial.Port = flagPort
	}
	if flagBaud != 0 {
		cfg.Serial.Baud = flagBaud
	}
	return cfg, nil
}

// openDevice connects either the serial device or the mock, per flags.
func openDevice(cfg *config.Config) (fc2231.Device, error) {
	var dev fc2231.Device
	if flagMock {
		dev = fc2231.NewMock(&cfg.Mock)
	} else {
		dev = fc2231.New(cfg.Serial.Port, cfg.Serial.Baud, 0)
	}
	if err := dev.Connect(); err != nil {
		return nil, err
	}
	return dev, nil
}
