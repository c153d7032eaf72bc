package cmd

import (
	"fmt"
	"os"

	"frametrim/domain/logging"
	"frametrim/infrastructure/config"
	"frametrim/infrastructure/logger"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is used when --config is not given
const DefaultConfigPath = "config/config.yaml"

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	cfgErr   error
	log      logging.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "frametrim",
	Short: "Frame-accurate video trimming",
	Long: `frametrim plays a video frame by frame, lets you mark an in-point and an
out-point, and cuts exactly that frame range with ffmpeg:

  - Step through or play a video and mark start and end frames
  - Trim by frame number or HH:MM:SS(.mmm) timestamp
  - Write the cut next to the source as <name>_trimmed.mp4
  - Reveal the result in the file browser

Example:
  frametrim session recording.mp4
  frametrim trim --source recording.mp4 --start 120 --end 480`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, quiet (overrides config)")
}

func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = DefaultConfigPath
	}

	// The config file is optional unless named explicitly; defaults and
	// FRAMETRIM_* variables cover everything.
	cfg, cfgErr = config.Load(cfgFile, !explicit)

	level := logging.LevelInfo
	if cfg != nil {
		level = logging.ParseLevel(cfg.Logging.Level)
	}
	if logLevel != "" {
		level = logging.ParseLevel(logLevel)
	}
	log = logger.NewConsole(level)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("configuration error in %s: %w", cfgFile, cfgErr)
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// GetLogger returns the console logger configured for this run
func GetLogger() logging.Logger {
	return log
}
