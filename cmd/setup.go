package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"frametrim/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: len(options),
	}
	if defaultValue != "" {
		prompt.Default = defaultValue
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through locating ffmpeg, choosing the frame decoder,
and setting playback, output and preview options.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = DefaultConfigPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to frametrim setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptFFmpeg(prompter, cfg); err != nil {
		return err
	}
	if err := promptPlayback(prompter, cfg); err != nil {
		return err
	}
	if err := promptOutput(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Save configuration
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptFFmpeg(prompter Prompter, cfg *config.Config) error {
	ffmpegPath, err := prompter.Input("Path to the ffmpeg executable?", cfg.FFmpeg.Path)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpegPath != "" {
		cfg.FFmpeg.Path = ffmpegPath
	}

	ffprobePath, err := prompter.Input("Path to the ffprobe executable?", cfg.FFmpeg.FFprobePath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffprobePath != "" {
		cfg.FFmpeg.FFprobePath = ffprobePath
	}

	backend, err := prompter.Select("Frame decoder?", []string{"ffmpeg", "opencv"}, cfg.Decoder.Backend)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Decoder.Backend = backend

	return nil
}

func promptPlayback(prompter Prompter, cfg *config.Config) error {
	interval, err := prompter.Input("Playback tick interval in milliseconds?", strconv.Itoa(cfg.Playback.TickIntervalMS))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if interval != "" {
		ms, err := strconv.Atoi(strings.TrimSpace(interval))
		if err != nil || ms <= 0 {
			return fmt.Errorf("tick interval must be a positive number of milliseconds")
		}
		cfg.Playback.TickIntervalMS = ms
	}
	return nil
}

func promptOutput(prompter Prompter, cfg *config.Config) error {
	suffix, err := prompter.Input("Suffix for trimmed files?", cfg.Trim.Suffix)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if suffix != "" {
		cfg.Trim.Suffix = suffix
	}

	revealOutput, err := prompter.Confirm("Open the file browser after trimming?", cfg.Trim.Reveal)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Trim.Reveal = revealOutput

	preview, err := prompter.Input("Preview image path for sessions (empty for none)?", cfg.Preview.Path)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Preview.Path = preview

	return nil
}
