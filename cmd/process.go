package cmd

import (
	"context"
	"os"

	appprocess "frametrim/application/process"
	"frametrim/infrastructure/command"
	"frametrim/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	processInputPath string
	processDir       string
	processStart     string
	processEnd       string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Probe, trim and reveal a recording in one step",
	Long: `Process a recording through the complete non-interactive workflow:
1. Probe the source for frame count and frame rate
2. Trim the inclusive frame range with ffmpeg
3. Reveal the output in the file browser

The source video can be given with --input, or the most recently modified
video in --dir is used. Positions are frame numbers or HH:MM:SS(.mmm)
timestamps and are checked against the probed frame count before encoding.

Example:
  frametrim process --input clip.mp4 --start 00:00:05 --end 00:01:10

  frametrim process --dir ~/Videos --start 120 --end 480`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVar(&processInputPath, "input", "", "Path to source video file (defaults to newest in --dir)")
	processCmd.Flags().StringVar(&processDir, "dir", "", "Directory searched for the newest video")
	processCmd.Flags().StringVar(&processStart, "start", "", "Start frame or timestamp (required)")
	processCmd.Flags().StringVar(&processEnd, "end", "", "End frame or timestamp, inclusive (required)")
	processCmd.MarkFlagRequired("start")
	processCmd.MarkFlagRequired("end")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	svc := appprocess.NewService(
		newProber(cfg, command.NewExecRunner()),
		newTrimService(cfg, GetLogger()),
		filesystem.NewChecker(),
		filesystem.NewFinder(cfg.Formats.VideoExtensions),
		cfg.Trim.Suffix,
		os.Stdout,
	)

	return RunProcessWithService(cmd.Context(), svc, appprocess.Input{
		InputPath: processInputPath,
		SearchDir: processDir,
		Start:     processStart,
		End:       processEnd,
	})
}

// RunProcessWithService runs the workflow with an injected service (for testing)
func RunProcessWithService(ctx context.Context, svc *appprocess.Service, input appprocess.Input) error {
	_, err := svc.Process(ctx, input)
	return err
}

