package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"frametrim/domain/video"
	"frametrim/infrastructure/command"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <video>",
	Short: "Show frame count, frame rate and size of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunProbeWithDependencies(cmd.Context(), newProber(cfg, command.NewExecRunner()), args[0], os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

// RunProbeWithDependencies prints the session metadata of path
func RunProbeWithDependencies(ctx context.Context, prober video.Prober, path string, output OutputWriter) error {
	session, err := prober.Probe(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(output, "Frames:     %d (0-%d)\n", session.TotalFrames, max(session.LastFrame(), 0))
	fmt.Fprintf(output, "Frame rate: %.3f fps\n", session.FrameRate)
	fmt.Fprintf(output, "Size:       %dx%d\n", session.Width, session.Height)
	fmt.Fprintf(output, "Duration:   %s\n", video.TimestampForFrame(session.TotalFrames, session.FrameRate))
	return nil
}
