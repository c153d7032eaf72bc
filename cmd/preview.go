package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frametrim/domain/video"
	"frametrim/infrastructure/surface"

	"github.com/spf13/cobra"
)

var (
	previewFrame string
	previewOut   string
)

var previewCmd = &cobra.Command{
	Use:   "preview <video>",
	Short: "Render a single frame to a PNG file",
	Long: `Decode one frame and render it with the status strip to a PNG file.

Example:
  frametrim preview clip.mp4 --frame 120 --out frame.png
  frametrim preview clip.mp4 --frame 00:00:04.800`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewFrame, "frame", "0", "Frame number or HH:MM:SS(.mmm) timestamp")
	previewCmd.Flags().StringVar(&previewOut, "out", "", "Output PNG (default <name>_frame<N>.png next to the source)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	decoder, err := newDecoder(cfg)
	if err != nil {
		return err
	}

	return RunPreviewWithDependencies(cmd.Context(), decoder, PreviewOptions{
		Width:  cfg.Preview.Width,
		Height: cfg.Preview.Height,
		HUD:    cfg.Preview.HUD,
	}, args[0], previewFrame, previewOut, os.Stdout)
}

// PreviewOptions sizes the rendered preview
type PreviewOptions struct {
	Width  int
	Height int
	HUD    bool
}

// RunPreviewWithDependencies renders one frame of path to outPath
func RunPreviewWithDependencies(
	ctx context.Context,
	decoder video.Decoder,
	opts PreviewOptions,
	path string,
	position string,
	outPath string,
	output OutputWriter,
) error {
	h, err := decoder.Open(ctx, path)
	if err != nil {
		return err
	}
	defer h.Close()

	session := h.Session()
	index, err := video.ParsePosition(position, session.FrameRate)
	if err != nil {
		return err
	}
	if !session.Contains(index) {
		return fmt.Errorf("%w: frame %d is outside 0-%d", video.ErrInvalidUserInput, index, session.LastFrame())
	}

	frame, err := h.SeekAndRead(ctx, index)
	if err != nil {
		return err
	}

	if outPath == "" {
		base := filepath.Base(path)
		outPath = filepath.Join(filepath.Dir(path), fmt.Sprintf("%s_frame%d.png", strings.TrimSuffix(base, filepath.Ext(base)), index))
	}

	s := surface.NewPNGSurface(outPath, opts.Width, opts.Height, surface.WithHUD(opts.HUD))
	err = s.Render(frame, video.Overlay{
		Index: index,
		Total: session.TotalFrames,
		Time:  video.TimestampForFrame(index, session.FrameRate),
		State: "preview",
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Preview written to %s\n", outPath)
	return nil
}
