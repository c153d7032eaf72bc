package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"frametrim/application/trimtool"
	"frametrim/domain/video"
	"frametrim/infrastructure/surface"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Session menu actions
const (
	actionPlayPause  = "Play / pause"
	actionStop       = "Stop"
	actionSeek       = "Move slider"
	actionEnter      = "Type frame number"
	actionMarkStart  = "Set start frame"
	actionMarkEnd    = "Set end frame"
	actionTrim       = "Trim marked range"
	actionCancelTrim = "Cancel trim"
	actionOpen       = "Open video"
	actionStatus     = "Status"
	actionQuit       = "Quit"
)

var sessionActions = []string{
	actionPlayPause,
	actionStop,
	actionSeek,
	actionEnter,
	actionMarkStart,
	actionMarkEnd,
	actionTrim,
	actionCancelTrim,
	actionOpen,
	actionStatus,
	actionQuit,
}

var sessionCmd = &cobra.Command{
	Use:   "session [video]",
	Short: "Play, seek and mark a video interactively",
	Long: `Open an interactive trim session.

The video plays in the background while the menu stays usable. The current
frame is written to the preview image (see preview.path in the config), so
keep it open in an image viewer that reloads on change. Set the start and
end frames at the current position, then trim.

Only the first argument is used, and only .mp4, .mov and .avi files are
accepted unless formats.video_extensions says otherwise.

The default ffmpeg decoder reads from the first frame on every seek, which
gets slow on long videos. Builds with -tags=opencv can seek directly; switch
with decoder.backend: opencv in the config.

Example:
  frametrim session recording.mp4`,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("session needs an interactive terminal; use 'frametrim trim' in scripts")
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	decoder, err := newDecoder(cfg)
	if err != nil {
		return err
	}

	previewPath := cfg.Preview.Path
	if previewPath == "" {
		previewPath = filepath.Join(os.TempDir(), "frametrim-preview.png")
	}
	out := cmd.OutOrStdout()
	l := GetLogger()
	mirror := surface.NewConsoleMirror(l)

	tool := trimtool.NewTool(decoder, newTrimService(cfg, l),
		trimtool.WithSurface(surface.NewPNGSurface(previewPath, cfg.Preview.Width, cfg.Preview.Height, surface.WithHUD(cfg.Preview.HUD))),
		trimtool.WithSlider(mirror),
		trimtool.WithTextField(mirror),
		trimtool.WithLogger(l),
		trimtool.WithAllowList(cfg.Formats.VideoExtensions),
		trimtool.WithTickInterval(tickInterval(cfg)),
		trimtool.WithTrimListener(func(o trimtool.TrimOutcome) { reportTrim(out, o) }),
	)

	fmt.Fprintf(out, "Preview image: %s\n", previewPath)
	if hint := seekHint(cfg); hint != "" {
		fmt.Fprintln(out, hint)
	}
	return RunSessionWithDependencies(cmd.Context(), tool, DefaultPrompter, args, out)
}

// RunSessionWithDependencies drives tool from prompter until the user quits
func RunSessionWithDependencies(ctx context.Context, tool *trimtool.Tool, prompter Prompter, paths []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := trimtool.NewLoop(tool)
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	defer func() {
		cancel()
		<-loopErr
	}()

	if len(paths) > 0 {
		openPaths(ctx, loop, paths, out)
	}

	for {
		choice, err := prompter.Select(statusLine(ctx, loop), sessionActions, actionPlayPause)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}

		if choice == actionQuit {
			return nil
		}
		if err := runAction(ctx, loop, prompter, choice, out); err != nil {
			if errors.Is(err, trimtool.ErrLoopClosed) {
				return err
			}
			fmt.Fprintf(out, "  %s\n", err)
		}
	}
}

// openPaths loads the first of paths the way a file drop does
func openPaths(ctx context.Context, loop *trimtool.Loop, paths []string, out io.Writer) {
	loaded, err := loop.Drop(ctx, paths)
	if err != nil {
		fmt.Fprintf(out, "  %s\n", err)
		return
	}
	if !loaded {
		fmt.Fprintf(out, "  Ignored %s: not a supported video\n", paths[0])
	}
}

func runAction(ctx context.Context, loop *trimtool.Loop, prompter Prompter, choice string, out io.Writer) error {
	switch choice {
	case actionPlayPause:
		return loop.TogglePlay(ctx)
	case actionStop:
		return loop.Stop(ctx)
	case actionSeek:
		value, err := prompter.Input("Slider position:", "")
		if err != nil {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil
		}
		return loop.Seek(ctx, n)
	case actionEnter:
		value, err := prompter.Input("Frame:", "")
		if err != nil {
			return nil
		}
		// Invalid input leaves everything unchanged without a message
		if err := loop.Enter(ctx, value); err != nil && !errors.Is(err, video.ErrInvalidUserInput) {
			return err
		}
		return nil
	case actionMarkStart:
		return loop.MarkStart(ctx)
	case actionMarkEnd:
		return loop.MarkEnd(ctx)
	case actionTrim:
		ticket, err := loop.RequestTrim(ctx)
		if err != nil {
			return err
		}
		if ticket.Skipped {
			fmt.Fprintln(out, "  Set both the start and end frame first")
			return nil
		}
		fmt.Fprintf(out, "  Trimming frames %d to %d in the background (%s)\n", ticket.Start, ticket.End, ticket.ID)
		return nil
	case actionCancelTrim:
		cancelled, err := loop.CancelTrim(ctx)
		if err == nil && !cancelled {
			fmt.Fprintln(out, "  No trim is running")
		}
		return err
	case actionOpen:
		path, err := prompter.Input("Video file:", "")
		if err != nil || strings.TrimSpace(path) == "" {
			return nil
		}
		openPaths(ctx, loop, []string{strings.TrimSpace(path)}, out)
		return nil
	case actionStatus:
		snap, err := loop.Snapshot(ctx)
		if err != nil {
			return err
		}
		printStatus(out, snap)
		return nil
	}
	return nil
}

func statusLine(ctx context.Context, loop *trimtool.Loop) string {
	snap, err := loop.Snapshot(ctx)
	if err != nil || !snap.Loaded {
		return "No video loaded"
	}
	line := fmt.Sprintf("%s  frame %d/%d  %s  [%s]", filepath.Base(snap.Session.SourcePath),
		snap.Position, snap.Session.LastFrame(), snap.Time, snap.State)
	if snap.Trimming {
		line += "  trimming..."
	}
	return line
}

func printStatus(out io.Writer, snap trimtool.Snapshot) {
	if !snap.Loaded {
		fmt.Fprintln(out, "  No video loaded")
		return
	}
	fmt.Fprintf(out, "  Source:   %s\n", snap.Session)
	fmt.Fprintf(out, "  Position: %d (%s)\n", snap.Position, snap.Time)
	fmt.Fprintf(out, "  State:    %s\n", snap.State)
	fmt.Fprintf(out, "  Start:    %s\n", markText(snap.Marks.Start))
	fmt.Fprintf(out, "  End:      %s\n", markText(snap.Marks.End))
	if snap.LastTrim != nil && snap.LastTrim.Result != nil {
		fmt.Fprintf(out, "  Last cut: %s\n", snap.LastTrim.Result.OutputPath)
	}
}

func markText(mark *int) string {
	if mark == nil {
		return "not set"
	}
	return strconv.Itoa(*mark)
}

func reportTrim(out io.Writer, o trimtool.TrimOutcome) {
	switch {
	case o.Cancelled():
		fmt.Fprintln(out, "\n  Trim cancelled")
	case o.Err != nil:
		var encErr *video.EncodeError
		if errors.As(o.Err, &encErr) {
			fmt.Fprintf(out, "\n  Trim failed (exit code %d):\n%s\n", encErr.ExitCode, encErr.Output)
			return
		}
		fmt.Fprintf(out, "\n  Trim failed: %s\n", o.Err)
	default:
		fmt.Fprintf(out, "\n  Created: %s\n", o.Result.OutputPath)
	}
}
