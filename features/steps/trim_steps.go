//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"frametrim/cmd"
	"frametrim/domain/video"
	"frametrim/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

// mockTrimmer records calls to Trim for verification
type mockTrimmer struct {
	calls       []trimCall
	shouldFail  bool
	failError   error
	fileChecker *mockFileChecker // Reference to mark output files as existing
}

type trimCall struct {
	req        *video.TrimRequest
	outputPath string
	args       []string
}

func (m *mockTrimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	if m.shouldFail {
		return m.failError
	}
	m.calls = append(m.calls, trimCall{
		req:        req,
		outputPath: outputPath,
		args:       ffmpeg.TrimArgs(req, outputPath),
	})
	if m.fileChecker != nil {
		m.fileChecker.existingFiles[outputPath] = true
	}
	return nil
}

// mockFileChecker simulates file existence
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// mockProber returns a fixed session for every path
type mockProber struct {
	frameRate   float64
	totalFrames int
	shouldFail  bool
	calls       int
}

func (m *mockProber) Probe(ctx context.Context, path string) (video.Session, error) {
	m.calls++
	if m.shouldFail {
		return video.Session{}, fmt.Errorf("%w: moov atom not found", video.ErrUnreadableSource)
	}
	return video.Session{SourcePath: path, TotalFrames: m.totalFrames, FrameRate: m.frameRate}, nil
}

// mockRevealer records revealed paths
type mockRevealer struct {
	revealed   []string
	shouldFail bool
}

func (m *mockRevealer) Reveal(ctx context.Context, path string) error {
	if m.shouldFail {
		return fmt.Errorf("%w: no file browser", video.ErrRevealFailed)
	}
	m.revealed = append(m.revealed, path)
	return nil
}

// trimContext holds test state for trim scenarios
type trimContext struct {
	sourcePath  string
	suffix      string
	trimmer     *mockTrimmer
	fileChecker *mockFileChecker
	prober      *mockProber
	revealer    *mockRevealer
	output      *bytes.Buffer
	err         error
	resultPath  string
}

// SharedTrimContext is reset before each scenario via Before hook
var SharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return SharedTrimContext
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		fileChecker := &mockFileChecker{
			existingFiles: make(map[string]bool),
		}
		SharedTrimContext = &trimContext{
			trimmer:     &mockTrimmer{fileChecker: fileChecker},
			fileChecker: fileChecker,
			prober:      &mockProber{frameRate: 25, totalFrames: 1000},
			revealer:    &mockRevealer{},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)"$`, aSourceVideoAt)
	ctx.Step(`^no source video exists at "([^"]*)"$`, noSourceVideoExistsAt)
	ctx.Step(`^the source plays at (\d+) frames per second$`, theSourcePlaysAtFramesPerSecond)
	ctx.Step(`^the source has (\d+) frames$`, theSourceHasFrames)
	ctx.Step(`^the source metadata is unreadable$`, theSourceMetadataIsUnreadable)
	ctx.Step(`^the trim suffix is "([^"]*)"$`, theTrimSuffixIs)
	ctx.Step(`^the file browser is unavailable$`, theFileBrowserIsUnavailable)
	ctx.Step(`^ffmpeg fails with exit code (\d+)$`, ffmpegFailsWithExitCode)
	ctx.Step(`^I trim the video from "([^"]*)" to "([^"]*)"$`, iTrimTheVideoFromTo)
	ctx.Step(`^I attempt to trim from "([^"]*)" to "([^"]*)"$`, iAttemptToTrimFromTo)
	ctx.Step(`^the output file should be "([^"]*)"$`, theOutputFileShouldBe)
	ctx.Step(`^ffmpeg should have been called with arguments:$`, ffmpegShouldHaveBeenCalledWithArguments)
	ctx.Step(`^ffmpeg should not have been called$`, ffmpegShouldNotHaveBeenCalled)
	ctx.Step(`^the source metadata should have been read once$`, theSourceMetadataShouldHaveBeenReadOnce)
	ctx.Step(`^"([^"]*)" should have been revealed$`, shouldHaveBeenRevealed)
	ctx.Step(`^the trim output should contain "([^"]*)"$`, theTrimOutputShouldContain)
	ctx.Step(`^I should receive an error about invalid user input$`, iShouldReceiveAnErrorAboutInvalidUserInput)
	ctx.Step(`^I should receive an error about an invalid range$`, iShouldReceiveAnErrorAboutAnInvalidRange)
	ctx.Step(`^I should receive an error about missing source file$`, iShouldReceiveAnErrorAboutMissingSourceFile)
	ctx.Step(`^I should receive an encode error with exit code (\d+)$`, iShouldReceiveAnEncodeErrorWithExitCode)
}

func aSourceVideoAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	t.fileChecker.existingFiles[path] = true
	return nil
}

func noSourceVideoExistsAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	t.fileChecker.existingFiles[path] = false
	return nil
}

func theSourcePlaysAtFramesPerSecond(fps int) error {
	getTrimContext().prober.frameRate = float64(fps)
	return nil
}

func theSourceHasFrames(frames int) error {
	getTrimContext().prober.totalFrames = frames
	return nil
}

func theSourceMetadataIsUnreadable() error {
	getTrimContext().prober.shouldFail = true
	return nil
}

func theTrimSuffixIs(suffix string) error {
	getTrimContext().suffix = suffix
	return nil
}

func theFileBrowserIsUnavailable() error {
	getTrimContext().revealer.shouldFail = true
	return nil
}

func ffmpegFailsWithExitCode(code int) error {
	t := getTrimContext()
	t.trimmer.shouldFail = true
	t.trimmer.failError = &video.EncodeError{ExitCode: code, Output: "Invalid data found when processing input"}
	return nil
}

func runTrim(start, end string) error {
	t := getTrimContext()
	return cmd.RunTrimWithDependencies(
		context.Background(),
		cmd.TrimDependencies{
			Trimmer:     t.trimmer,
			FileChecker: t.fileChecker,
			Prober:      t.prober,
			Revealer:    t.revealer,
			Suffix:      t.suffix,
		},
		t.sourcePath,
		start,
		end,
		t.output,
	)
}

func iTrimTheVideoFromTo(start, end string) error {
	t := getTrimContext()
	t.err = runTrim(start, end)
	if t.err != nil {
		return fmt.Errorf("unexpected error: %v", t.err)
	}

	if len(t.trimmer.calls) > 0 {
		t.resultPath = t.trimmer.calls[0].outputPath
	}
	return nil
}

func iAttemptToTrimFromTo(start, end string) error {
	t := getTrimContext()
	t.err = runTrim(start, end)
	return nil
}

func theOutputFileShouldBe(expected string) error {
	t := getTrimContext()
	if t.resultPath != expected {
		return fmt.Errorf("expected output path %q, got %q", expected, t.resultPath)
	}
	return nil
}

func ffmpegShouldHaveBeenCalledWithArguments(table *godog.Table) error {
	t := getTrimContext()
	if len(t.trimmer.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}

	call := t.trimmer.calls[0]

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		expectedArg := row.Cells[0].Value
		found := false
		for _, arg := range call.args {
			if arg == expectedArg {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected argument %q not found in ffmpeg call: %v", expectedArg, call.args)
		}
	}
	return nil
}

func ffmpegShouldNotHaveBeenCalled() error {
	if n := len(getTrimContext().trimmer.calls); n != 0 {
		return fmt.Errorf("expected no ffmpeg call, got %d", n)
	}
	return nil
}

func theSourceMetadataShouldHaveBeenReadOnce() error {
	if n := getTrimContext().prober.calls; n != 1 {
		return fmt.Errorf("expected the metadata to be read once, got %d reads", n)
	}
	return nil
}

func shouldHaveBeenRevealed(path string) error {
	for _, p := range getTrimContext().revealer.revealed {
		if p == path {
			return nil
		}
	}
	return fmt.Errorf("%q was not revealed (revealed: %v)", path, getTrimContext().revealer.revealed)
}

func theTrimOutputShouldContain(expected string) error {
	out := getTrimContext().output.String()
	if !strings.Contains(out, expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, out)
	}
	return nil
}

func expectTrimError(target error) error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !errors.Is(t.err, target) {
		return fmt.Errorf("expected %v, got: %v", target, t.err)
	}
	return nil
}

func iShouldReceiveAnErrorAboutInvalidUserInput() error {
	return expectTrimError(video.ErrInvalidUserInput)
}

func iShouldReceiveAnErrorAboutAnInvalidRange() error {
	return expectTrimError(video.ErrInvalidRange)
}

func iShouldReceiveAnErrorAboutMissingSourceFile() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(t.err.Error(), "does not exist") {
		return fmt.Errorf("expected error about missing source file, got: %v", t.err)
	}
	return nil
}

func iShouldReceiveAnEncodeErrorWithExitCode(code int) error {
	if err := expectTrimError(video.ErrEncodeFailed); err != nil {
		return err
	}
	var encErr *video.EncodeError
	if !errors.As(getTrimContext().err, &encErr) {
		return fmt.Errorf("expected an EncodeError, got: %v", getTrimContext().err)
	}
	if encErr.ExitCode != code {
		return fmt.Errorf("expected exit code %d, got %d", code, encErr.ExitCode)
	}
	return nil
}
