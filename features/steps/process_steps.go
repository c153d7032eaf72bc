//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	appprocess "frametrim/application/process"
	appvideo "frametrim/application/video"
	"frametrim/cmd"
	"frametrim/domain/video"

	"github.com/cucumber/godog"
)

// processMockFinder returns the newest file registered for a directory
type processMockFinder struct {
	newest map[string]string
}

func (m *processMockFinder) NewestVideo(dir, trimSuffix string) (string, error) {
	path, ok := m.newest[dir]
	if !ok {
		return "", fmt.Errorf("no video files found in %s", dir)
	}
	return path, nil
}

type processContext struct {
	trimmer     *mockTrimmer
	fileChecker *mockFileChecker
	prober      *mockProber
	revealer    *mockRevealer
	finder      *processMockFinder
	inputPath   string
	searchDir   string
	output      *bytes.Buffer
	err         error
}

var sharedProcessContext *processContext

func getProcessContext() *processContext {
	return sharedProcessContext
}

func InitializeProcessScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		fileChecker := &mockFileChecker{existingFiles: make(map[string]bool)}
		sharedProcessContext = &processContext{
			trimmer:     &mockTrimmer{fileChecker: fileChecker},
			fileChecker: fileChecker,
			prober:      &mockProber{frameRate: 30, totalFrames: 900},
			revealer:    &mockRevealer{},
			finder:      &processMockFinder{newest: make(map[string]string)},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		sharedProcessContext = nil
		return c, nil
	})

	ctx.Step(`^a recording exists at "([^"]*)"$`, aRecordingExistsAt)
	ctx.Step(`^the newest recording in "([^"]*)" is "([^"]*)"$`, theNewestRecordingInIs)
	ctx.Step(`^the recording has (\d+) frames at (\d+) frames per second$`, theRecordingHasFramesAtFramesPerSecond)
	ctx.Step(`^the process encoder fails$`, theProcessEncoderFails)
	ctx.Step(`^I process "([^"]*)" from "([^"]*)" to "([^"]*)"$`, iProcessFromTo)
	ctx.Step(`^I process the newest recording in "([^"]*)" from "([^"]*)" to "([^"]*)"$`, iProcessTheNewestRecordingInFromTo)
	ctx.Step(`^the process should succeed$`, theProcessShouldSucceed)
	ctx.Step(`^the process should fail with "([^"]*)"$`, theProcessShouldFailWith)
	ctx.Step(`^the process should fail with a validation error$`, theProcessShouldFailWithAValidationError)
	ctx.Step(`^the process output should contain "([^"]*)"$`, theProcessOutputShouldContain)
	ctx.Step(`^the process should have trimmed frames (\d+) to (\d+)$`, theProcessShouldHaveTrimmedFramesTo)
	ctx.Step(`^the process should not have trimmed$`, theProcessShouldNotHaveTrimmed)
}

func aRecordingExistsAt(path string) error {
	getProcessContext().fileChecker.existingFiles[path] = true
	return nil
}

func theNewestRecordingInIs(dir, name string) error {
	p := getProcessContext()
	path := filepath.Join(dir, name)
	p.finder.newest[dir] = path
	p.fileChecker.existingFiles[path] = true
	return nil
}

func theRecordingHasFramesAtFramesPerSecond(frames, fps int) error {
	p := getProcessContext()
	p.prober.totalFrames = frames
	p.prober.frameRate = float64(fps)
	return nil
}

func theProcessEncoderFails() error {
	p := getProcessContext()
	p.trimmer.shouldFail = true
	p.trimmer.failError = &video.EncodeError{ExitCode: 69, Output: "Conversion failed!"}
	return nil
}

func (p *processContext) run(input appprocess.Input) {
	trimService := appvideo.NewTrimService(p.trimmer, p.fileChecker,
		appvideo.WithRevealer(p.revealer))
	svc := appprocess.NewService(p.prober, trimService, p.fileChecker, p.finder, video.DefaultTrimSuffix, p.output)
	p.err = cmd.RunProcessWithService(context.Background(), svc, input)
}

func iProcessFromTo(path, start, end string) error {
	p := getProcessContext()
	p.inputPath = path
	p.run(appprocess.Input{InputPath: path, Start: start, End: end})
	return nil
}

func iProcessTheNewestRecordingInFromTo(dir, start, end string) error {
	p := getProcessContext()
	p.searchDir = dir
	p.run(appprocess.Input{SearchDir: dir, Start: start, End: end})
	return nil
}

func theProcessShouldSucceed() error {
	if err := getProcessContext().err; err != nil {
		return fmt.Errorf("expected success but got: %v", err)
	}
	return nil
}

func theProcessShouldFailWith(expected string) error {
	err := getProcessContext().err
	if err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, err)
	}
	return nil
}

func theProcessShouldFailWithAValidationError() error {
	err := getProcessContext().err
	if !appprocess.IsValidationError(err) {
		return fmt.Errorf("expected a validation error, got: %v", err)
	}
	if !errors.Is(err, video.ErrInvalidRange) && !errors.Is(err, video.ErrInvalidUserInput) {
		return fmt.Errorf("expected a range or input error, got: %v", err)
	}
	return nil
}

func theProcessOutputShouldContain(expected string) error {
	out := getProcessContext().output.String()
	if !strings.Contains(out, expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, out)
	}
	return nil
}

func theProcessShouldHaveTrimmedFramesTo(start, end int) error {
	calls := getProcessContext().trimmer.calls
	if len(calls) != 1 {
		return fmt.Errorf("expected one trim, got %d", len(calls))
	}
	if calls[0].req.Start != start || calls[0].req.End != end {
		return fmt.Errorf("expected frames %d-%d, got %d-%d", start, end, calls[0].req.Start, calls[0].req.End)
	}
	return nil
}

func theProcessShouldNotHaveTrimmed() error {
	if n := len(getProcessContext().trimmer.calls); n != 0 {
		return fmt.Errorf("expected no trim, got %d", n)
	}
	return nil
}
