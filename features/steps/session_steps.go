//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"frametrim/application/trimtool"
	appvideo "frametrim/application/video"
	"frametrim/cmd"
	"frametrim/domain/video"

	"github.com/cucumber/godog"
)

const waitForTrim = "wait for trim"

// syntheticDecoder serves blank frames for any path
type syntheticDecoder struct {
	frames int
}

func (d *syntheticDecoder) Open(ctx context.Context, path string) (video.Handle, error) {
	return &syntheticHandle{session: video.Session{
		SourcePath:  path,
		TotalFrames: d.frames,
		FrameRate:   25,
		Width:       8,
		Height:      8,
	}}, nil
}

type syntheticHandle struct {
	session video.Session
}

func (h *syntheticHandle) Session() video.Session {
	return h.session
}

func (h *syntheticHandle) SeekAndRead(ctx context.Context, index int) (video.Frame, error) {
	if index >= h.session.TotalFrames {
		return video.Frame{}, video.ErrEndOfStream
	}
	return video.Frame{Index: index, Image: image.NewGray(image.Rect(0, 0, 8, 8))}, nil
}

func (h *syntheticHandle) Close() error {
	return nil
}

type sessionAction struct {
	action string
	value  string
}

// scriptedPrompter answers the session menu from a script, then quits
type scriptedPrompter struct {
	script   []sessionAction
	next     int
	value    string
	statuses []string
	outcomes <-chan trimtool.TrimOutcome
	waitErr  error
}

func (p *scriptedPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	p.statuses = append(p.statuses, message)
	for p.next < len(p.script) {
		step := p.script[p.next]
		p.next++
		if step.action == waitForTrim {
			select {
			case <-p.outcomes:
			case <-time.After(5 * time.Second):
				p.waitErr = fmt.Errorf("trim did not finish")
			}
			continue
		}
		p.value = step.value
		return step.action, nil
	}
	return "Quit", nil
}

func (p *scriptedPrompter) Input(message string, defaultValue string) (string, error) {
	return p.value, nil
}

func (p *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

type sessionContext struct {
	frames      int
	fileChecker *mockFileChecker
	trimmer     *mockTrimmer
	prompter    *scriptedPrompter
	outcomes    []trimtool.TrimOutcome
	output      *bytes.Buffer
	err         error
}

var sharedSessionContext *sessionContext

func getSessionContext() *sessionContext {
	return sharedSessionContext
}

func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		fileChecker := &mockFileChecker{existingFiles: make(map[string]bool)}
		sharedSessionContext = &sessionContext{
			frames:      100,
			fileChecker: fileChecker,
			trimmer:     &mockTrimmer{fileChecker: fileChecker},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		sharedSessionContext = nil
		return c, nil
	})

	ctx.Step(`^a recording of (\d+) frames at "([^"]*)"$`, aRecordingOfFramesAt)
	ctx.Step(`^I run a session on "([^"]*)" with actions:$`, iRunASessionOnWithActions)
	ctx.Step(`^the session should end cleanly$`, theSessionShouldEndCleanly)
	ctx.Step(`^the session output should contain "([^"]*)"$`, theSessionOutputShouldContain)
	ctx.Step(`^the session output should not contain "([^"]*)"$`, theSessionOutputShouldNotContain)
	ctx.Step(`^the last status should contain "([^"]*)"$`, theLastStatusShouldContain)
	ctx.Step(`^the session should have trimmed frames (\d+) to (\d+)$`, theSessionShouldHaveTrimmedFramesTo)
	ctx.Step(`^the session should not have trimmed$`, theSessionShouldNotHaveTrimmed)
	ctx.Step(`^the trim should have written "([^"]*)"$`, theTrimShouldHaveWritten)
}

func aRecordingOfFramesAt(frames int, path string) error {
	s := getSessionContext()
	s.frames = frames
	s.fileChecker.existingFiles[path] = true
	return nil
}

func iRunASessionOnWithActions(path string, table *godog.Table) error {
	s := getSessionContext()

	var script []sessionAction
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		script = append(script, sessionAction{action: row.Cells[0].Value, value: row.Cells[1].Value})
	}

	outcomes := make(chan trimtool.TrimOutcome, 4)
	s.prompter = &scriptedPrompter{script: script, outcomes: outcomes}

	trimService := appvideo.NewTrimService(s.trimmer, s.fileChecker)
	tool := trimtool.NewTool(&syntheticDecoder{frames: s.frames}, trimService,
		trimtool.WithTrimListener(func(o trimtool.TrimOutcome) {
			s.outcomes = append(s.outcomes, o)
			outcomes <- o
		}),
	)

	s.err = cmd.RunSessionWithDependencies(context.Background(), tool, s.prompter, []string{path}, s.output)
	return nil
}

func theSessionShouldEndCleanly() error {
	s := getSessionContext()
	if s.err != nil {
		return fmt.Errorf("session failed: %w", s.err)
	}
	return s.prompter.waitErr
}

func theSessionOutputShouldContain(expected string) error {
	out := getSessionContext().output.String()
	if !strings.Contains(out, expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, out)
	}
	return nil
}

func theSessionOutputShouldNotContain(unexpected string) error {
	out := getSessionContext().output.String()
	if strings.Contains(out, unexpected) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", unexpected, out)
	}
	return nil
}

func theLastStatusShouldContain(expected string) error {
	statuses := getSessionContext().prompter.statuses
	if len(statuses) == 0 {
		return fmt.Errorf("no status was shown")
	}
	last := statuses[len(statuses)-1]
	if !strings.Contains(last, expected) {
		return fmt.Errorf("expected status to contain %q, got %q", expected, last)
	}
	return nil
}

func theSessionShouldHaveTrimmedFramesTo(start, end int) error {
	s := getSessionContext()
	if len(s.trimmer.calls) != 1 {
		return fmt.Errorf("expected one trim, got %d", len(s.trimmer.calls))
	}
	req := s.trimmer.calls[0].req
	if req.Start != start || req.End != end {
		return fmt.Errorf("expected frames %d-%d, got %d-%d", start, end, req.Start, req.End)
	}
	return nil
}

func theSessionShouldNotHaveTrimmed() error {
	if n := len(getSessionContext().trimmer.calls); n != 0 {
		return fmt.Errorf("expected no trim, got %d", n)
	}
	return nil
}

func theTrimShouldHaveWritten(path string) error {
	s := getSessionContext()
	if len(s.outcomes) == 0 {
		return fmt.Errorf("no trim finished")
	}
	o := s.outcomes[len(s.outcomes)-1]
	if o.Err != nil {
		return fmt.Errorf("trim failed: %w", o.Err)
	}
	if o.Result.OutputPath != path {
		return fmt.Errorf("expected output %q, got %q", path, o.Result.OutputPath)
	}
	return nil
}
