package trimtool

import (
	"context"
	"errors"
	"fmt"

	appvideo "frametrim/application/video"
	"frametrim/domain/video"

	"github.com/google/uuid"
)

// TrimTicket acknowledges a trim request
type TrimTicket struct {
	// ID identifies the background task; empty when Skipped
	ID      string
	Start   int
	End     int
	Skipped bool
}

// TrimOutcome is delivered to the owning goroutine when a trim task ends
type TrimOutcome struct {
	ID     string
	Result *appvideo.TrimResult
	Err    error
}

// Cancelled reports whether the task was cancelled before finishing
func (o TrimOutcome) Cancelled() bool {
	return errors.Is(o.Err, context.Canceled)
}

type trimTask struct {
	id     string
	cancel context.CancelFunc
}

// RequestTrim starts encoding the marked range in the background. Playback
// and seeking keep working while it runs. Without both marks nothing is
// started and the ticket is Skipped.
func (t *Tool) RequestTrim(ctx context.Context) (TrimTicket, error) {
	if !t.Loaded() {
		return TrimTicket{}, video.ErrNoSession
	}
	if t.task != nil {
		return TrimTicket{}, fmt.Errorf("%w: %s", video.ErrTrimInProgress, t.task.id)
	}

	start, end, ok := t.marks.Range()
	if !ok {
		t.logger.Info("Trim skipped: %s", video.ErrMarksIncomplete)
		return TrimTicket{Skipped: true}, nil
	}
	if start > end {
		return TrimTicket{}, fmt.Errorf("%w: start %d is after end %d", video.ErrInvalidRange, start, end)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	t.task = &trimTask{id: id, cancel: cancel}

	input := appvideo.TrimInput{SourcePath: t.session.SourcePath, Marks: t.marks.Snapshot()}
	trimmer, results := t.trimmer, t.results
	go func() {
		result, err := trimmer.Trim(taskCtx, input)
		results <- TrimOutcome{ID: id, Result: result, Err: err}
	}()

	return TrimTicket{ID: id, Start: start, End: end}, nil
}

// CancelTrim cancels the running trim. The outcome still arrives on
// TrimDone. It reports whether a trim was running.
func (t *Tool) CancelTrim() bool {
	if t.task == nil {
		return false
	}
	t.task.cancel()
	return true
}

// TrimDone delivers the outcome of the running trim task
func (t *Tool) TrimDone() <-chan TrimOutcome {
	return t.results
}

// FinishTrim records a trim outcome received from TrimDone
func (t *Tool) FinishTrim(o TrimOutcome) {
	if t.task == nil || t.task.id != o.ID {
		return
	}
	t.task.cancel()
	t.task = nil
	t.lastTrim = &o

	if o.Cancelled() {
		t.logger.Info("Trim cancelled")
	}
	if t.onTrim != nil {
		t.onTrim(o)
	}
}
