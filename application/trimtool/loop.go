package trimtool

import (
	"context"
	"errors"
)

// ErrLoopClosed is returned for intents submitted after the loop stopped
var ErrLoopClosed = errors.New("trim tool loop closed")

// Intent is a user action applied to the tool on the loop goroutine
type Intent func(ctx context.Context, t *Tool) error

type event struct {
	intent Intent
	reply  chan error
}

// Loop owns a Tool on one goroutine. Intents from any goroutine are applied
// one at a time in the order they arrive; playback ticks and trim outcomes
// are handled on the same goroutine, so the tool needs no locking. A slow
// decode delays everything queued behind it.
type Loop struct {
	tool   *Tool
	events chan event
	done   chan struct{}
}

// NewLoop creates a loop for tool. Call Run to start it.
func NewLoop(tool *Tool) *Loop {
	return &Loop{
		tool:   tool,
		events: make(chan event),
		done:   make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled, then closes the tool
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.tool.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			ev.reply <- ev.intent(ctx, l.tool)
		case <-l.tool.Clock().C():
			l.tool.Tick(ctx)
		case o := <-l.tool.TrimDone():
			l.tool.FinishTrim(o)
		}
	}
}

// Do applies intent on the loop goroutine and waits for its result
func (l *Loop) Do(ctx context.Context, intent Intent) error {
	ev := event{intent: intent, reply: make(chan error, 1)}

	select {
	case l.events <- ev:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-ev.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load opens path as the current source
func (l *Loop) Load(ctx context.Context, path string) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error {
		return t.Load(ctx, path)
	})
}

// Drop applies the drop rules to paths
func (l *Loop) Drop(ctx context.Context, paths []string) (bool, error) {
	var loaded bool
	err := l.Do(ctx, func(ctx context.Context, t *Tool) error {
		var err error
		loaded, err = t.Drop(ctx, paths)
		return err
	})
	return loaded, err
}

// Play starts playback
func (l *Loop) Play(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.Play() })
}

// Pause pauses playback
func (l *Loop) Pause(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.Pause() })
}

// Stop stops playback
func (l *Loop) Stop(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.Stop() })
}

// TogglePlay switches between playing and paused
func (l *Loop) TogglePlay(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.TogglePlay() })
}

// Seek moves as if the slider was dragged to value
func (l *Loop) Seek(ctx context.Context, value int) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error {
		return t.SetFromSlider(ctx, value)
	})
}

// Enter moves as if text was typed into the frame field
func (l *Loop) Enter(ctx context.Context, text string) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error {
		return t.SetFromText(ctx, text)
	})
}

// MarkStart sets the start mark at the current position
func (l *Loop) MarkStart(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.MarkStart() })
}

// MarkEnd sets the end mark at the current position
func (l *Loop) MarkEnd(ctx context.Context) error {
	return l.Do(ctx, func(ctx context.Context, t *Tool) error { return t.MarkEnd() })
}

// RequestTrim starts a background trim of the marked range
func (l *Loop) RequestTrim(ctx context.Context) (TrimTicket, error) {
	var ticket TrimTicket
	err := l.Do(ctx, func(ctx context.Context, t *Tool) error {
		var err error
		ticket, err = t.RequestTrim(ctx)
		return err
	})
	return ticket, err
}

// CancelTrim cancels the running trim
func (l *Loop) CancelTrim(ctx context.Context) (bool, error) {
	var cancelled bool
	err := l.Do(ctx, func(ctx context.Context, t *Tool) error {
		cancelled = t.CancelTrim()
		return nil
	})
	return cancelled, err
}

// Snapshot returns the tool state
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := l.Do(ctx, func(ctx context.Context, t *Tool) error {
		s = t.Snapshot()
		return nil
	})
	return s, err
}
