package video

import (
	"errors"
	"fmt"
	"strings"
)

// Errors raised by the trim tool. Only trim outcomes are surfaced to the user;
// decode conditions are handled inside the playback loop.
var (
	ErrUnreadableSource = errors.New("unreadable source")
	ErrEndOfStream      = errors.New("end of stream")
	ErrDecodeFailure    = errors.New("decode failure")
	ErrInvalidUserInput = errors.New("invalid user input")
	ErrEncodeFailed     = errors.New("encode failed")
	ErrRevealFailed     = errors.New("reveal failed")
	ErrMarksIncomplete  = errors.New("start and end marks must both be set")
	ErrInvalidRange     = errors.New("invalid frame range")
	ErrNoSession        = errors.New("no video loaded")
	ErrTrimInProgress   = errors.New("a trim is already running")
)

// EncodeError carries the diagnostics of a failed encoder process
type EncodeError struct {
	ExitCode int
	Output   string
	Err      error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("%s (exit code %d)", ErrEncodeFailed, e.ExitCode)
	if e.Err != nil && e.ExitCode < 0 {
		msg = fmt.Sprintf("%s: %v", ErrEncodeFailed, e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + lastLines(out, 8)
	}
	return msg
}

// Unwrap lets errors.Is match both ErrEncodeFailed and the underlying cause
func (e *EncodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEncodeFailed}
	}
	return []error{ErrEncodeFailed, e.Err}
}

// lastLines keeps the tail of noisy encoder output
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
