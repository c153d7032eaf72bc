// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"frametrim/domain/logging"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console logs translated messages to stdout/stderr with optional color.
type Console struct {
	level     logging.Level
	component string
	color     bool
	out       io.Writer
	errOut    io.Writer
	mu        *sync.Mutex
}

// NewConsole creates a console logger writing to stdout and stderr.
// Color output is enabled when stdout is a terminal.
func NewConsole(level logging.Level) *Console {
	return &Console{
		level:  level,
		color:  isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		out:    os.Stdout,
		errOut: os.Stderr,
		mu:     &sync.Mutex{},
	}
}

// NewWriter creates an uncolored logger that sends every level to w.
func NewWriter(level logging.Level, w io.Writer) *Console {
	return &Console{
		level:  level,
		out:    w,
		errOut: w,
		mu:     &sync.Mutex{},
	}
}

// Debug logs a debug message.
func (l *Console) Debug(msg string, args ...interface{}) {
	l.log(logging.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *Console) Info(msg string, args ...interface{}) {
	l.log(logging.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Console) Warn(msg string, args ...interface{}) {
	l.log(logging.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Console) Error(msg string, args ...interface{}) {
	l.log(logging.LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
func (l *Console) WithComponent(component string) logging.Logger {
	child := *l
	child.component = component
	return &child
}

func (l *Console) log(level logging.Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	translated := l10n.F(msg, args...)

	var line string
	switch {
	case l.component != "" && l.color:
		line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
	case l.component != "":
		line = fmt.Sprintf("[%s] %s", l.component, translated)
	default:
		line = translated
	}

	if l.color {
		switch level {
		case logging.LevelDebug:
			line = colorGray + line + colorReset
		case logging.LevelWarn:
			line = colorYellow + line + colorReset
		case logging.LevelError:
			line = colorRed + line + colorReset
		}
	}

	w := l.out
	if level >= logging.LevelWarn {
		w = l.errOut
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(w, line)
}

// Ensure Console implements logging.Logger
var _ logging.Logger = (*Console)(nil)
