package surface

import (
	"sync"

	"frametrim/domain/logging"
	"frametrim/domain/video"
)

// ConsoleMirror stands in for the slider and the frame number field of a
// graphical front end. It remembers the last mirrored values and logs them
// at debug level.
type ConsoleMirror struct {
	logger logging.Logger

	mu     sync.Mutex
	min    int
	max    int
	slider int
	text   string
}

// NewConsoleMirror creates a mirror logging through logger
func NewConsoleMirror(logger logging.Logger) *ConsoleMirror {
	return &ConsoleMirror{logger: logger.WithComponent("mirror")}
}

// SetRange implements video.Slider
func (m *ConsoleMirror) SetRange(min, max int) {
	m.mu.Lock()
	m.min, m.max = min, max
	m.mu.Unlock()
}

// SetValue implements video.Slider
func (m *ConsoleMirror) SetValue(v int) {
	m.mu.Lock()
	m.slider = v
	max := m.max
	m.mu.Unlock()
	m.logger.Debug("Slider %d / %d", v, max)
}

// SetText implements video.TextField
func (m *ConsoleMirror) SetText(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	m.logger.Debug("Frame field %s", text)
}

// Values returns the slider value, slider maximum and field text
func (m *ConsoleMirror) Values() (slider, max int, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slider, m.max, m.text
}

var (
	_ video.Slider    = (*ConsoleMirror)(nil)
	_ video.TextField = (*ConsoleMirror)(nil)
)
