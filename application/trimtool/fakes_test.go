package trimtool

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"sync"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/video"
)

// fakeDecoder opens synthetic sources of a fixed length
type fakeDecoder struct {
	total   int
	badAt   map[int]bool
	openErr error
	handles []*fakeHandle
}

func (d *fakeDecoder) Open(ctx context.Context, path string) (video.Handle, error) {
	if d.openErr != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrUnreadableSource, d.openErr)
	}
	h := &fakeHandle{
		session: video.Session{SourcePath: path, TotalFrames: d.total, FrameRate: 25, Width: 4, Height: 4},
		badAt:   d.badAt,
	}
	d.handles = append(d.handles, h)
	return h, nil
}

func (d *fakeDecoder) openHandles() int {
	n := 0
	for _, h := range d.handles {
		if !h.closed {
			n++
		}
	}
	return n
}

type fakeHandle struct {
	session video.Session
	badAt   map[int]bool
	reads   []int
	closed  bool
}

func (h *fakeHandle) Session() video.Session {
	return h.session
}

func (h *fakeHandle) SeekAndRead(ctx context.Context, index int) (video.Frame, error) {
	h.reads = append(h.reads, index)
	if h.closed {
		return video.Frame{}, video.ErrDecodeFailure
	}
	if index >= h.session.TotalFrames {
		return video.Frame{}, video.ErrEndOfStream
	}
	if h.badAt[index] {
		return video.Frame{}, fmt.Errorf("%w: corrupt frame", video.ErrDecodeFailure)
	}
	return video.Frame{Index: index, Image: image.NewGray(image.Rect(0, 0, 4, 4))}, nil
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

// fakeSurface records the index of every rendered frame
type fakeSurface struct {
	rendered []int
	overlays []video.Overlay
}

func (s *fakeSurface) Render(frame video.Frame, overlay video.Overlay) error {
	s.rendered = append(s.rendered, frame.Index)
	s.overlays = append(s.overlays, overlay)
	return nil
}

func (s *fakeSurface) last() int {
	if len(s.rendered) == 0 {
		return -1
	}
	return s.rendered[len(s.rendered)-1]
}

// fakeMirror is a slider and a text field. With echo set it behaves like a
// toolkit that reports programmatic changes as user input.
type fakeMirror struct {
	max        int
	slider     int
	text       string
	sliderSets int
	textSets   int
	echo       *Tool
	echoErrs   []error
}

func (m *fakeMirror) SetRange(min, max int) {
	m.max = max
}

func (m *fakeMirror) SetValue(v int) {
	m.slider = v
	m.sliderSets++
	if m.echo != nil {
		m.echoErrs = append(m.echoErrs, m.echo.SetFromSlider(context.Background(), v+1))
	}
}

func (m *fakeMirror) SetText(text string) {
	m.text = text
	m.textSets++
	if m.echo != nil {
		m.echoErrs = append(m.echoErrs, m.echo.SetFromText(context.Background(), text+"0"))
	}
}

func (m *fakeMirror) textValue() int {
	v, err := strconv.Atoi(m.text)
	if err != nil {
		return -1
	}
	return v
}

// fakeTrimmer blocks until released when gate is set
type fakeTrimmer struct {
	mu    sync.Mutex
	calls []appvideo.TrimInput
	err   error
	gate  chan struct{}
}

func (f *fakeTrimmer) Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	f.mu.Unlock()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &appvideo.TrimResult{
		OutputPath: "/videos/clip_trimmed.mp4",
		Start:      *input.Marks.Start,
		End:        *input.Marks.End,
	}, nil
}

func (f *fakeTrimmer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// manualTicker is driven by the test
type manualTicker struct {
	ch      chan time.Time
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time {
	return m.ch
}

func (m *manualTicker) Stop() {
	m.stopped = true
}

type manualTickers struct {
	mu      sync.Mutex
	created []*manualTicker
}

func (f *manualTickers) factory(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	f.created = append(f.created, t)
	return t
}

func (f *manualTickers) latest() *manualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

type fixture struct {
	tool    *Tool
	decoder *fakeDecoder
	surface *fakeSurface
	mirror  *fakeMirror
	trimmer *fakeTrimmer
	tickers *manualTickers
}

func newFixture(total int, opts ...Option) *fixture {
	f := &fixture{
		decoder: &fakeDecoder{total: total},
		surface: &fakeSurface{},
		mirror:  &fakeMirror{},
		trimmer: &fakeTrimmer{},
		tickers: &manualTickers{},
	}
	base := []Option{
		WithSurface(f.surface),
		WithSlider(f.mirror),
		WithTextField(f.mirror),
		WithTickerFactory(f.tickers.factory),
	}
	f.tool = NewTool(f.decoder, f.trimmer, append(base, opts...)...)
	return f
}

func (f *fixture) handle() *fakeHandle {
	return f.decoder.handles[len(f.decoder.handles)-1]
}
