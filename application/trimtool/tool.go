// Package trimtool is the playback and seek engine of the trim tool. A Tool
// keeps one decoder handle, the playback clock, the position, the marks and
// the UI mirrors consistent. It is not safe for concurrent use; Loop owns a
// Tool on a single goroutine.
package trimtool

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	appvideo "frametrim/application/video"
	"frametrim/domain/logging"
	"frametrim/domain/playback"
	"frametrim/domain/video"
	"frametrim/infrastructure/logger"
)

// TrimRunner performs the encode for a trim request
type TrimRunner interface {
	Trim(ctx context.Context, input appvideo.TrimInput) (*appvideo.TrimResult, error)
}

// Tool is one trim tool instance
type Tool struct {
	decoder   video.Decoder
	trimmer   TrimRunner
	surface   video.Surface
	slider    video.Slider
	text      video.TextField
	logger    logging.Logger
	allowList []string
	onTrim    func(TrimOutcome)

	handle    video.Handle
	session   video.Session
	pos       Position
	marks     video.MarkBuffer
	state     playback.State
	clock     *Clock
	mirroring bool

	task     *trimTask
	results  chan TrimOutcome
	lastTrim *TrimOutcome
}

// Option configures a Tool
type Option func(*toolOptions)

type toolOptions struct {
	surface   video.Surface
	slider    video.Slider
	text      video.TextField
	logger    logging.Logger
	allowList []string
	interval  time.Duration
	tickers   TickerFactory
	onTrim    func(TrimOutcome)
}

// WithSurface sets where frames are rendered
func WithSurface(s video.Surface) Option {
	return func(o *toolOptions) {
		o.surface = s
	}
}

// WithSlider sets the position slider mirror
func WithSlider(s video.Slider) Option {
	return func(o *toolOptions) {
		o.slider = s
	}
}

// WithTextField sets the frame number field mirror
func WithTextField(f video.TextField) Option {
	return func(o *toolOptions) {
		o.text = f
	}
}

// WithLogger sets the tool logger
func WithLogger(l logging.Logger) Option {
	return func(o *toolOptions) {
		o.logger = l
	}
}

// WithAllowList sets the extensions accepted by Drop
func WithAllowList(exts []string) Option {
	return func(o *toolOptions) {
		if len(exts) > 0 {
			o.allowList = exts
		}
	}
}

// WithTickInterval sets the playback clock interval
func WithTickInterval(d time.Duration) Option {
	return func(o *toolOptions) {
		o.interval = d
	}
}

// WithTickerFactory replaces the clock's ticker source (for testing)
func WithTickerFactory(f TickerFactory) Option {
	return func(o *toolOptions) {
		o.tickers = f
	}
}

// WithTrimListener is called on the owning goroutine when a trim finishes
func WithTrimListener(fn func(TrimOutcome)) Option {
	return func(o *toolOptions) {
		o.onTrim = fn
	}
}

// NewTool creates a tool with no source loaded
func NewTool(decoder video.Decoder, trimmer TrimRunner, opts ...Option) *Tool {
	o := toolOptions{
		logger:    logger.NewNop(),
		allowList: video.DefaultVideoExtensions,
		interval:  DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tool{
		decoder:   decoder,
		trimmer:   trimmer,
		surface:   o.surface,
		slider:    o.slider,
		text:      o.text,
		logger:    o.logger.WithComponent("tool"),
		allowList: o.allowList,
		onTrim:    o.onTrim,
		clock:     NewClock(o.interval, o.tickers),
		results:   make(chan TrimOutcome, 1),
	}
	t.pos.Reset(0)
	return t
}

// Loaded reports whether a source is open
func (t *Tool) Loaded() bool {
	return t.handle != nil
}

// Load opens path as the current source. Any previous handle is closed
// first, the marks are cleared and frame 0 is shown with playback stopped.
func (t *Tool) Load(ctx context.Context, path string) error {
	t.unload()

	h, err := t.decoder.Open(ctx, path)
	if err != nil {
		t.logger.Error("Cannot open %s: %s", path, err)
		return err
	}

	t.handle = h
	t.session = h.Session()
	t.pos.Reset(t.session.TotalFrames)
	t.logger.Info("Loaded %s", t.session)

	t.mirroring = true
	if t.slider != nil {
		t.slider.SetRange(0, max(t.pos.Max(), 0))
	}
	t.mirroring = false

	if !t.session.HasFrames() {
		return nil
	}

	if err := t.show(ctx, 0); err != nil {
		t.logger.Warn("Frame %d could not be decoded: %s", 0, err)
		t.pos.Show(0)
	}
	t.mirror(true, true)
	return nil
}

// Drop loads the first dropped path when its extension is accepted.
// Anything else is ignored without error.
func (t *Tool) Drop(ctx context.Context, paths []string) (bool, error) {
	path, ok := video.AcceptDrop(paths, t.allowList)
	if !ok {
		if len(paths) > 0 {
			t.logger.Debug("Ignored dropped file %s", paths[0])
		}
		return false, nil
	}
	return true, t.Load(ctx, path)
}

func (t *Tool) unload() {
	t.clock.Stop()
	t.state = playback.Stopped
	t.marks.Clear()
	t.pos.Reset(0)
	if t.handle == nil {
		return
	}
	if err := t.handle.Close(); err != nil {
		t.logger.Warn("Cannot close %s: %s", t.session.SourcePath, err)
	} else {
		t.logger.Debug("Closed %s", t.session.SourcePath)
	}
	t.handle = nil
	t.session = video.Session{}
}

// Close stops playback, cancels a running trim and releases the source
func (t *Tool) Close() {
	t.CancelTrim()
	t.unload()
}

// Play starts the playback clock from the frame after the current one
func (t *Tool) Play() error {
	if !t.Loaded() {
		return video.ErrNoSession
	}
	return t.command(playback.CmdStart)
}

// Pause halts the playback clock keeping the position
func (t *Tool) Pause() error {
	return t.command(playback.CmdPause)
}

// Stop halts the playback clock keeping the position
func (t *Tool) Stop() error {
	return t.command(playback.CmdStop)
}

// TogglePlay switches between playing and paused
func (t *Tool) TogglePlay() error {
	if t.state == playback.Playing {
		return t.Pause()
	}
	return t.Play()
}

func (t *Tool) command(cmd playback.Command) error {
	next, ok := playback.Transition(t.state, cmd)
	if !ok {
		return nil
	}
	t.state = next
	if next == playback.Playing {
		t.clock.Start()
	} else {
		t.clock.Stop()
	}
	t.logger.Debug("Playback %s", next)
	return nil
}

// Tick advances playback by one frame. It does nothing unless playing.
// Reaching the end of the stream or an undecodable frame pauses playback.
func (t *Tool) Tick(ctx context.Context) {
	if t.state != playback.Playing || !t.Loaded() {
		return
	}

	index := t.pos.Cursor()
	err := t.show(ctx, index)
	switch {
	case err == nil:
		t.mirror(true, true)
	case errors.Is(err, video.ErrEndOfStream):
		t.logger.Debug("Reached end of stream at frame %d", index)
		t.command(playback.CmdHalt)
	default:
		t.logger.Warn("Frame %d could not be decoded: %s", index, err)
		t.command(playback.CmdHalt)
	}
}

// SetFromSlider moves to the slider value, clamped to the source. The
// slider already shows the value, so only the text field is updated.
func (t *Tool) SetFromSlider(ctx context.Context, value int) error {
	if t.mirroring {
		return nil
	}
	if !t.session.HasFrames() {
		return video.ErrNoSession
	}

	index := t.pos.Clamp(value)
	if err := t.show(ctx, index); err != nil {
		t.logger.Warn("Frame %d could not be decoded: %s", index, err)
		if t.pos.Defined() {
			t.mirror(true, false)
		}
		return err
	}
	t.mirror(false, true)
	return nil
}

// SetFromText moves to the frame typed into the text field. Input that is
// not an integer frame index of the source is rejected and nothing changes.
// Typing never starts playback.
func (t *Tool) SetFromText(ctx context.Context, text string) error {
	if t.mirroring {
		return nil
	}
	if !t.session.HasFrames() {
		return video.ErrNoSession
	}

	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || !t.pos.Valid(index) {
		t.logger.Debug("Rejected frame input %q", text)
		return fmt.Errorf("%w: %q is not a frame in [0, %d]", video.ErrInvalidUserInput, text, t.pos.Max())
	}

	if err := t.show(ctx, index); err != nil {
		t.logger.Warn("Frame %d could not be decoded: %s", index, err)
		return err
	}
	t.mirror(true, true)
	return nil
}

// MarkStart snapshots the current position as the trim start
func (t *Tool) MarkStart() error {
	if !t.pos.Defined() {
		return video.ErrNoSession
	}
	t.marks.SetStart(t.pos.Current())
	t.logger.Info("Start frame set to %d", t.pos.Current())
	return nil
}

// MarkEnd snapshots the current position as the trim end
func (t *Tool) MarkEnd() error {
	if !t.pos.Defined() {
		return video.ErrNoSession
	}
	t.marks.SetEnd(t.pos.Current())
	t.logger.Info("End frame set to %d", t.pos.Current())
	return nil
}

// show decodes and renders index and makes it the current position
func (t *Tool) show(ctx context.Context, index int) error {
	frame, err := t.handle.SeekAndRead(ctx, index)
	if err != nil {
		return err
	}
	t.pos.Show(index)

	if t.surface != nil {
		if err := t.surface.Render(frame, t.overlay()); err != nil {
			t.logger.Warn("Cannot render frame %d: %s", index, err)
		}
	}
	return nil
}

// mirror pushes the position to the UI controls. Change notifications the
// controls emit while being set are ignored by the Set* intents.
func (t *Tool) mirror(slider, text bool) {
	t.mirroring = true
	defer func() { t.mirroring = false }()

	current := t.pos.Current()
	if slider && t.slider != nil {
		t.slider.SetValue(current)
	}
	if text && t.text != nil {
		t.text.SetText(strconv.Itoa(current))
	}
}

func (t *Tool) overlay() video.Overlay {
	return video.Overlay{
		Index: t.pos.Current(),
		Total: t.pos.Total(),
		Time:  video.TimestampForFrame(t.pos.Current(), t.session.FrameRate),
		State: t.state.String(),
		Marks: t.marks.Snapshot(),
	}
}

// Snapshot is a read-only view of the tool state
type Snapshot struct {
	Session  video.Session
	Loaded   bool
	Position int
	Cursor   int
	Time     video.Timestamp
	State    playback.State
	Marks    video.Marks
	Trimming bool
	TrimID   string
	LastTrim *TrimOutcome
}

// Snapshot returns the current state
func (t *Tool) Snapshot() Snapshot {
	s := Snapshot{
		Session:  t.session,
		Loaded:   t.Loaded(),
		Position: t.pos.Current(),
		Cursor:   t.pos.Cursor(),
		State:    t.state,
		Marks:    t.marks.Snapshot(),
		LastTrim: t.lastTrim,
	}
	if t.pos.Defined() {
		s.Time = video.TimestampForFrame(t.pos.Current(), t.session.FrameRate)
	}
	if t.task != nil {
		s.Trimming = true
		s.TrimID = t.task.id
	}
	return s
}

// Clock exposes the playback clock to the owning loop
func (t *Tool) Clock() *Clock {
	return t.clock
}
