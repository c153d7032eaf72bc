package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"frametrim/domain/video"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

const hudHeight = 24

var (
	background = color.RGBA{R: 16, G: 16, B: 16, A: 255}
	hudColor   = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	hudText    = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	markColor  = color.RGBA{R: 255, G: 196, B: 0, A: 255}
)

// PNGSurface renders each frame into a fixed-size canvas and writes it to a
// PNG file. Image viewers that reload on change show it as a live preview.
type PNGSurface struct {
	path   string
	width  int
	height int
	hud    bool

	mu   sync.Mutex
	last image.Image
}

// Option configures a PNGSurface
type Option func(*PNGSurface)

// WithHUD toggles the status strip under the frame
func WithHUD(enabled bool) Option {
	return func(s *PNGSurface) {
		s.hud = enabled
	}
}

// NewPNGSurface creates a surface writing to path. An empty path keeps the
// composed image in memory only.
func NewPNGSurface(path string, width, height int, opts ...Option) *PNGSurface {
	s := &PNGSurface{
		path:   path,
		width:  width,
		height: height,
		hud:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render implements video.Surface
func (s *PNGSurface) Render(frame video.Frame, overlay video.Overlay) error {
	if frame.Image == nil {
		return fmt.Errorf("frame %d has no image", frame.Index)
	}

	img := s.compose(frame, overlay)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = img

	if s.path == "" {
		return nil
	}
	return writePNG(s.path, img)
}

// Last returns the most recently composed image, or nil
func (s *PNGSurface) Last() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Path returns the preview file path
func (s *PNGSurface) Path() string {
	return s.path
}

func (s *PNGSurface) compose(frame video.Frame, overlay video.Overlay) image.Image {
	boxH := s.height
	if s.hud {
		boxH -= hudHeight
	}

	dc := gg.NewContext(s.width, s.height)
	dc.SetColor(background)
	dc.Clear()

	src := frame.Image.Bounds()
	w, h := FitSize(src.Dx(), src.Dy(), s.width, boxH)
	if w > 0 && h > 0 {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), frame.Image, src, draw.Over, nil)
		dc.DrawImage(scaled, (s.width-w)/2, (boxH-h)/2)
	}

	if s.hud {
		drawHUD(dc, overlay, float64(boxH), float64(s.width))
	}

	return dc.Image()
}

func drawHUD(dc *gg.Context, overlay video.Overlay, top, width float64) {
	dc.SetColor(hudColor)
	dc.DrawRectangle(0, top, width, hudHeight)
	dc.Fill()

	if overlay.Total > 1 {
		scale := width / float64(overlay.Total-1)
		dc.SetColor(markColor)
		dc.SetLineWidth(2)
		if overlay.Marks.Start != nil {
			x := float64(*overlay.Marks.Start) * scale
			dc.DrawLine(x, top, x, top+hudHeight)
			dc.Stroke()
		}
		if overlay.Marks.End != nil {
			x := float64(*overlay.Marks.End) * scale
			dc.DrawLine(x, top, x, top+hudHeight)
			dc.Stroke()
		}
	}

	dc.SetColor(hudText)
	mid := top + hudHeight/2
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d  %s", overlay.Index, overlay.LastIndex(), overlay.Time), 8, mid, 0, 0.5)
	dc.DrawStringAnchored(hudRight(overlay), width-8, mid, 1, 0.5)
}

func hudRight(overlay video.Overlay) string {
	parts := []string{overlay.State}
	if overlay.Marks.Start != nil {
		parts = append(parts, fmt.Sprintf("in %d", *overlay.Marks.Start))
	}
	if overlay.Marks.End != nil {
		parts = append(parts, fmt.Sprintf("out %d", *overlay.Marks.End))
	}
	return strings.Join(parts, "  ")
}

// FitSize scales srcW x srcH to the largest size that fits in boxW x boxH
// while keeping the aspect ratio.
func FitSize(srcW, srcH, boxW, boxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	if srcW*boxH > srcH*boxW {
		return boxW, max(1, srcH*boxW/srcW)
	}
	return max(1, srcW*boxH/srcH), boxH
}

// writePNG replaces path atomically so viewers never read a partial file
func writePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".preview-*.png")
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace preview: %w", err)
	}
	return nil
}

// Ensure PNGSurface implements video.Surface
var _ video.Surface = (*PNGSurface)(nil)
