package surface

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"frametrim/domain/video"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		boxW, boxH   int
		wantW, wantH int
	}{
		{"wide into wide", 1920, 1080, 960, 540, 960, 540},
		{"wide into square", 1920, 1080, 400, 400, 400, 225},
		{"tall into wide", 1080, 1920, 960, 540, 303, 540},
		{"upscale", 320, 240, 640, 480, 640, 480},
		{"empty source", 0, 0, 640, 480, 0, 0},
		{"empty box", 320, 240, 0, 480, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.srcW, tt.srcH, tt.boxW, tt.boxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPNGSurface_RenderWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	s := NewPNGSurface(path, 320, 200)

	start, end := 3, 7
	err := s.Render(video.Frame{Index: 5, Image: solid(64, 36, color.RGBA{R: 200, A: 255})}, video.Overlay{
		Index: 5,
		Total: 10,
		State: "paused",
		Marks: video.Marks{Start: &start, End: &end},
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 200), img.Bounds())

	r, _, _, _ := img.At(160, 88).RGBA()
	assert.Greater(t, r>>8, uint32(150), "frame should be drawn in the centre")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestPNGSurface_InMemory(t *testing.T) {
	s := NewPNGSurface("", 100, 100, WithHUD(false))
	assert.Nil(t, s.Last())

	require.NoError(t, s.Render(video.Frame{Image: solid(10, 10, color.White)}, video.Overlay{}))

	last := s.Last()
	require.NotNil(t, last)
	r, g, b, _ := last.At(90, 90).RGBA()
	assert.Equal(t, uint32(0xffff), r&g&b, "without HUD the frame covers the bottom rows")
}

func TestPNGSurface_RejectsEmptyFrame(t *testing.T) {
	s := NewPNGSurface("", 100, 100)
	assert.Error(t, s.Render(video.Frame{Index: 2}, video.Overlay{}))
}

func TestHUDRight(t *testing.T) {
	start := 4
	got := hudRight(video.Overlay{State: "playing", Marks: video.Marks{Start: &start}})
	assert.Equal(t, "playing  in 4", got)
}
