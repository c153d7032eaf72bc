package mp4meta

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"frametrim/domain/video"

	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
)

// writeFragmentedMP4 writes a video-only fragmented file of frames samples,
// each lasting dur ticks of timescale
func writeFragmentedMP4(t *testing.T, path string, frames int, timescale, dur uint32) {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "und")

	frag, err := mp4.CreateFragment(1, 1)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	payload := []byte{0, 0, 0, 1}
	for i := 0; i < frames; i++ {
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(payload)),
				Dur:   dur,
			},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       payload,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestProbe_FragmentedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	writeFragmentedMP4(t, path, 50, 12800, 512)

	session, err := NewProber().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.SourcePath != path {
		t.Errorf("expected source path %q, got %q", path, session.SourcePath)
	}
	if session.TotalFrames != 50 {
		t.Errorf("expected 50 frames, got %d", session.TotalFrames)
	}
	if session.FrameRate < 24.99 || session.FrameRate > 25.01 {
		t.Errorf("expected 25 fps, got %f", session.FrameRate)
	}
}

// writeProgressiveMP4 writes a non-fragmented file whose sample table lists
// frames samples of dur ticks each, followed by their mdat payload
func writeProgressiveMP4(t *testing.T, path string, frames int, timescale, dur uint32, width, height uint16) {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "und")
	moov := init.Moov

	children := moov.Children[:0]
	for _, child := range moov.Children {
		if child.Type() != "mvex" {
			children = append(children, child)
		}
	}
	moov.Children = children
	moov.Mvex = nil

	trak := moov.Trak
	entry := mp4.CreateVisualSampleEntryBox("av01", width, height, &mp4.Av1CBox{
		CodecConfRec: av1.CodecConfRec{
			Version:            1,
			SeqLevelIdx0:       8,
			ChromaSubsamplingX: 1,
			ChromaSubsamplingY: 1,
		},
	})
	trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)
	trak.Tkhd.Width = mp4.Fixed32(uint32(width) << 16)
	trak.Tkhd.Height = mp4.Fixed32(uint32(height) << 16)
	trak.Mdia.Mdhd.Duration = uint64(frames) * uint64(dur)

	const sampleSize = 4
	stsz := trak.Mdia.Minf.Stbl.Stsz
	stsz.SampleUniformSize = sampleSize
	stsz.SampleNumber = uint32(frames)

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	mdat := &mp4.MdatBox{Data: make([]byte, frames*sampleSize)}
	if err := mdat.Encode(&buf); err != nil {
		t.Fatalf("encode mdat: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestSessionFromProgressiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mov")
	writeProgressiveMP4(t, path, 120, 30000, 1001, 320, 240)

	session, err := NewProber().Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.TotalFrames != 120 {
		t.Errorf("expected 120 frames, got %d", session.TotalFrames)
	}
	if session.FrameRate < 29.96 || session.FrameRate > 29.98 {
		t.Errorf("expected 29.97 fps, got %f", session.FrameRate)
	}
	if session.Width != 320 || session.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", session.Width, session.Height)
	}
}

func TestProbe_UnsupportedExtension(t *testing.T) {
	_, err := NewProber().Probe(context.Background(), "/videos/clip.avi")
	if !errors.Is(err, video.ErrUnreadableSource) {
		t.Errorf("expected ErrUnreadableSource, got %v", err)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	_, err := NewProber().Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, video.ErrUnreadableSource) {
		t.Errorf("expected ErrUnreadableSource, got %v", err)
	}
}

func TestProbe_NotAContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.mov")
	if err := os.WriteFile(path, []byte("plain text, not boxes"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewProber().Probe(context.Background(), path)
	if !errors.Is(err, video.ErrUnreadableSource) {
		t.Errorf("expected ErrUnreadableSource, got %v", err)
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.mp4", true},
		{"a.MOV", true},
		{"a.m4v", true},
		{"a.avi", false},
		{"a", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Supports(tt.path); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
