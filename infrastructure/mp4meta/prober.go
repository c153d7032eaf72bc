// Package mp4meta reads frame counts and rates straight from MP4/QuickTime
// sample tables, avoiding a full ffprobe packet scan.
package mp4meta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frametrim/domain/video"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Prober implements video.Prober for ISO-BMFF containers
type Prober struct{}

// NewProber creates a new MP4 metadata prober
func NewProber() *Prober {
	return &Prober{}
}

// Supports reports whether the file extension is an ISO-BMFF container
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// Probe implements video.Prober
func (p *Prober) Probe(ctx context.Context, path string) (video.Session, error) {
	if !Supports(path) {
		return video.Session{}, fmt.Errorf("%w: %s is not an mp4 container", video.ErrUnreadableSource, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return video.Session{}, fmt.Errorf("%w: %v", video.ErrUnreadableSource, err)
	}
	defer f.Close()

	// sample payloads are never read; only box headers are parsed
	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return video.Session{}, fmt.Errorf("%w: decode mp4: %v", video.ErrUnreadableSource, err)
	}

	session, err := sessionFromFile(mp4File)
	if err != nil {
		return video.Session{}, fmt.Errorf("%w: %v", video.ErrUnreadableSource, err)
	}
	session.SourcePath = path
	return session, nil
}

func sessionFromFile(mp4File *mp4.File) (video.Session, error) {
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return video.Session{}, fmt.Errorf("no moov box found")
	}

	var trak *mp4.TrakBox
	for _, t := range moov.Traks {
		if t.Mdia != nil && t.Mdia.Hdlr != nil && t.Mdia.Hdlr.HandlerType == "vide" {
			trak = t
			break
		}
	}
	if trak == nil {
		return video.Session{}, fmt.Errorf("no video track found")
	}

	var session video.Session
	var timescale uint32
	var duration uint64
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
		duration = trak.Mdia.Mdhd.Duration
	}

	if stbl := sampleTable(trak); stbl != nil {
		if stbl.Stsz != nil {
			session.TotalFrames = int(stbl.Stsz.SampleNumber)
		}
		if stbl.Stsd != nil {
			for _, child := range stbl.Stsd.Children {
				if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
					session.Width = int(vse.Width)
					session.Height = int(vse.Height)
					break
				}
			}
		}
	}

	if mp4File.IsFragmented() {
		frames, fragDuration := fragmentTotals(mp4File, trak.Tkhd.TrackID)
		session.TotalFrames += frames
		duration += fragDuration
	}

	if timescale > 0 && duration > 0 && session.TotalFrames > 0 {
		session.FrameRate = float64(session.TotalFrames) * float64(timescale) / float64(duration)
	}

	return session, nil
}

func sampleTable(trak *mp4.TrakBox) *mp4.StblBox {
	if trak.Mdia == nil || trak.Mdia.Minf == nil {
		return nil
	}
	return trak.Mdia.Minf.Stbl
}

// fragmentTotals sums samples and their durations over every movie fragment of trackID
func fragmentTotals(mp4File *mp4.File, trackID uint32) (int, uint64) {
	var frames int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					frames += int(trun.SampleCount())
					duration += trun.Duration(traf.Tfhd.DefaultSampleDuration)
				}
			}
		}
	}
	return frames, duration
}

// Ensure Prober implements video.Prober
var _ video.Prober = (*Prober)(nil)
