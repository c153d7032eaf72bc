package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"frametrim/domain/video"
)

// Finder locates source videos in a directory
type Finder struct {
	allowList []string
}

// NewFinder creates a finder accepting the given extensions
func NewFinder(allowList []string) *Finder {
	if len(allowList) == 0 {
		allowList = video.DefaultVideoExtensions
	}
	return &Finder{allowList: allowList}
}

// ListVideos returns the accepted videos in dir sorted by name
func (f *Finder) ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if video.IsAcceptedVideo(entry.Name(), f.allowList) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// NewestVideo returns the most recently modified accepted video in dir.
// Previous trim outputs are skipped.
func (f *Finder) NewestVideo(dir, trimSuffix string) (string, error) {
	files, err := f.ListVideos(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod int64
	for _, path := range files {
		if trimSuffix != "" && isTrimOutput(path, trimSuffix) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = path, mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no video files found in %s", dir)
	}
	return newest, nil
}

func isTrimOutput(path, suffix string) bool {
	base := filepath.Base(path)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return len(stem) > len(suffix) && stem[len(stem)-len(suffix):] == suffix
}
