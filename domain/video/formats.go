package video

import (
	"path/filepath"
	"strings"
)

// DefaultVideoExtensions are the container types accepted by the load trigger
var DefaultVideoExtensions = []string{".mp4", ".mov", ".avi"}

// IsAcceptedVideo reports whether path has one of the allowed extensions.
// The comparison is case-insensitive and tolerates entries without a leading dot.
func IsAcceptedVideo(path string, allowList []string) bool {
	if len(allowList) == 0 {
		allowList = DefaultVideoExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range allowList {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(allowed, ".") {
			allowed = "." + allowed
		}
		if ext == allowed {
			return true
		}
	}
	return false
}

// AcceptDrop applies the load trigger rules to a dropped path list: only the
// first path is considered, and it is ignored unless its extension is allowed.
func AcceptDrop(paths []string, allowList []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	first := strings.TrimSpace(paths[0])
	if first == "" || !IsAcceptedVideo(first, allowList) {
		return "", false
	}
	return first, true
}
