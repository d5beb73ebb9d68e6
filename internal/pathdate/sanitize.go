package pathdate

import (
	"path/filepath"
	"strings"
)

// Sanitize rebuilds path without the segments whose lowercase form starts
// with one of skipPrefixes. Prefixes match case-insensitively and only at
// the start of a path component, never in the middle of the full string.
//
// The remaining segments keep their order and the platform separator, so a
// leading separator (absolute path) survives.
//
//	Sanitize("/lib/manga-archive/2013-05-17__forest.jpg", []string{"manga"})
//	// "/lib/2013-05-17__forest.jpg"
func Sanitize(path string, skipPrefixes []string) string {
	prefixes := normalizePrefixes(skipPrefixes)
	if len(prefixes) == 0 {
		return path
	}

	sep := string(filepath.Separator)
	segments := strings.Split(path, sep)
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		if hasAnyPrefix(strings.ToLower(seg), prefixes) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, sep)
}

func normalizePrefixes(skipPrefixes []string) []string {
	out := make([]string, 0, len(skipPrefixes))
	for _, p := range skipPrefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			// An empty prefix would match every segment.
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAnyPrefix(seg string, prefixes []string) bool {
	if seg == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(seg, p) {
			return true
		}
	}
	return false
}
