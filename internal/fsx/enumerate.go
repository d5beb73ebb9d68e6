// Package fsx holds the filesystem side of imgtag: walking a source tree,
// and the directory and copy primitives the reorganizer writes through.
package fsx

import (
	"os"
	"path/filepath"
	"strings"

	"imgtag/internal/logging"
)

// SourceFile is one enumerated file.
type SourceFile struct {
	Path string // full path as reached from the root
	Name string // base name
	Ext  string // lowercase extension without the dot, may be empty
}

// NewSourceFile derives Name and Ext from path.
func NewSourceFile(path string) SourceFile {
	name := filepath.Base(path)
	return SourceFile{Path: path, Name: name, Ext: extOf(name)}
}

func extOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// =============================================================================
// Extension Filter
// =============================================================================

// ExtensionFilter is an allow-list of lowercase extensions without the dot.
// The empty filter accepts every file.
type ExtensionFilter struct {
	exts map[string]bool
}

// NewExtensionFilter normalizes exts (".JPG", "jpg" and " Jpg " are equal).
func NewExtensionFilter(exts ...string) ExtensionFilter {
	f := ExtensionFilter{exts: make(map[string]bool, len(exts))}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			f.exts[e] = true
		}
	}
	return f
}

// Accepts reports whether a file with extension ext passes the filter.
func (f ExtensionFilter) Accepts(ext string) bool {
	if len(f.exts) == 0 {
		return true
	}
	return f.exts[strings.ToLower(ext)]
}

// =============================================================================
// Enumeration
// =============================================================================

// dirResult is what one directory contributes: its accepted files followed
// by those of its subdirectories, depth first.
type dirResult struct {
	files []SourceFile
	err   error
}

// Enumerate lists every accepted file under root. Regular files and
// symlinks are candidates; directories are always descended.
//
// Failing to list root is returned as is. A subdirectory that cannot be
// listed is logged and contributes no files.
func Enumerate(root string, filter ExtensionFilter, log *logging.Logger) ([]SourceFile, error) {
	return enumerate(root, filter, log, os.ReadDir)
}

// readDirFunc lists a directory; os.ReadDir outside of tests.
type readDirFunc func(dir string) ([]os.DirEntry, error)

func enumerate(root string, filter ExtensionFilter, log *logging.Logger, readDir readDirFunc) ([]SourceFile, error) {
	if log == nil {
		log = logging.Discard()
	}
	res := scanDir(root, filter, log, readDir)
	if res.err != nil {
		return nil, res.err
	}
	return res.files, nil
}

func scanDir(dir string, filter ExtensionFilter, log *logging.Logger, readDir readDirFunc) dirResult {
	entries, err := readDir(dir)
	if err != nil {
		return dirResult{err: err}
	}

	var (
		files   []SourceFile
		subdirs []string
	)
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch t := e.Type(); {
		case t.IsDir():
			subdirs = append(subdirs, path)
		case t.IsRegular(), t&os.ModeSymlink != 0:
			if filter.Accepts(extOf(e.Name())) {
				files = append(files, NewSourceFile(path))
			}
		}
	}

	for _, sub := range subdirs {
		child := scanDir(sub, filter, log, readDir)
		if child.err != nil {
			log.Warn("Skipping directory %s: %v", sub, child.err)
			continue
		}
		files = append(files, child.files...)
	}
	return dirResult{files: files}
}
