// Package organize runs imgtag's two passes over a source tree: Reorganize
// copies every datable file into the dated output tree, Diagnose lists the
// files that cannot be dated.
package organize

import (
	"errors"
	"fmt"

	"imgtag/internal/config"
	"imgtag/internal/exifmeta"
	"imgtag/internal/fsx"
	"imgtag/internal/layout"
	"imgtag/internal/logging"
	"imgtag/internal/resolve"
)

// ErrProcessingFailed is returned by Reorganize when at least one file
// could not be copied. The report lists them.
var ErrProcessingFailed = errors.New("some files could not be processed")

// ReorganizeOptions configure Reorganize. Metadata, Ops, Observer and Log
// may be nil.
type ReorganizeOptions struct {
	SourceRoot string
	DestRoot   string
	Filter     fsx.ExtensionFilter
	Policy     config.NoExifPolicy

	Metadata exifmeta.Reader  // defaults to exifmeta.Default()
	Ops      fsx.Ops          // defaults to fsx.OS{}
	Observer ProgressObserver // called after each file
	Log      *logging.Logger

	// DryRun resolves and plans every file but writes nothing.
	DryRun bool
}

// Move is a planned or completed copy.
type Move struct {
	Src  string
	Dst  string
	Date resolve.Date
}

// FileFailure records a file whose directory creation or copy failed.
type FileFailure struct {
	Path string
	Err  error
}

// ReorganizeReport summarizes a run. Every seen file is counted exactly
// once among Copied, Skipped and Failed.
type ReorganizeReport struct {
	Seen    int
	Copied  int
	Skipped int // unresolved, left untouched
	Failed  []FileFailure

	Moves []Move
}

// HasFailure reports whether any file failed.
func (r ReorganizeReport) HasFailure() bool { return len(r.Failed) > 0 }

// Reorganize copies every accepted file under opts.SourceRoot into the
// dated tree under opts.DestRoot.
//
// All files are attempted even after failures. The error is the root
// enumeration error as is, ErrProcessingFailed when any file failed, or nil.
func Reorganize(opts ReorganizeOptions) (ReorganizeReport, error) {
	if err := opts.Policy.Validate(); err != nil {
		return ReorganizeReport{}, fmt.Errorf("no-exif policy: %w", err)
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	md := opts.Metadata
	if md == nil {
		md = exifmeta.Default()
	}
	ops := opts.Ops
	if ops == nil {
		ops = fsx.OS{}
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	files, err := fsx.Enumerate(opts.SourceRoot, opts.Filter, log)
	if err != nil {
		return ReorganizeReport{}, err
	}

	res := resolve.New(md, opts.Policy, log)
	report := ReorganizeReport{Seen: len(files)}
	total := len(files)

	for i, f := range files {
		d := res.Resolve(f.Path)
		if !d.Resolved() {
			log.Info("No date for %s, skipping", f.Path)
			report.Skipped++
			obs.OnProgress(total, i)
			continue
		}

		loc := layout.Destination(opts.DestRoot, d, f.Name)
		if opts.DryRun {
			log.Debug("Would copy %s -> %s (%s)", f.Path, loc.File, d.Source)
		} else if err := place(ops, f.Path, loc); err != nil {
			log.Error("%s: %v", f.Path, err)
			report.Failed = append(report.Failed, FileFailure{Path: f.Path, Err: err})
			obs.OnProgress(total, i)
			continue
		}

		report.Copied++
		report.Moves = append(report.Moves, Move{Src: f.Path, Dst: loc.File, Date: d})
		obs.OnProgress(total, i)
	}

	if report.HasFailure() {
		return report, ErrProcessingFailed
	}
	return report, nil
}

func place(ops fsx.Ops, src string, loc layout.Location) error {
	if err := ops.EnsureDir(loc.Dir); err != nil {
		return fmt.Errorf("create directory %s: %w", loc.Dir, err)
	}
	if err := ops.CopyFile(src, loc.File); err != nil {
		return fmt.Errorf("copy to %s: %w", loc.File, err)
	}
	return nil
}
