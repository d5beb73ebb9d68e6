// Package resolve picks the one date a file is filed under.
//
// The chain, first hit wins:
//
//  1. the capture timestamp from embedded metadata (full date and time)
//  2. January 1st of a forced year, when the policy forces one
//  3. the date nearest to the file name among those found in its path
//  4. nothing: the file is unresolved
package resolve

import (
	"time"

	"imgtag/internal/config"
	"imgtag/internal/exifmeta"
	"imgtag/internal/logging"
	"imgtag/internal/pathdate"
)

// Precision says which parts of a resolved time are meaningful.
type Precision int

const (
	FullDateTime Precision = iota
	DateOnly
)

func (p Precision) String() string {
	if p == FullDateTime {
		return "full-datetime"
	}
	return "date-only"
}

// Source names the step of the chain that produced a date.
type Source string

const (
	SourceNone     Source = "none"
	SourceMetadata Source = "metadata"
	SourceForced   Source = "forced"
	SourcePath     Source = "path"
)

// Date is the outcome of resolving one file.
type Date struct {
	Time      time.Time
	Precision Precision
	Source    Source
}

// Resolved reports whether a date was found.
func (d Date) Resolved() bool { return d.Source != SourceNone && d.Source != "" }

// ForcedTime is the instant used for a forced year: January 1st at
// 09:10:11.012 local time. The time of day is never rendered since the
// result is date-only.
func ForcedTime(year int) time.Time {
	return time.Date(year, time.January, 1, 9, 10, 11, 12_000_000, time.Local)
}

// Resolver applies a NoExifPolicy on top of a metadata reader.
type Resolver struct {
	Metadata exifmeta.Reader
	Policy   config.NoExifPolicy
	Log      *logging.Logger
}

// New returns a resolver; a nil log discards.
func New(md exifmeta.Reader, policy config.NoExifPolicy, log *logging.Logger) *Resolver {
	if log == nil {
		log = logging.Discard()
	}
	return &Resolver{Metadata: md, Policy: policy, Log: log}
}

// Resolve runs the chain for the file at path.
func (r *Resolver) Resolve(path string) Date {
	if t, ok := r.metadata(path); ok {
		return Date{Time: t, Precision: FullDateTime, Source: SourceMetadata}
	}

	if r.Policy.ForceYear {
		return Date{Time: ForcedTime(r.Policy.Year), Precision: DateOnly, Source: SourceForced}
	}

	if r.Policy.ExtractDatesFromPath {
		if t, ok := r.fromPath(path); ok {
			return Date{Time: t, Precision: DateOnly, Source: SourcePath}
		}
	}

	return Date{Source: SourceNone}
}

// metadata treats a read error exactly like a missing timestamp.
func (r *Resolver) metadata(path string) (time.Time, bool) {
	if r.Metadata == nil {
		return time.Time{}, false
	}
	t, ok, err := r.Metadata.CaptureTime(path)
	if err != nil {
		r.log().Info("No readable metadata in %s: %v", path, err)
		return time.Time{}, false
	}
	if !ok {
		r.log().Debug("No capture timestamp in %s", path)
	}
	return t, ok
}

func (r *Resolver) fromPath(path string) (time.Time, bool) {
	cands := pathdate.Candidates(pathdate.Sanitize(path, r.Policy.SkipDirNames))
	for _, c := range cands {
		if c.Err != nil {
			r.log().Debug("Ignoring %s match %q in %s: %v", c.Pattern, c.Text, path, c.Err)
		}
	}
	return pathdate.Nearest(pathdate.Valid(cands))
}

func (r *Resolver) log() *logging.Logger {
	if r.Log == nil {
		r.Log = logging.Discard()
	}
	return r.Log
}
