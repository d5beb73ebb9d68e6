package fsx

import (
	"time"

	"github.com/djherbis/times"
)

// FileTimes are filesystem timestamps of a file. They are only hints for
// an operator; imgtag never dates a file from them.
type FileTimes struct {
	Mod   time.Time
	Birth time.Time // zero when the platform does not record it
}

// HasBirth reports whether a birth time was available.
func (ft FileTimes) HasBirth() bool { return !ft.Birth.IsZero() }

// Times stats path for its modification and, where supported, birth time.
func Times(path string) (FileTimes, error) {
	t, err := times.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	ft := FileTimes{Mod: t.ModTime()}
	if t.HasBirthTime() {
		ft.Birth = t.BirthTime()
	}
	return ft, nil
}
