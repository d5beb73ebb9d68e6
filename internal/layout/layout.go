// Package layout computes where a dated file lands in the output tree:
//
//	{root}/{year}/{month name}/{stamp}__{original file name}
package layout

import (
	"path/filepath"
	"time"

	"imgtag/internal/resolve"
)

// UnknownMonth is the folder name for a month outside 1..12.
const UnknownMonth = "Неизвестный"

// monthNames is indexed by time.Month - 1.
var monthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// Stamp layouts. Go's reference time: Mon Jan 2 15:04:05 MST 2006
const (
	fullStamp = "2006-01-02__15-04-05"
	dateStamp = "2006-01-02"
)

// MonthName returns the folder name for m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return UnknownMonth
	}
	return monthNames[m-1]
}

// Location is a computed destination.
type Location struct {
	Dir  string // {root}/{year}/{month name}
	File string // Dir joined with the stamped file name
}

// Stamp renders the prefix of a destination file name.
func Stamp(d resolve.Date) string {
	if d.Precision == resolve.FullDateTime {
		return d.Time.Format(fullStamp)
	}
	return d.Time.Format(dateStamp)
}

// Destination computes where a file named name, dated d, goes under root.
// Two sources with the same date and name yield the same Location.
func Destination(root string, d resolve.Date, name string) Location {
	dir := filepath.Join(root, d.Time.Format("2006"), MonthName(d.Time.Month()))
	return Location{
		Dir:  dir,
		File: filepath.Join(dir, Stamp(d)+"__"+name),
	}
}
