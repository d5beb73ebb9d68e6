// Package pathdate mines calendar dates out of file paths.
//
// Dates are searched with a fixed, ordered table of textual patterns. The
// order of the table is part of the contract: callers take the last element
// of the result as the date nearest to the file name, which effectively
// ranks dotted dates above hyphenated ones and hyphenated ones above solid
// eight-digit runs.
package pathdate

import (
	"regexp"
	"time"
)

// =============================================================================
// Date Patterns
// =============================================================================

// datePatterns are applied in this order and their matches concatenated.
// The layout string uses Go's reference time: Mon Jan 2 15:04:05 MST 2006
var datePatterns = []struct {
	regex  *regexp.Regexp
	layout string
	desc   string
}{
	// Solid digits: /photos/20190527_IMG_1.jpg
	{regexp.MustCompile(`\d{8}`), "20060102", "solid"},

	// Hyphenated: /photos/2019-05-27/IMG_1.jpg
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02", "hyphen"},

	// Dotted: /photos/2019.05.27/IMG_1.jpg
	// The separator matches any character so it consumes text the same way
	// regardless of punctuation, but only a literal dot parses.
	{regexp.MustCompile(`\d{4}.\d{2}.\d{2}`), "2006.01.02", "dotted"},
}

// =============================================================================
// Extraction
// =============================================================================

// Candidate is one textual match of a date pattern inside a path.
// Err is non-nil when the text does not form a valid calendar date.
type Candidate struct {
	Text    string
	Pattern string
	Date    time.Time
	Err     error
}

// Candidates returns every pattern match found in path, valid or not, in
// pattern order and then left to right within a pattern.
func Candidates(path string) []Candidate {
	var out []Candidate
	for _, p := range datePatterns {
		for _, m := range p.regex.FindAllString(path, -1) {
			d, err := time.Parse(p.layout, m)
			out = append(out, Candidate{Text: m, Pattern: p.desc, Date: d, Err: err})
		}
	}
	return out
}

// Extract returns the valid dates found in path. Invalid candidates (month
// 62, day 99, ...) are dropped and extraction continues with the rest.
// The result is nil when nothing valid was found.
func Extract(path string) []time.Time {
	return Valid(Candidates(path))
}

// Valid keeps the dates of the candidates that parsed, preserving order.
func Valid(cands []Candidate) []time.Time {
	var dates []time.Time
	for _, c := range cands {
		if c.Err != nil {
			continue
		}
		dates = append(dates, c.Date)
	}
	return dates
}

// Nearest returns the date closest to the file name, i.e. the last element
// of dates, and false when dates is empty.
func Nearest(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[len(dates)-1], true
}
