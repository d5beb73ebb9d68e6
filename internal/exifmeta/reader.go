// Package exifmeta answers one question about an image file: does its
// embedded metadata carry a capture timestamp.
//
// Two decoders are wired. Goexif understands JPEG and TIFF containers and is
// tried first. GoExifV3 scans the raw bytes for an EXIF block, which also
// covers containers such as HEIC, PNG and most camera raw formats.
package exifmeta

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	exifv3 "github.com/dsoprea/go-exif/v3"
	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the EXIF 2.x DateTime encoding.
const exifTimeLayout = "2006:01:02 15:04:05"

// Reader reports the capture timestamp of a file.
//
// ok is false when the file could be read but carries no usable
// DateTimeOriginal. err is non-nil only when the file cannot be
// interpreted as a metadata container at all.
type Reader interface {
	CaptureTime(path string) (t time.Time, ok bool, err error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(path string) (time.Time, bool, error)

// CaptureTime calls f(path).
func (f ReaderFunc) CaptureTime(path string) (time.Time, bool, error) { return f(path) }

// Default returns the reader used by the CLI: goexif first, go-exif/v3 as
// fallback.
func Default() Reader {
	return Chain{Goexif{}, GoExifV3{}}
}

// parseExifTime parses a raw DateTimeOriginal value. The returned time is
// a wall-clock reading; EXIF 2.x carries no zone.
func parseExifTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(exifTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// =============================================================================
// goexif
// =============================================================================

// Goexif reads DateTimeOriginal with github.com/rwcarlsen/goexif.
type Goexif struct{}

// CaptureTime implements Reader.
func (Goexif) CaptureTime(path string) (time.Time, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("decode exif: %w", err)
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		// Decoded fine, the tag is just absent.
		return time.Time{}, false, nil
	}
	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false, nil
	}
	t, ok := parseExifTime(raw)
	return t, ok, nil
}

// =============================================================================
// go-exif/v3
// =============================================================================

// GoExifV3 reads DateTimeOriginal with github.com/dsoprea/go-exif/v3.
type GoExifV3 struct{}

// CaptureTime implements Reader.
func (GoExifV3) CaptureTime(path string) (time.Time, bool, error) {
	raw, err := exifv3.SearchFileAndExtractExif(path)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("search exif: %w", err)
	}

	tags, _, err := exifv3.GetFlatExifData(raw, &exifv3.ScanOptions{})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse exif: %w", err)
	}

	for _, tag := range tags {
		if tag.TagName != "DateTimeOriginal" {
			continue
		}
		s, isString := tag.Value.(string)
		if !isString {
			return time.Time{}, false, nil
		}
		t, ok := parseExifTime(s)
		return t, ok, nil
	}
	return time.Time{}, false, nil
}

// =============================================================================
// Chain
// =============================================================================

// Chain asks each reader in turn. The first timestamp wins. When no reader
// has one, Chain reports "no timestamp" if at least one reader understood
// the file, otherwise it returns the errors of all readers joined.
type Chain []Reader

// CaptureTime implements Reader.
func (c Chain) CaptureTime(path string) (time.Time, bool, error) {
	var (
		errs     []error
		parsedOK bool
	)
	for _, r := range c {
		t, ok, err := r.CaptureTime(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return t, true, nil
		}
		parsedOK = true
	}
	if parsedOK || len(errs) == 0 {
		return time.Time{}, false, nil
	}
	return time.Time{}, false, errors.Join(errs...)
}
