// Package config holds imgtag's settings: built-in defaults, an optional
// YAML file, and the per-run policy handed to the date resolver.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"imgtag/internal/fsx"
)

const (
	// ErrCodeNotFound means an explicitly named config file does not exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the file could not be parsed or a field is out of range.
	ErrCodeInvalid = "config_invalid"
)

// NoExifPolicyVersion is bumped whenever NoExifPolicy gains a field whose
// zero value changes behavior.
const NoExifPolicyVersion = 1

// Year bounds accepted for a forced year.
const (
	MinYear = 1800
	MaxYear = 9999
)

// DefaultExtensions is the photo extension set scanned when neither the
// config file nor the CLI narrows it.
var DefaultExtensions = []string{
	"jpg", "jpeg", "png", "gif",
	"heic", "hif", // Apple HEIF
	"tif", "tiff",
	"dng", // Adobe Digital Negative
	"arw", // Sony RAW
	"cr2", // Canon RAW
	"nef", // Nikon RAW
	"raf", // Fujifilm RAW
}

// NoExifPolicy decides how a file without a metadata capture timestamp is
// dated.
type NoExifPolicy struct {
	Version int

	// ExtractDatesFromPath enables mining dates out of the file's path.
	ExtractDatesFromPath bool

	// SkipDirNames are case-insensitive prefixes; path segments starting with
	// any of them are ignored during extraction.
	SkipDirNames []string

	// ForceYear dates every file lacking metadata to January 1st of Year.
	// It takes precedence over path extraction.
	ForceYear bool
	Year      int
}

// DefaultPolicy extracts dates from paths and forces nothing.
func DefaultPolicy() NoExifPolicy {
	return NoExifPolicy{Version: NoExifPolicyVersion, ExtractDatesFromPath: true}
}

// Validate checks the policy version and the forced year.
func (p NoExifPolicy) Validate() error {
	if p.Version != NoExifPolicyVersion {
		return fmt.Errorf("unsupported no-exif policy version %d (want %d)", p.Version, NoExifPolicyVersion)
	}
	if p.ForceYear && (p.Year < MinYear || p.Year > MaxYear) {
		return fmt.Errorf("forced year %d out of range [%d, %d]", p.Year, MinYear, MaxYear)
	}
	return nil
}

// Settings is the content of an imgtag YAML config file.
type Settings struct {
	Extensions           []string `yaml:"extensions"`
	ExtractDatesFromPath bool     `yaml:"extract_dates_from_path"`
	SkipDirNames         []string `yaml:"skip_dir_names"`

	// Year forces the date of files without metadata when non-zero.
	Year int `yaml:"year"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"`
	Color    string `yaml:"color"` // auto, always, never
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Extensions:           append([]string(nil), DefaultExtensions...),
		ExtractDatesFromPath: true,
		LogLevel:             "warn",
		Color:                "auto",
	}
}

// Load reads the YAML file at path over the defaults. Keys absent from the
// file keep their default value; unknown keys are rejected.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Code: ErrCodeNotFound, Path: path, Err: err}
		}
		return nil, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return s, nil
}

func (s *Settings) normalize() {
	exts := make([]string, 0, len(s.Extensions))
	for _, e := range s.Extensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	s.Extensions = exts
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.Color = strings.ToLower(strings.TrimSpace(s.Color))
}

// Validate checks field ranges. It does not touch the filesystem.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", s.LogLevel)
	}
	switch s.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color: unknown mode %q", s.Color)
	}
	if s.Year != 0 && (s.Year < MinYear || s.Year > MaxYear) {
		return fmt.Errorf("year: %d out of range [%d, %d]", s.Year, MinYear, MaxYear)
	}
	return nil
}

// Policy builds the versioned NoExifPolicy these settings describe.
func (s *Settings) Policy() NoExifPolicy {
	p := DefaultPolicy()
	p.ExtractDatesFromPath = s.ExtractDatesFromPath
	p.SkipDirNames = append([]string(nil), s.SkipDirNames...)
	if s.Year != 0 {
		p.ForceYear = true
		p.Year = s.Year
	}
	return p
}

// Filter builds the extension allow-list. No extensions means every file.
func (s *Settings) Filter() fsx.ExtensionFilter {
	return fsx.NewExtensionFilter(s.Extensions...)
}

// =============================================================================
// Errors
// =============================================================================

// Error is a configuration-stage error carrying a stable code.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s: config file %q not found", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s: config file %q is invalid: %v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: config file %q is invalid", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the code of a *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
