// Package logging provides the leveled console logger used by every imgtag
// command, with an optional plain-text file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level orders log severities. Lines below the logger's threshold are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a --log-level value to a Level. "trace" is accepted as an
// alias of debug.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ColorMode controls ANSI color output on the console.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Colors when the console is a terminal.
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ParseColorMode maps a --color value to a ColorMode; "" means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Options configure NewLogger.
type Options struct {
	Level   Level
	Color   ColorMode
	Console io.Writer // Defaults to os.Stderr.
	File    string    // Optional log file, appended to.
}

// Logger provides leveled, optionally colored logging with optional file sink.
// It is safe for use from several goroutines although imgtag itself logs
// from one.
type Logger struct {
	mu      sync.Mutex
	level   Level
	console io.Writer
	file    *os.File
	styles  map[Level]lipgloss.Style
	now     func() time.Time
}

// NewLogger builds a logger from opts. Call Close when opts.File was set.
func NewLogger(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	l := &Logger{
		level:   opts.Level,
		console: console,
		styles:  levelStyles(NewRenderer(console, opts.Color)),
		now:     time.Now,
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a logger that writes nowhere. Handy in tests.
func Discard() *Logger {
	l, _ := NewLogger(Options{Level: LevelError + 1, Console: io.Discard, Color: ColorNever})
	return l
}

// NewRenderer returns a lipgloss renderer for w honoring mode. In auto mode
// NO_COLOR and TERM=dumb turn colors off.
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	default:
		if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return r
}

func levelStyles(r *lipgloss.Renderer) map[Level]lipgloss.Style {
	return map[Level]lipgloss.Style{
		LevelDebug: r.NewStyle().Foreground(lipgloss.Color("14")),
		LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		LevelError: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Enabled reports whether lines at lvl are written.
func (l *Logger) Enabled(lvl Level) bool { return lvl >= l.level }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(lvl Level, text string) {
	if !l.Enabled(lvl) {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	tag := "[" + lvl.String() + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.console, ts+" "+l.styles[lvl].Render(tag)+" "+text+"\n")
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" "+tag+" "+text+"\n")
	}
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.line(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(LevelError, fmt.Sprintf(format, args...))
}
