package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"imgtag/internal/logging"
	"imgtag/internal/organize"
)

var (
	_ organize.ProgressObserver = (*progressLine)(nil)
	_ organize.DiagObserver     = diagProgress{}
)

// progressLine keeps a single status line up to date with \r. It writes
// nothing unless enabled, so piping imgtag's output stays clean.
type progressLine struct {
	w       io.Writer
	enabled bool
	label   string
	bar     progress.Model
	count   lipgloss.Style
	issue   lipgloss.Style
	drawn   bool
}

func newProgressLine(w io.Writer, label string, color logging.ColorMode) *progressLine {
	r := logging.NewRenderer(w, color)
	return &progressLine{
		w:       w,
		enabled: isTerminal(w),
		label:   label,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		count:   r.NewStyle().Bold(true),
		issue:   r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// OnProgress implements organize.ProgressObserver.
func (p *progressLine) OnProgress(total, index int) {
	p.draw(total, index, "")
}

func (p *progressLine) draw(total, index int, suffix string) {
	if !p.enabled || total <= 0 {
		return
	}
	done := index + 1
	pct := float64(done) / float64(total)
	fmt.Fprintf(p.w, "\r%s %s %s%s", p.label, p.bar.ViewAs(pct),
		p.count.Render(fmt.Sprintf("%d/%d", done, total)), suffix)
	p.drawn = true
}

// finish ends the status line so later output starts on a fresh line.
func (p *progressLine) finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// diagProgress adapts a progressLine to organize.DiagObserver.
type diagProgress struct{ *progressLine }

// OnProgress implements organize.DiagObserver.
func (d diagProgress) OnProgress(total, index, issues int) {
	suffix := ""
	if issues > 0 {
		suffix = " " + d.issue.Render(fmt.Sprintf("(%d without date)", issues))
	}
	d.draw(total, index, suffix)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
