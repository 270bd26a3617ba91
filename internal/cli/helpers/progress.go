package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"
)

// Progress draws a single-line progress bar, redrawn in place.
type Progress struct {
	out     io.Writer
	label   string
	bar     progress.Model
	enabled bool
	drawn   bool
	last    int
}

// NewProgress returns a progress bar writing to out. A disabled bar ignores
// every update.
func NewProgress(out io.Writer, label string, enabled bool) *Progress {
	return &Progress{
		out:     out,
		label:   label,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		enabled: enabled,
		last:    -1,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Update redraws the bar when the completed percentage changes.
func (p *Progress) Update(done, total int) {
	if !p.enabled || total <= 0 {
		return
	}
	step := done * 100 / total
	if step == p.last {
		return
	}
	p.last = step
	p.drawn = true
	_, _ = fmt.Fprintf(p.out, "\r%s %s", p.label, p.bar.ViewAs(float64(done)/float64(total)))
}

// Done ends the bar's line.
func (p *Progress) Done() {
	if p.drawn {
		_, _ = fmt.Fprintln(p.out)
		p.drawn = false
	}
}
