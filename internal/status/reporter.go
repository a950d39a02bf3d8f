// Package status prints the user-facing progress lines of a pipeline run.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes one colored line per status message. Colors are dropped
// when the writer is not a terminal or when disabled explicitly.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	styles styles
}

// New creates a Reporter writing to out.
func New(out io.Writer, color bool) *Reporter {
	return &Reporter{
		out:    out,
		color:  color,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return New(io.Discard, false)
}

// Info reports progress.
func (r *Reporter) Info(format string, args ...any) {
	r.print(r.styles.info, "", format, args...)
}

// Detail reports secondary information such as suggested commands.
func (r *Reporter) Detail(format string, args ...any) {
	r.print(r.styles.detail, "  ", format, args...)
}

// Success reports a completed step.
func (r *Reporter) Success(format string, args ...any) {
	r.print(r.styles.success, "", format, args...)
}

// Warn reports a condition that does not stop the run.
func (r *Reporter) Warn(format string, args ...any) {
	r.print(r.styles.warning, "", format, args...)
}

// Error reports a failure.
func (r *Reporter) Error(format string, args ...any) {
	r.print(r.styles.err, "", format, args...)
}

func (r *Reporter) print(style lipgloss.Style, indent, format string, args ...any) {
	msg := indent + fmt.Sprintf(format, args...)
	if r.color {
		msg = style.Render(msg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, msg)
}
