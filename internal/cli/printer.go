package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/resource-pipeline/internal/pipeline"
)

// printer renders progress events as prefixed lines. Colors are only used
// when w is a terminal.
type printer struct {
	w       io.Writer
	verbose bool

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
}

func newPrinter(w io.Writer, verbose bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:            w,
		verbose:      verbose,
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
		dimStyle:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

func (p *printer) event(event pipeline.ProgressEvent) {
	if event.Level == pipeline.LevelVerbose && !p.verbose {
		return
	}

	var style lipgloss.Style
	prefix := "•"
	switch event.Level {
	case pipeline.LevelError:
		style = p.errorStyle
		prefix = "✗"
	case pipeline.LevelWarning:
		style = p.warningStyle
		prefix = "!"
	case pipeline.LevelSuccess:
		style = p.successStyle
		prefix = "✓"
	case pipeline.LevelInfo:
		style = p.infoStyle
		prefix = "›"
	default:
		style = p.dimStyle
	}
	fmt.Fprintln(p.w, style.Render(prefix+" "+event.Message))
}

func (p *printer) field(name, value string) {
	fmt.Fprintf(p.w, "%-15s %s\n", name+":", value)
}
