package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/logsift/internal/aggregator"
	"github.com/atikulmunna/logsift/internal/model"
)

var (
	styleBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
)

// RenderSummary writes a boxed run summary to w.
func RenderSummary(w io.Writer, s aggregator.Stats) error {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s log summary", s.Format)))
	row := func(label string, v int) {
		fmt.Fprintf(&b, "\n%s %d", styleLabel.Render(label), v)
	}
	row("files", s.Files)
	row("lines", s.Lines)
	row("records", s.Emitted)
	row("filtered", s.Filtered)
	row("skipped", s.Skipped)

	for _, k := range s.Levels() {
		level := NormalizeLevel(k)
		if s.Format == model.FormatAccess {
			level = StatusLevel(k)
		}
		fmt.Fprintf(&b, "\n%s %d", styleFor(level).Width(10).Render(k), s.LevelCounts[k])
	}

	_, err := fmt.Fprintln(w, styleBox.Render(b.String()))
	return err
}
