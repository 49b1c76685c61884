package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/logsift/internal/model"
)

// Renderer writes a record sequence to a console stream.
type Renderer interface {
	Render(recs []model.Record) error
}

// NewRenderer returns the console renderer named by kind: "json", "yaml"
// or "text".
func NewRenderer(kind string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(kind) {
	case "", "json":
		return &EncodedRenderer{w: w, enc: JSON}, nil
	case "yaml":
		return &EncodedRenderer{w: w, enc: YAML}, nil
	case "text":
		return NewTextRenderer(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want json, yaml or text)", kind)
}

// ---------------------------------------------------------------------------
// Encoded Renderer (the whole sequence as one JSON/YAML document)
// ---------------------------------------------------------------------------

// EncodedRenderer prints records as a single structured document.
type EncodedRenderer struct {
	w   io.Writer
	enc Encoding
}

func (r *EncodedRenderer) Render(recs []model.Record) error {
	data, err := Marshal(r.enc, recs)
	if err != nil {
		return err
	}
	_, err = r.w.Write(data)
	return err
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleFatal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true) // white on red
	styleStamp = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true) // cyan
)

// TextRenderer prints one line per record with severity-based colors.
// Continuation lines of a message are indented under their header.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(recs []model.Record) error {
	for _, rec := range recs {
		if _, err := fmt.Fprintln(r.w, formatText(rec)); err != nil {
			return err
		}
	}
	return nil
}

func formatText(rec model.Record) string {
	switch rec := rec.(type) {
	case model.AppRecord:
		return fmt.Sprintf("%s %s %s",
			styleStamp.Render(rec.Timestamp), levelTag(rec.Severity), indent(rec.Message))
	case model.ErrorRecord:
		return fmt.Sprintf("%s %s pid=%s %s",
			styleStamp.Render(rec.Timestamp), levelTag(rec.Severity), rec.ProcessID, indent(rec.Message))
	case model.AccessRecord:
		return fmt.Sprintf("%s %s %s %s %s %s %s",
			styleStamp.Render(rec.Timestamp), statusTag(rec.StatusCode),
			rec.ClientIP, rec.HTTPMethod, rec.RequestURL, rec.Protocol, rec.ResponseSize)
	}
	return fmt.Sprintf("%v", rec)
}

func indent(msg string) string {
	return strings.ReplaceAll(msg, "\n", "\n    ")
}

func levelTag(severity string) string {
	padded := fmt.Sprintf("%-9s", strings.ToUpper(severity))
	return styleFor(NormalizeLevel(severity)).Render(padded)
}

func statusTag(status string) string {
	return styleFor(StatusLevel(status)).Render(status)
}

func styleFor(level string) lipgloss.Style {
	switch level {
	case "DEBUG":
		return styleDebug
	case "WARN":
		return styleWarn
	case "ERROR":
		return styleError
	case "FATAL":
		return styleFatal
	default:
		return styleInfo
	}
}

// NormalizeLevel maps Laravel (PSR-3) and Apache severities onto
// DEBUG, INFO, WARN, ERROR and FATAL.
func NormalizeLevel(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EMERGENCY", "EMERG", "ALERT", "CRITICAL", "CRIT", "FATAL":
		return "FATAL"
	case "ERROR", "ERR":
		return "ERROR"
	case "WARNING", "WARN":
		return "WARN"
	case "DEBUG":
		return "DEBUG"
	}
	if strings.HasPrefix(strings.ToUpper(s), "TRACE") {
		return "DEBUG" // Apache trace1..trace8
	}
	return "INFO"
}

// StatusLevel maps an HTTP status code to a severity.
func StatusLevel(status string) string {
	if len(status) == 0 {
		return "INFO"
	}
	switch status[0] {
	case '5':
		return "ERROR"
	case '4':
		return "WARN"
	default:
		return "INFO"
	}
}
