package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nao-Mk2/showjobs/internal/model"
	"github.com/Nao-Mk2/showjobs/internal/util"

	json "github.com/goccy/go-json"
)

// Renderer writes matched job records to an output stream.
type Renderer interface {
	Render(records []model.JobRecord) error
}

const labelWidth = 18

// Separator terminates every record block in a text report.
var Separator = strings.Repeat("-", 80)

var (
	styleLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// Report renders records as plain text: one "label: value" line per field,
// each record closed by Separator, records separated by a blank line. It
// returns "" when records is empty.
func Report(records []model.JobRecord) string {
	return report(records, false)
}

func report(records []model.JobRecord, color bool) string {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		var b strings.Builder
		for _, f := range r.Fields {
			label := fmt.Sprintf("%-*.*s", labelWidth, labelWidth, string(f.Name))
			if color {
				label = styleLabel.Render(label)
			}
			fmt.Fprintf(&b, "%s: %s\n", label, f.Value)
		}
		if color {
			b.WriteString(styleSeparator.Render(Separator))
		} else {
			b.WriteString(Separator)
		}
		b.WriteByte('\n')
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n")
}

// TextRenderer prints the text report verbatim, optionally with coloured
// field labels. Nothing is written when there are no records.
type TextRenderer struct {
	w     io.Writer
	color bool
}

// NewTextRenderer returns a Renderer that writes the text report to w.
func NewTextRenderer(w io.Writer, color bool) *TextRenderer {
	return &TextRenderer{w: w, color: color}
}

func (r *TextRenderer) Render(records []model.JobRecord) error {
	text := report(records, r.color)
	if text == "" {
		return nil
	}
	_, err := io.WriteString(r.w, text)
	return err
}

// JSONRenderer prints records as a JSON array of
// {"file": <log name>, "fields": {<field name>: <value>}} objects. When a
// JMESPath query is set, the query result is printed instead.
type JSONRenderer struct {
	enc   *json.Encoder
	query string
}

// NewJSONRenderer returns a Renderer that writes indented JSON to w.
func NewJSONRenderer(w io.Writer, query string) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc, query: query}
}

func (r *JSONRenderer) Render(records []model.JobRecord) error {
	doc := Document(records)
	if r.query == "" {
		return r.enc.Encode(doc)
	}
	res, err := util.Query(r.query, doc)
	if err != nil {
		return err
	}
	return r.enc.Encode(res)
}

// Document converts records to the generic form used for JSON output and
// JMESPath evaluation.
func Document(records []model.JobRecord) []any {
	doc := make([]any, 0, len(records))
	for _, r := range records {
		fields := make(map[string]any, len(r.Fields))
		for _, f := range r.Fields {
			fields[string(f.Name)] = f.Value
		}
		doc = append(doc, map[string]any{
			"file":   r.File.Name,
			"fields": fields,
		})
	}
	return doc
}
