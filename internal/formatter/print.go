package formatter

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

//go:embed templates/print.html
var printTemplate string

var printHTML = template.Must(template.New("print").Parse(printTemplate))

// Format selects a print renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a print format name; "md" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: unknown print format %q (must be text, markdown or html)", shared.ErrInvalidArgument, s)
	}
}

// Ext is the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// PrintSong is one numbered line of a printed set.
type PrintSong struct {
	Number string
	Title  string
	Notes  string
	Cues   string
	Key    string // "-" when blank
	Tempo  string
}

// BPM is the tempo label, empty when the song has no tempo.
func (s PrintSong) BPM() string {
	if s.Tempo == "" {
		return ""
	}
	return s.Tempo + " BPM"
}

// PrintSection is one printed page.
type PrintSection struct {
	Column models.Column
	Label  string
	Songs  []PrintSong
}

// printOrder is the page order: both sets, then the reserve pool as encores.
var printOrder = []models.Column{models.Set1, models.Set2, models.Rep}

// PrintSections lays the board out for printing, skipping empty columns.
// Songs keep their stored order.
func PrintSections(state models.State) []PrintSection {
	var sections []PrintSection
	for _, col := range printOrder {
		songs := state.Songs(col)
		if len(songs) == 0 {
			continue
		}

		section := PrintSection{Column: col, Label: col.PrintLabel()}
		for i, s := range songs {
			key := s.Key
			if key == "" {
				key = "-"
			}
			section.Songs = append(section.Songs, PrintSong{
				Number: fmt.Sprintf("%02d", i+1),
				Title:  s.Title,
				Notes:  s.Notes,
				Cues:   s.Cues,
				Key:    key,
				Tempo:  s.Tempo,
			})
		}
		sections = append(sections, section)
	}
	return sections
}

// ExportToText renders the printable setlist as plain text, one underlined block per section.
func ExportToText(state models.State) []byte {
	var buf bytes.Buffer
	for _, section := range PrintSections(state) {
		heading := fmt.Sprintf("%s - %s", state.ConcertName, section.Label)
		buf.WriteString(heading + "\n")
		buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(heading)) + "\n\n")

		for _, s := range section.Songs {
			buf.WriteString(fmt.Sprintf("%s  %s\n", s.Number, s.Title))
			if s.Notes != "" {
				buf.WriteString(fmt.Sprintf("    Form: %s\n", s.Notes))
			}
			if s.Cues != "" {
				buf.WriteString(fmt.Sprintf("    \"%s\"\n", s.Cues))
			}
			if bpm := s.BPM(); bpm != "" {
				buf.WriteString(fmt.Sprintf("    %s / %s\n", s.Key, bpm))
			} else {
				buf.WriteString(fmt.Sprintf("    %s\n", s.Key))
			}
			buf.WriteString("\n")
		}
	}
	return trimTrailing(buf.Bytes())
}

// ExportToMarkdown renders the printable setlist as a Markdown document.
func ExportToMarkdown(state models.State) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("# %s\n\n", state.ConcertName))

	for _, section := range PrintSections(state) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", section.Label))
		for _, s := range section.Songs {
			details := s.Key
			if bpm := s.BPM(); bpm != "" {
				details += ", " + bpm
			}
			buf.WriteString(fmt.Sprintf("%s. **%s** (%s)\n", s.Number, s.Title, details))
			if s.Notes != "" {
				buf.WriteString(fmt.Sprintf("    - Form: %s\n", s.Notes))
			}
			if s.Cues != "" {
				buf.WriteString(fmt.Sprintf("    - _\"%s\"_\n", s.Cues))
			}
		}
		buf.WriteString("\n")
	}
	return trimTrailing(buf.Bytes())
}

// ExportToHTML renders a standalone print page, one page break per section.
func ExportToHTML(state models.State) ([]byte, error) {
	data := struct {
		ConcertName string
		Sections    []PrintSection
	}{state.ConcertName, PrintSections(state)}

	var buf bytes.Buffer
	if err := printHTML.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Render dispatches to the renderer for format.
func Render(state models.State, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(state), nil
	case FormatMarkdown:
		return ExportToMarkdown(state), nil
	case FormatHTML:
		return ExportToHTML(state)
	default:
		return nil, fmt.Errorf("%w: unknown print format %q", shared.ErrInvalidArgument, format)
	}
}

// WritePrintExport renders state and writes it to path.
//
// Defaults to {dir}/{concert name}{ext} when path is empty.
func WritePrintExport(state models.State, format Format, path, dir string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, filename(state.ConcertName, format.Ext()))
	}

	data, err := Render(state, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write print file: %w", err)
	}
	return path, nil
}

func trimTrailing(b []byte) []byte {
	b = bytes.TrimRight(b, "\n")
	if len(b) == 0 {
		return b
	}
	return append(b, '\n')
}
