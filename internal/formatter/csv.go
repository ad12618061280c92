package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

const (
	bom = "\ufeff"

	// UntitledSong replaces a blank title on import.
	UntitledSong = "Unavngivet"

	// minImportFields is the number of fields a row needs to become a song.
	minImportFields = 5
)

// CSVHeader is the first line of every export.
var CSVHeader = []string{"Titel", "Toneart", "Tempo", "Form", "Cues", "_Column", "_Locked"}

// ExportToCSV encodes every song in column order set1, rep, set2 (stored order within a column).
//
// Fields are always quoted and separated by ";". The output starts with a UTF-8 byte order mark so
// spreadsheet applications pick the right encoding.
func ExportToCSV(state models.State) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	buf.WriteString(strings.Join(CSVHeader, ";"))

	for _, col := range models.Columns() {
		for _, s := range state.Songs(col) {
			locked := "0"
			if state.ItemLocked(s.UID) {
				locked = "1"
			}

			record := []string{s.Title, s.Key, s.Tempo, s.Notes, s.Cues, string(col), locked}
			for i, field := range record {
				record[i] = quote(field)
			}

			buf.WriteByte('\n')
			buf.WriteString(strings.Join(record, ";"))
		}
	}
	return buf.Bytes()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ExportFilename derives the download name from the concert name, falling back to "setlist.csv".
func ExportFilename(concertName string) string {
	return filename(concertName, ".csv")
}

func filename(concertName, ext string) string {
	name := strings.TrimSpace(concertName)
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	if name == "" {
		name = "setlist"
	}
	return name + ext
}

// WriteCSVExport writes the CSV export to path.
//
// Defaults to {dir}/{concert name}.csv when path is empty.
func WriteCSVExport(state models.State, path, dir string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, ExportFilename(state.ConcertName))
	}

	if err := os.WriteFile(path, ExportToCSV(state), 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}

// ImportOptions supplies what parsing cannot derive from the file.
type ImportOptions struct {
	NewID func() string // defaults to [shared.GenerateID]
	Now   time.Time     // defaults to time.Now
}

// ParseCSV decodes an export (or a hand-made sheet in the same column order) into new songs.
//
// The separator is ";" when the header line has one, else ",". The whole body goes through one
// reader so quoted fields may span lines. The header is skipped and each later record is read
// positionally. Rows with fewer than five fields, or that cannot be parsed, are dropped. Every
// song gets a fresh uid and a createdAt of now minus its row index so the library's newest-first
// order keeps file order. Nothing here touches application state.
func ParseCSV(text string, opts ImportOptions) models.Import {
	if opts.NewID == nil {
		opts.NewID = shared.GenerateID
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	result := models.Import{
		Songs:   []models.Song{},
		Columns: map[string]models.Column{},
		Locked:  map[string]bool{},
	}

	text = strings.TrimPrefix(text, bom)
	sep := ','
	if strings.Contains(headerLine(text), ";") {
		sep = ';'
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	now := opts.Now.UnixMilli()
	row := -1
	for {
		parts, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				break
			}
			row++
			continue
		}
		trimFields(parts)
		if isBlankRecord(parts) {
			continue
		}
		row++
		if row == 0 || len(parts) < minImportFields {
			continue
		}

		song := models.Song{
			UID:       opts.NewID(),
			Title:     field(parts, 0),
			Key:       field(parts, 1),
			Tempo:     field(parts, 2),
			Notes:     field(parts, 3),
			Cues:      field(parts, 4),
			CreatedAt: now - int64(row-1),
		}
		if song.Title == "" {
			song.Title = UntitledSong
		}
		result.Songs = append(result.Songs, song)

		if col := models.Column(field(parts, 5)); col.Valid() {
			result.Columns[song.UID] = col
		}
		if field(parts, 6) == "1" {
			result.Locked[song.UID] = true
		}
	}
	return result
}

// ReadCSVImport reads and parses the file at path.
func ReadCSVImport(path string, opts ImportOptions) (models.Import, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Import{}, fmt.Errorf("failed to read import file: %w", err)
	}
	return ParseCSV(string(data), opts), nil
}

// headerLine is the first non-blank line of text.
func headerLine(text string) string {
	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func trimFields(parts []string) {
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
}

// isBlankRecord reports a whitespace-only line, which the reader returns as a single empty field.
func isBlankRecord(parts []string) bool {
	return len(parts) == 1 && parts[0] == ""
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
