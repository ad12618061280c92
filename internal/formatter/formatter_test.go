package formatter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/setlist/internal/models"
	th "github.com/desertthunder/setlist/internal/testing"
	"github.com/sebdah/goldie/v2"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func fixtureState() models.State {
	s := models.NewState("Test Gig")
	s.Columns.Set1 = []models.Song{
		{UID: "a", Title: "Autumn Leaves", Key: "Cm", Tempo: "138", Notes: "Intro sax; vokal"},
		{UID: "b", Title: "Wave", Key: "Eb", Tempo: "126", Cues: `Count "4"`},
	}
	s.Columns.Rep = []models.Song{{UID: "c", Title: "Brevet"}}
	s.Locks.Items["a"] = true
	return s
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

type tuple struct {
	title, key, tempo, notes, cues string
	col                            models.Column
	locked                         bool
}

func tuples(s models.State) []tuple {
	var out []tuple
	for _, col := range models.Columns() {
		for _, song := range s.Songs(col) {
			out = append(out, tuple{song.Title, song.Key, song.Tempo, song.Notes, song.Cues, col, s.ItemLocked(song.UID)})
		}
	}
	return out
}

func TestExportToCSV(t *testing.T) {
	data := ExportToCSV(fixtureState())

	t.Run("Golden", func(t *testing.T) {
		newGolden(t).Assert(t, "export_csv", data)
	})

	t.Run("BOM", func(t *testing.T) {
		if !strings.HasPrefix(string(data), "\ufeffTitel;Toneart;Tempo;Form;Cues;_Column;_Locked\n") {
			t.Errorf("missing BOM or header: %q", data[:20])
		}
	})

	t.Run("Empty", func(t *testing.T) {
		got := string(ExportToCSV(models.NewState("")))
		if got != "\ufeffTitel;Toneart;Tempo;Form;Cues;_Column;_Locked" {
			t.Errorf("unexpected export %q", got)
		}
	})
}

func TestExportFilename(t *testing.T) {
	tests := map[string]string{
		"Jazz Quartet Live": "Jazz Quartet Live.csv",
		"":                  "setlist.csv",
		"   ":               "setlist.csv",
		"Set 1/2":           "Set 1-2.csv",
	}
	for in, want := range tests {
		if got := ExportFilename(in); got != want {
			t.Errorf("ExportFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	t.Run("RoundTrip", func(t *testing.T) {
		state := fixtureState()
		state.Columns.Set2 = []models.Song{
			{UID: "d", Title: "Nature Boy", Key: "Dm", Tempo: "108", Notes: "A, B, A"},
			{UID: "e", Title: `"Fly Me"`, Key: "C", Cues: `say "go"`},
			{UID: "f", Title: "Line1\nLine2", Notes: "verse\nchorus; out"},
		}
		state.Locks.Items["d"] = true

		imp := ParseCSV(string(ExportToCSV(state)), ImportOptions{NewID: sequentialIDs(), Now: now})

		back := models.NewState(state.ConcertName)
		for _, s := range imp.Songs {
			col, ok := imp.Columns[s.UID]
			if !ok {
				col = models.Rep
			}
			back.SetSongs(col, append(back.Songs(col), s))
			if imp.Locked[s.UID] {
				back.Locks.Items[s.UID] = true
			}
		}

		if got, want := tuples(back), tuples(state); !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	})

	t.Run("FreshIDs", func(t *testing.T) {
		imp := ParseCSV(string(ExportToCSV(fixtureState())), ImportOptions{NewID: sequentialIDs(), Now: now})
		var ids []string
		for _, s := range imp.Songs {
			ids = append(ids, s.UID)
		}
		if !slices.Equal(ids, []string{"new-1", "new-2", "new-3"}) {
			t.Errorf("unexpected ids %v", ids)
		}
	})

	t.Run("CreatedAtKeepsFileOrder", func(t *testing.T) {
		imp := ParseCSV(string(ExportToCSV(fixtureState())), ImportOptions{NewID: sequentialIDs(), Now: now})
		for i, s := range imp.Songs {
			if want := now.UnixMilli() - int64(i); s.CreatedAt != want {
				t.Errorf("song %d: createdAt %d, want %d", i, s.CreatedAt, want)
			}
		}
	})

	t.Run("Comma", func(t *testing.T) {
		text := "Title,Key,Tempo,Form,Cues\r\n\"Wave\",Eb,126,Intro,\r\n\r\n , , , , ,set2,1\r\nShort,row\r\n"
		imp := ParseCSV(text, ImportOptions{NewID: sequentialIDs(), Now: now})

		if len(imp.Songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(imp.Songs))
		}
		if s := imp.Songs[0]; s.Title != "Wave" || s.Key != "Eb" || s.Tempo != "126" || s.Notes != "Intro" || s.Cues != "" {
			t.Errorf("unexpected first song %+v", s)
		}
		if _, ok := imp.Columns["new-1"]; ok {
			t.Error("expected no column for a five-field row")
		}
		if s := imp.Songs[1]; s.Title != UntitledSong {
			t.Errorf("expected placeholder title, got %q", s.Title)
		}
		if imp.Columns["new-2"] != models.Set2 || !imp.Locked["new-2"] {
			t.Errorf("expected second song in set2 and locked, got %v %v", imp.Columns, imp.Locked)
		}
	})

	t.Run("MultiLineField", func(t *testing.T) {
		text := "Titel;Toneart;Tempo;Form;Cues\n\"Line1\nLine2\";\"\";\"\";\"\";\"\"\n\"Next\";\"\";\"\";\"\";\"\""
		imp := ParseCSV(text, ImportOptions{NewID: sequentialIDs(), Now: now})
		if len(imp.Songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(imp.Songs))
		}
		if got := imp.Songs[0].Title; got != "Line1\nLine2" {
			t.Errorf("expected embedded newline kept, got %q", got)
		}
		if got, want := imp.Songs[1].CreatedAt, now.UnixMilli()-1; got != want {
			t.Errorf("expected createdAt %d for second row, got %d", want, got)
		}
	})

	t.Run("IgnoresUnknownColumnAndLock", func(t *testing.T) {
		text := "Titel;Toneart;Tempo;Form;Cues;_Column;_Locked\n\"A\";\"\";\"\";\"\";\"\";\"set3\";\"yes\""
		imp := ParseCSV(text, ImportOptions{NewID: sequentialIDs(), Now: now})
		if len(imp.Songs) != 1 || len(imp.Columns) != 0 || len(imp.Locked) != 0 {
			t.Errorf("unexpected result %+v", imp)
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		for _, text := range []string{"", "Titel;Toneart", "\ufeffTitel;Toneart\n\n   \n"} {
			imp := ParseCSV(text, ImportOptions{})
			if len(imp.Songs) != 0 || imp.Columns == nil || imp.Locked == nil {
				t.Errorf("%q: expected empty result, got %+v", text, imp)
			}
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		imp := ParseCSV("h;h;h;h;h\nA;B;C;D;E", ImportOptions{})
		if len(imp.Songs) != 1 || imp.Songs[0].UID == "" || imp.Songs[0].CreatedAt == 0 {
			t.Errorf("expected generated uid and timestamp, got %+v", imp.Songs)
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteCSVExport(fixtureState(), "", dir)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if want := filepath.Join(dir, "Test Gig.csv"); path != want {
			t.Errorf("expected %s, got %s", want, path)
		}
		if content := th.MustReadFile(t, path); content != string(ExportToCSV(fixtureState())) {
			t.Error("file content differs from export")
		}
	})

	t.Run("WriteCSVExportError", func(t *testing.T) {
		_, err := WriteCSVExport(fixtureState(), filepath.Join(t.TempDir(), "missing", "x.csv"), "")
		if err == nil {
			t.Fatal("expected error writing into a missing directory")
		}
	})

	t.Run("ReadCSVImport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.csv")
		th.MustWriteFile(t, path, string(ExportToCSV(fixtureState())))

		imp, err := ReadCSVImport(path, ImportOptions{NewID: sequentialIDs()})
		if err != nil {
			t.Fatalf("ReadCSVImport failed: %v", err)
		}
		if len(imp.Songs) != 3 {
			t.Errorf("expected 3 songs, got %d", len(imp.Songs))
		}

		if _, err := ReadCSVImport(filepath.Join(t.TempDir(), "nope.csv"), ImportOptions{}); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("WritePrintExport", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WritePrintExport(fixtureState(), FormatMarkdown, "", dir)
		if err != nil {
			t.Fatalf("WritePrintExport failed: %v", err)
		}
		if filepath.Base(path) != "Test Gig.md" {
			t.Errorf("unexpected filename %s", path)
		}
		th.AssertFileExists(t, path)
	})
}
