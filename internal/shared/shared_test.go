package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("GenerateID() = %q is not a uuid: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name    string
		level   string
		want    log.Level
		wantErr bool
	}{
		{name: "empty defaults to info", level: "", want: log.InfoLevel},
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "warn", level: "warn", want: log.WarnLevel},
		{name: "unknown", level: "chatty", want: log.InfoLevel, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		WithLogger(logger, "uid", "abc").Info("moved song")

		if !strings.Contains(buf.String(), "moved song") {
			t.Errorf("expected log line, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "uid=abc") {
			t.Errorf("expected key/value pair, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tmp", "tui.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("hello")
	})
}

func TestMarshalJSON(t *testing.T) {
	compact, err := MarshalJSON(map[string]int{"a": 1}, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("MarshalJSON(compact) = %s, %v", compact, err)
	}

	pretty, err := MarshalJSON(map[string]int{"a": 1}, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("MarshalJSON(pretty) = %s, %v", pretty, err)
	}
}

func TestBrowser(t *testing.T) {
	t.Run("FileURL is absolute", func(t *testing.T) {
		got, err := FileURL("print.html")
		if err != nil {
			t.Fatalf("FileURL() error = %v", err)
		}
		if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/print.html") {
			t.Errorf("FileURL() = %q", got)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		orig := getRuntime
		defer func() { getRuntime = orig }()
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("print.html"); err == nil {
			t.Error("expected error on unsupported platform")
		}
	})

	t.Run("command per platform", func(t *testing.T) {
		orig := getRuntime
		defer func() { getRuntime = orig }()

		for platform, bin := range map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "cmd"} {
			getRuntime = func() string { return platform }
			cmd, err := browserCommand("file:///tmp/x.html")
			if err != nil {
				t.Fatalf("browserCommand(%s) error = %v", platform, err)
			}
			if filepath.Base(cmd.Args[0]) != bin {
				t.Errorf("browserCommand(%s) = %v, want %s", platform, cmd.Args, bin)
			}
		}
	})
}
