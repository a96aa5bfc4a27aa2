package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogging_DisabledIsNoOp(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	Perception("this must go nowhere")

	if _, err := os.Stat(filepath.Join(ws, ".advisordesk", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory created despite debug mode off")
	}
}

func TestLogging_WritesCategoryFile(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, Options{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	PerceptionDebug("classified %q", "approve it")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(ws, ".advisordesk", "logs"))
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}

	var found bool
	for _, entry := range entries {
		if !strings.Contains(entry.Name(), "perception") {
			continue
		}
		found = true
		data, err := os.ReadFile(filepath.Join(ws, ".advisordesk", "logs", entry.Name()))
		if err != nil {
			t.Fatalf("read log: %v", err)
		}
		if !strings.Contains(string(data), "approve it") {
			t.Errorf("log content %q missing message", data)
		}
	}
	if !found {
		t.Error("no perception log file written")
	}
}

func TestLogging_LevelFilter(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, Options{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	Session("info below threshold")
	Get(CategorySession).Warn("warn at threshold")
	CloseAll()

	data, err := os.ReadFile(latestLog(t, ws, "session"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "info below threshold") {
		t.Error("info line written despite warn level")
	}
	if !strings.Contains(string(data), "warn at threshold") {
		t.Error("warn line missing")
	}
}

func TestLogging_CategoryToggle(t *testing.T) {
	ws := t.TempDir()
	err := Initialize(ws, Options{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"articulation": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer CloseAll()

	Articulation("must not appear")
	CloseAll()

	entries, _ := os.ReadDir(filepath.Join(ws, ".advisordesk", "logs"))
	for _, entry := range entries {
		if strings.Contains(entry.Name(), "articulation") {
			t.Errorf("articulation log written despite being disabled: %s", entry.Name())
		}
	}
}

func latestLog(t *testing.T, ws, category string) string {
	t.Helper()
	dir := filepath.Join(ws, ".advisordesk", "logs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), category) {
			return filepath.Join(dir, entry.Name())
		}
	}
	t.Fatalf("no %s log in %s", category, dir)
	return ""
}
