package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "slicer.log")

	logger, closeFn, err := New(Options{Prefix: "slicer", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("asset loaded", "name", "coin")
	logger.Debug("hidden detail")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "asset loaded") || !strings.Contains(out, "name=coin") {
		t.Errorf("log output missing entry: %q", out)
	}
	if !strings.Contains(out, "slicer") {
		t.Errorf("log output missing prefix: %q", out)
	}
	if strings.Contains(out, "hidden detail") {
		t.Error("debug entries should be filtered at info level")
	}
}

func TestNewDebugToWriter(t *testing.T) {
	var buf bytes.Buffer

	logger, closeFn, err := New(Options{Output: &buf, Debug: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger.Debug("tick", "elapsed", 16)
	if !strings.Contains(buf.String(), "elapsed=16") {
		t.Errorf("debug entry missing: %q", buf.String())
	}
}

func TestNewRejectsUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := New(Options{Path: filepath.Join(blocker, "x.log")}); err == nil {
		t.Error("expected an error when the log directory is a file")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return a non-nil logger unchanged")
	}
}
