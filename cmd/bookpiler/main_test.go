package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupFolders(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	for _, name := range []string{"Class 10 Science", "Class 2 Maths", "Class 6 Maths"} {
		if err := os.MkdirAll(filepath.Join(dataDir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dataDir
}

func TestChooseFolder_ZeroMeansAll(t *testing.T) {
	dataDir := setupFolders(t)
	var out strings.Builder
	got, err := chooseFolder(dataDir, strings.NewReader("0\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dataDir {
		t.Errorf("expected data dir for 0, got %q", got)
	}
}

func TestChooseFolder_IndexIsNaturalOrder(t *testing.T) {
	dataDir := setupFolders(t)
	var out strings.Builder
	got, err := chooseFolder(dataDir, strings.NewReader("1\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Natural order puts Class 2 before Class 6 and Class 10.
	if got != filepath.Join(dataDir, "Class 2 Maths") {
		t.Errorf("expected Class 2 Maths first, got %q", got)
	}
	if !strings.Contains(out.String(), "0) all folders") {
		t.Errorf("expected menu printed, got %q", out.String())
	}
}

func TestChooseFolder_OutOfRange(t *testing.T) {
	dataDir := setupFolders(t)
	var out strings.Builder
	if _, err := chooseFolder(dataDir, strings.NewReader("7\n"), &out); err == nil {
		t.Errorf("expected error for out-of-range selection")
	}
}

func TestChooseFolder_NotANumber(t *testing.T) {
	dataDir := setupFolders(t)
	var out strings.Builder
	if _, err := chooseFolder(dataDir, strings.NewReader("maths\n"), &out); err == nil {
		t.Errorf("expected error for non-numeric selection")
	}
}
