package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestTempPath(t *testing.T) {
	got := TempPath("/tmp", "audio", DownloadExtension)
	if got != filepath.Join("/tmp", "audio.m4a") {
		t.Errorf("TempPath() = %s", got)
	}
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "audio.m4a")
	b := filepath.Join(dir, "audio.wav")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := RemoveFiles(a, b, filepath.Join(dir, "missing.wav"), ""); err != nil {
		t.Fatalf("RemoveFiles() error = %v", err)
	}

	for _, p := range []string{a, b} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", p)
		}
	}
}

func TestRemoveFiles_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nonempty")
	if err := os.MkdirAll(filepath.Join(nested, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := RemoveFiles(nested); err == nil {
		t.Error("expected error removing a non-empty directory")
	}
}
