package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// writeZip creates a zip at path. Names ending in "/" become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
}

func TestExtract(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "repo.zip")
	writeZip(t, archivePath, map[string]string{
		"vault-cms-master/":                      "",
		"vault-cms-master/_GUIDE.md":             "# Guide\n",
		"vault-cms-master/.obsidian/app.json":    "{}",
		"vault-cms-master/_bases/Home.base":      "views: []\n",
		"vault-cms-master/starlight/_GUIDE.md":   "# Starlight\n",
		"vault-cms-master/starlight/.obsidian/a": "a",
	})

	extractDir := filepath.Join(tmpDir, "out")
	if err := Extract(archivePath, extractDir); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for rel, want := range map[string]string{
		"vault-cms-master/_GUIDE.md":           "# Guide\n",
		"vault-cms-master/_bases/Home.base":    "views: []\n",
		"vault-cms-master/starlight/_GUIDE.md": "# Starlight\n",
	} {
		got, err := os.ReadFile(filepath.Join(extractDir, rel))
		if err != nil {
			t.Errorf("ReadFile(%s) error = %v", rel, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}
}

func TestExtract_RejectsTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "evil.zip")
	writeZip(t, archivePath, map[string]string{
		"../escape.txt": "nope",
	})

	if err := Extract(archivePath, filepath.Join(tmpDir, "out")); err == nil {
		t.Fatal("Extract() expected error for entry outside the extraction directory")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "escape.txt")); !os.IsNotExist(err) {
		t.Errorf("entry escaped the extraction directory")
	}
}

func TestExtract_NotAZip(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "page.zip")
	if err := os.WriteFile(archivePath, []byte("<html>"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Extract(archivePath, filepath.Join(tmpDir, "out")); err == nil {
		t.Fatal("Extract() expected error for non-zip input")
	}
}

func TestRootDir(t *testing.T) {
	t.Run("single directory", func(t *testing.T) {
		dir := t.TempDir()
		mustMkdir(t, filepath.Join(dir, "vault-cms-master"))
		mustWrite(t, filepath.Join(dir, "stray.txt"))

		got, err := RootDir(dir)
		if err != nil {
			t.Fatalf("RootDir() error = %v", err)
		}
		if want := filepath.Join(dir, "vault-cms-master"); got != want {
			t.Errorf("RootDir() = %q, want %q", got, want)
		}
	})

	t.Run("first directory in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		mustMkdir(t, filepath.Join(dir, "b-root"))
		mustMkdir(t, filepath.Join(dir, "a-root"))

		got, err := RootDir(dir)
		if err != nil {
			t.Fatalf("RootDir() error = %v", err)
		}
		if want := filepath.Join(dir, "a-root"); got != want {
			t.Errorf("RootDir() = %q, want %q", got, want)
		}
	})

	t.Run("files only", func(t *testing.T) {
		dir := t.TempDir()
		mustWrite(t, filepath.Join(dir, "README.md"))

		if _, err := RootDir(dir); !errors.Is(err, ErrNoRoot) {
			t.Errorf("RootDir() error = %v, want ErrNoRoot", err)
		}
	})
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}
