package provider

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestNew(t *testing.T) {
	opts := mirrorOptions()

	t.Run("https host", func(t *testing.T) {
		opts.ArchiveHost = "https://github.com"
		p, err := New(opts)
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}
		if _, ok := p.(*GitHubProvider); !ok {
			t.Errorf("New() = %T, want *GitHubProvider", p)
		}
	})

	t.Run("file mirror", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix paths")
		}
		opts.ArchiveHost = "file:///srv/mirror"
		p, err := New(opts)
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}
		local, ok := p.(*LocalProvider)
		if !ok {
			t.Fatalf("New() = %T, want *LocalProvider", p)
		}
		if local.Root != "/srv/mirror" {
			t.Errorf("Root = %q, want /srv/mirror", local.Root)
		}
	})

	t.Run("file URL without path", func(t *testing.T) {
		opts.ArchiveHost = "file://"
		if _, err := New(opts); err == nil {
			t.Error("New() expected error for file URL without path")
		}
	})
}

func TestParseFileURL(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "absolute path", raw: "file:///srv/mirror", want: "/srv/mirror"},
		{name: "localhost", raw: "file://localhost/srv/mirror/", want: "/srv/mirror"},
		{name: "remote host", raw: "file://example.com/srv", wantErr: true},
		{name: "root only", raw: "file:///", wantErr: true},
		{name: "wrong scheme", raw: "https://github.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFileURL(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFileURL(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseFileURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsSubPath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		child string
		want  bool
	}{
		{filepath.Join(root, "a", "b.zip"), true},
		{root, true},
		{filepath.Join(root, "..", "other"), false},
		{filepath.Join(root, "..", filepath.Base(root)+"-sibling", "x"), false},
		{filepath.Join(root, "..a", "x"), true},
		{"relative/path", false},
	}

	for _, tt := range tests {
		if got := isSubPath(root, tt.child); got != tt.want {
			t.Errorf("isSubPath(%q, %q) = %v, want %v", root, tt.child, got, tt.want)
		}
	}
}
