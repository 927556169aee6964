package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"create-vault-cms": func() int { main(); return 0 },
	}))
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		Setup: func(e *testscript.Env) error {
			srv, err := newArchiveServer()
			if err != nil {
				return err
			}
			e.Defer(srv.Close)

			// HOME inside WORK keeps the default config path empty.
			e.Setenv("HOME", e.WorkDir)
			e.Setenv("VAULT_CMS_ARCHIVE_HOST", srv.URL)
			e.Setenv("VAULT_CMS_API_URL", srv.URL)
			e.Setenv("VAULT_CMS_OWNER", "vaultcms")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			// count-lines asserts how many lines of a file equal a string.
			// Usage: count-lines <path> <line> <n>
			"count-lines": cmdCountLines,

			// write-archive writes one of the test archives to a file.
			// Usage: write-archive <path> base|presets|flat
			"write-archive": cmdWriteArchive,
		},
	})
}

// cmdCountLines checks the number of lines in a file equal to a given line.
func cmdCountLines(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("count-lines does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: count-lines <path> <line> <n>")
	}
	want, err := strconv.Atoi(args[2])
	if err != nil {
		ts.Fatalf("invalid count %q: %v", args[2], err)
	}

	data, err := os.ReadFile(ts.MkAbs(args[0]))
	if err != nil {
		ts.Fatalf("reading %s: %v", args[0], err)
	}

	got := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == args[1] {
			got++
		}
	}
	if got != want {
		ts.Fatalf("%s has %d lines equal to %q, want %d\nContent:\n%s", args[0], got, args[1], want, data)
	}
}

// cmdWriteArchive writes a named test archive to disk.
func cmdWriteArchive(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("write-archive does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: write-archive <path> base|presets|flat")
	}
	files, ok := map[string]map[string]string{
		"base":    baseFiles,
		"presets": presetFiles,
		"flat":    flatFiles,
	}[args[1]]
	if !ok {
		ts.Fatalf("unknown archive %q", args[1])
	}

	data, err := zipBytes(files)
	if err != nil {
		ts.Fatalf("building archive: %v", err)
	}
	path := ts.MkAbs(args[0])
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		ts.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		ts.Fatalf("writing %s: %v", args[0], err)
	}
}

var (
	baseFiles = map[string]string{
		"vault-cms-master/_bases/Home.base":          "home",
		"vault-cms-master/.obsidian/app.json":        "{}",
		"vault-cms-master/_GUIDE.md":                 "# Guide",
		"vault-cms-master/README.md":                 "readme",
		"vault-cms-master/src/content/posts/hello.md": "hello",
	}
	presetFiles = map[string]string{
		"vault-cms-presets-master/slate/_bases/Home.base":   "slate home",
		"vault-cms-presets-master/slate/.obsidian/app.json": `{"theme":"slate"}`,
		"vault-cms-presets-master/slate/_GUIDE.md":          "# Slate",
		"vault-cms-presets-master/chiri/_GUIDE.md":          "# Chiri",
		"vault-cms-presets-master/README.md":                "presets",
	}
	flatFiles = map[string]string{
		"_GUIDE.md": "# Flat",
	}
)

// newArchiveServer serves GitHub-shaped archive and contents endpoints.
//
//	/<owner>/<repo>/archive/refs/heads/master.zip  302 -> /codeload/<owner>/<repo>
//	/repos/<owner>/vault-cms-presets/contents      preset listing
//
// Owner "vaultcms" serves real archives, "flat" serves an archive without a
// root folder, anything else 404s.
func newArchiveServer() (*httptest.Server, error) {
	archives := make(map[string][]byte)
	for path, files := range map[string]map[string]string{
		"/codeload/vaultcms/vault-cms":         baseFiles,
		"/codeload/vaultcms/vault-cms-presets": presetFiles,
		"/codeload/flat/vault-cms":             flatFiles,
		"/codeload/flat/vault-cms-presets":     flatFiles,
	} {
		data, err := zipBytes(files)
		if err != nil {
			return nil, err
		}
		archives[path] = data
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/vaultcms/vault-cms-presets/contents", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"name": ".github", "type": "dir"},
			{"name": "README.md", "type": "file"},
			{"name": "chiri", "type": "dir"},
			{"name": "slate", "type": "dir"},
		})
	})
	mux.HandleFunc("/codeload/", func(w http.ResponseWriter, r *http.Request) {
		data, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(data)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 6 || parts[2] != "archive" || parts[5] != "master.zip" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/codeload/%s/%s", parts[0], parts[1]), http.StatusFound)
	})

	return httptest.NewServer(mux), nil
}

func zipBytes(files map[string]string) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
