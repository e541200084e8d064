package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/vidsponential/website/internal/progress"
)

func testHandler(homeStatus int) http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(homeStatus)
		fmt.Fprint(w, "<h1>home</h1>")
	})
	r.Get("/blog/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<h1>blog</h1>")
	})
	r.Get("/portfolio/{slug}/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<h1>%s</h1>", chi.URLParam(r, "slug"))
	})
	r.Get("/prompts/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	return r
}

func newExporter(t *testing.T, h http.Handler) (*Exporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var logs, out bytes.Buffer
	return &Exporter{
		Handler:   h,
		OutputDir: t.TempDir(),
		StaticFS: fstest.MapFS{
			"site.css": {Data: []byte("body{}")},
			"site.js":  {Data: []byte("void 0;")},
		},
		Reporter: &progress.CIReporter{Out: &out},
		Logger:   log.New(&logs, "", 0),
	}, &logs, &out
}

func TestExportWritesPages(t *testing.T) {
	e, _, out := newExporter(t, testHandler(http.StatusOK))

	res, err := e.Export(t.Context(), []string{"/", "/blog/", "/portfolio/tech/"}, AssetConfig{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(res.Pages))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.Assets != 2 {
		t.Errorf("expected 2 static files, got %d", res.Assets)
	}

	for path, want := range map[string]string{
		"index.html":                "<h1>home</h1>",
		"blog/index.html":           "<h1>blog</h1>",
		"portfolio/tech/index.html": "<h1>tech</h1>",
		"static/site.css":           "body{}",
	} {
		data, err := os.ReadFile(filepath.Join(e.OutputDir, path))
		if err != nil {
			t.Errorf("reading %s: %v", path, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s: got %q, want %q", path, data, want)
		}
	}

	if res.Pages[2].Bytes != int64(len("<h1>tech</h1>")) {
		t.Errorf("bytes: got %d", res.Pages[2].Bytes)
	}
	if !strings.Contains(out.String(), "[3/3] /portfolio/tech/") {
		t.Errorf("progress output missing last page: %q", out.String())
	}
}

func TestExportFailsWithoutHomepage(t *testing.T) {
	e, _, _ := newExporter(t, testHandler(http.StatusBadGateway))

	_, err := e.Export(t.Context(), []string{"/", "/blog/"}, AssetConfig{})
	if !errors.Is(err, ErrHomepage) {
		t.Fatalf("expected ErrHomepage, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.OutputDir, "index.html")); !os.IsNotExist(err) {
		t.Errorf("index.html should not be written, stat err = %v", err)
	}
}

func TestExportWarnsOnFailedPage(t *testing.T) {
	e, logs, _ := newExporter(t, testHandler(http.StatusOK))

	res, err := e.Export(t.Context(), []string{"/", "/prompts/"}, AssetConfig{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "/prompts/") {
		t.Fatalf("warnings: %v", res.Warnings)
	}
	if res.Pages[1].StatusCode != http.StatusBadGateway {
		t.Errorf("status: got %d", res.Pages[1].StatusCode)
	}
	if _, err := os.Stat(filepath.Join(e.OutputDir, "prompts", "index.html")); !os.IsNotExist(err) {
		t.Errorf("failed page should not be written")
	}
	if !strings.Contains(logs.String(), "Warning: page /prompts/ returned status 502") {
		t.Errorf("log: %q", logs.String())
	}
}

func TestExportWarnsOnMissingAssets(t *testing.T) {
	e, logs, _ := newExporter(t, testHandler(http.StatusOK))
	missing := filepath.Join(t.TempDir(), "shared")

	res, err := e.Export(t.Context(), []string{"/"}, AssetConfig{RootDir: missing})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "shared assets directory") {
		t.Fatalf("warnings: %v", res.Warnings)
	}
	if !strings.Contains(logs.String(), "not found") {
		t.Errorf("log: %q", logs.String())
	}
}

func TestExportCopiesAssets(t *testing.T) {
	e, _, _ := newExporter(t, testHandler(http.StatusOK))
	e.StaticFS = nil

	shared := filepath.Join(t.TempDir(), "shared")
	writeFile(t, filepath.Join(shared, "css", "main.css"), "a{}")
	writeFile(t, filepath.Join(shared, "img", "logo.png"), "png")
	writeFile(t, filepath.Join(shared, "notes.txt"), "skip")

	res, err := e.Export(t.Context(), []string{"/"}, AssetConfig{
		RootDir: shared,
		Include: []string{"css/**", "img/*.png"},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Assets != 2 {
		t.Fatalf("expected 2 assets, got %d", res.Assets)
	}
	if _, err := os.Stat(filepath.Join(e.OutputDir, "shared", "css", "main.css")); err != nil {
		t.Errorf("main.css not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.OutputDir, "shared", "notes.txt")); !os.IsNotExist(err) {
		t.Errorf("notes.txt should not be copied")
	}
}

func TestExportCancelled(t *testing.T) {
	e, _, _ := newExporter(t, testHandler(http.StatusOK))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := e.Export(ctx, []string{"/"}, AssetConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPageFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "index.html"},
		{"/blog/", filepath.Join("blog", "index.html")},
		{"/portfolio/true%20crime/", filepath.Join("portfolio", "true crime", "index.html")},
	}
	for _, tt := range tests {
		got, err := pageFile("out", tt.path)
		if err != nil {
			t.Errorf("pageFile(%q): %v", tt.path, err)
			continue
		}
		if want := filepath.Join("out", tt.want); got != want {
			t.Errorf("pageFile(%q) = %q, want %q", tt.path, got, want)
		}
	}

	if _, err := pageFile("out", "/%zz/"); err == nil {
		t.Error("expected error for malformed escape")
	}
}

func TestBufferedResponseKeepsFirstStatus(t *testing.T) {
	rec := newBufferedResponse()
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)
	if rec.status != http.StatusNotFound {
		t.Errorf("status: got %d", rec.status)
	}

	rec = newBufferedResponse()
	fmt.Fprint(rec, "x")
	rec.WriteHeader(http.StatusInternalServerError)
	if rec.status != http.StatusOK {
		t.Errorf("status after write: got %d", rec.status)
	}
}
