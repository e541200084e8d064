// Package export renders the site to a directory of static files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/vidsponential/website/internal/manifest"
	"github.com/vidsponential/website/internal/progress"
)

// ErrHomepage is returned when the homepage cannot be rendered.
var ErrHomepage = errors.New("homepage not rendered")

// Exporter writes pages served by Handler into OutputDir.
type Exporter struct {
	Handler   http.Handler
	OutputDir string
	// StaticFS, when set, is written under OutputDir/static.
	StaticFS fs.FS
	Reporter progress.Reporter
	Logger   *log.Logger
}

// Result summarises one export.
type Result struct {
	Pages    []manifest.Page
	Assets   int
	Warnings []string
}

// Export renders each path, copies the embedded static files and the shared
// assets. A homepage that does not render with 200 aborts the export; other
// failed pages are recorded and skipped.
func (e *Exporter) Export(ctx context.Context, paths []string, assets AssetConfig) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	reporter := e.Reporter
	if reporter == nil {
		reporter = &progress.CIReporter{}
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	res := &Result{}
	reporter.Start(len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := e.writePage(ctx, p)
		if err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, page)
		reporter.Update(i+1, p)

		if page.StatusCode != http.StatusOK {
			if p == "/" {
				return nil, fmt.Errorf("%w: status %d", ErrHomepage, page.StatusCode)
			}
			w := fmt.Sprintf("page %s returned status %d", p, page.StatusCode)
			logger.Printf("Warning: %s", w)
			res.Warnings = append(res.Warnings, w)
		}
	}
	reporter.Finish()

	if e.StaticFS != nil {
		n, err := writeFS(e.StaticFS, filepath.Join(e.OutputDir, "static"))
		if err != nil {
			return nil, fmt.Errorf("writing static files: %w", err)
		}
		res.Assets += n
	}

	if assets.RootDir != "" {
		n, err := e.copyAssets(assets)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			w := fmt.Sprintf("shared assets directory %s not found", assets.RootDir)
			logger.Printf("Warning: %s", w)
			res.Warnings = append(res.Warnings, w)
		case err != nil:
			return nil, err
		default:
			res.Assets += n
		}
	}

	return res, nil
}

func (e *Exporter) writePage(ctx context.Context, p string) (manifest.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
	if err != nil {
		return manifest.Page{Path: p}, fmt.Errorf("building request for %s: %w", p, err)
	}
	rec := newBufferedResponse()
	e.Handler.ServeHTTP(rec, req)

	page := manifest.Page{Path: p, StatusCode: rec.status}
	if rec.status != http.StatusOK {
		return page, nil
	}

	dst, err := pageFile(e.OutputDir, p)
	if err != nil {
		return page, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return page, fmt.Errorf("creating directory for %s: %w", p, err)
	}
	if err := os.WriteFile(dst, rec.body.Bytes(), 0o644); err != nil {
		return page, fmt.Errorf("writing %s: %w", dst, err)
	}
	page.Bytes = int64(rec.body.Len())
	return page, nil
}

func (e *Exporter) copyAssets(cfg AssetConfig) (int, error) {
	info, err := os.Stat(cfg.RootDir)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("assets path %s is not a directory", cfg.RootDir)
	}

	assets, err := CollectAssets(cfg)
	if err != nil {
		return 0, err
	}
	dir := filepath.Join(e.OutputDir, filepath.Base(filepath.Clean(cfg.RootDir)))
	for _, a := range assets {
		if _, err := copyAsset(a, dir); err != nil {
			return 0, err
		}
	}
	return len(assets), nil
}

// pageFile maps a URL path to the index.html file that serves it.
func pageFile(outDir, urlPath string) (string, error) {
	unescaped, err := url.PathUnescape(urlPath)
	if err != nil {
		return "", fmt.Errorf("invalid page path %q: %w", urlPath, err)
	}
	// Cleaning a rooted path drops any ".." segments.
	clean := path.Clean("/" + unescaped)
	return filepath.Join(outDir, filepath.FromSlash(clean), "index.html"), nil
}

func writeFS(fsys fs.FS, dir string) (int, error) {
	n := 0
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// bufferedResponse captures a handler's output in memory.
type bufferedResponse struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}
