package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultAssetExcludes are names never copied from the assets directory.
var DefaultAssetExcludes = []string{
	".git",
	"node_modules",
	".DS_Store",
	"Thumbs.db",
}

// AssetConfig selects the shared files copied into an export.
type AssetConfig struct {
	RootDir string   // Directory holding shared assets.
	Include []string // Glob patterns; only matching files are copied. Empty copies everything.
	Exclude []string // Glob patterns; matching files are skipped.
}

// Asset is one file selected for copying.
type Asset struct {
	Path        string // Absolute path on disk.
	RelPath     string // Slash-separated path relative to the root.
	Size        int64
	ContentHash string // SHA-256 hex digest of the file content.
}

// CollectAssets walks cfg.RootDir and returns every regular file that
// passes the include and exclude patterns.
func CollectAssets(cfg AssetConfig) ([]Asset, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}

	var assets []Asset
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if path != root && isDefaultExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isDefaultExcluded(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !MatchesInclude(relPath, cfg.Include) || MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		hash, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("hashing %s: %w", relPath, err)
		}

		assets = append(assets, Asset{
			Path:        path,
			RelPath:     filepath.ToSlash(relPath),
			Size:        info.Size(),
			ContentHash: hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: traversal: %w", err)
	}
	return assets, nil
}

// copyAsset copies a into dir, skipping the write when an identical file
// is already there. It reports whether a file was written.
func copyAsset(a Asset, dir string) (bool, error) {
	dst := filepath.Join(dir, filepath.FromSlash(a.RelPath))
	if existing, err := hashFile(dst); err == nil && existing == a.ContentHash {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", a.RelPath, err)
	}
	src, err := os.Open(a.Path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", a.RelPath, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return false, fmt.Errorf("copying %s: %w", a.RelPath, err)
	}
	return true, out.Close()
}

func isDefaultExcluded(name string) bool {
	for _, excl := range DefaultAssetExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath, then its base name, against each pattern with
// doublestar (** aware) matching.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
