package export

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func relPaths(assets []Asset) []string {
	var out []string
	for _, a := range assets {
		out = append(out, a.RelPath)
	}
	sort.Strings(out)
	return out
}

func TestCollectAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "css", "main.css"), "a{}")
	writeFile(t, filepath.Join(root, "img", "logo.png"), "png")
	writeFile(t, filepath.Join(root, "img", "draft.psd"), "psd")
	writeFile(t, filepath.Join(root, ".DS_Store"), "junk")
	writeFile(t, filepath.Join(root, "node_modules", "x", "index.js"), "x")

	assets, err := CollectAssets(AssetConfig{RootDir: root})
	if err != nil {
		t.Fatalf("CollectAssets: %v", err)
	}
	got := relPaths(assets)
	want := []string{"css/main.css", "img/draft.psd", "img/logo.png"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("asset %d: got %s, want %s", i, got[i], want[i])
		}
	}

	for _, a := range assets {
		if len(a.ContentHash) != 64 {
			t.Errorf("%s: hash length %d", a.RelPath, len(a.ContentHash))
		}
	}
}

func TestCollectAssetsIncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "css", "main.css"), "a{}")
	writeFile(t, filepath.Join(root, "css", "vendor", "reset.css"), "b{}")
	writeFile(t, filepath.Join(root, "img", "logo.png"), "png")

	assets, err := CollectAssets(AssetConfig{
		RootDir: root,
		Include: []string{"css/**"},
		Exclude: []string{"**/vendor/**"},
	})
	if err != nil {
		t.Fatalf("CollectAssets: %v", err)
	}
	got := relPaths(assets)
	if len(got) != 1 || got[0] != "css/main.css" {
		t.Errorf("got %v", got)
	}
}

func TestMatchesPatterns(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"css/main.css", []string{"**/*.css"}, true},
		{"img/logo.png", []string{"*.png"}, true},
		{"img/logo.png", []string{"css/**"}, false},
		{"a/b/c/d.js", []string{"a/**"}, true},
	}
	for _, tt := range tests {
		if got := MatchesInclude(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesInclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}

	if !MatchesInclude("anything", nil) {
		t.Error("empty include list should match everything")
	}
	if MatchesExclude("anything", nil) {
		t.Error("empty exclude list should match nothing")
	}
}

func TestCopyAssetSkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(root, "a.css"), "a{}")

	assets, err := CollectAssets(AssetConfig{RootDir: root})
	if err != nil || len(assets) != 1 {
		t.Fatalf("CollectAssets: %v, %d assets", err, len(assets))
	}

	wrote, err := copyAsset(assets[0], dst)
	if err != nil || !wrote {
		t.Fatalf("first copy: wrote=%v err=%v", wrote, err)
	}
	wrote, err = copyAsset(assets[0], dst)
	if err != nil || wrote {
		t.Fatalf("second copy: wrote=%v err=%v", wrote, err)
	}

	writeFile(t, filepath.Join(dst, "a.css"), "changed")
	wrote, err = copyAsset(assets[0], dst)
	if err != nil || !wrote {
		t.Fatalf("copy over changed file: wrote=%v err=%v", wrote, err)
	}
	data, _ := os.ReadFile(filepath.Join(dst, "a.css"))
	if string(data) != "a{}" {
		t.Errorf("content: got %q", data)
	}
}
