package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"
)

func touch(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func paths(files []SourceFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	sort.Strings(out)
	return out
}

func TestNewSourceFile(t *testing.T) {
	f := NewSourceFile(filepath.Join("a", "b", "IMG_0001.JPG"))
	if f.Name != "IMG_0001.JPG" || f.Ext != "jpg" {
		t.Errorf("got %+v", f)
	}
	if g := NewSourceFile("README"); g.Ext != "" {
		t.Errorf("extensionless file got ext %q", g.Ext)
	}
}

func TestExtensionFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter ExtensionFilter
		ext    string
		want   bool
	}{
		{"empty accepts all", NewExtensionFilter(), "txt", true},
		{"empty accepts no ext", NewExtensionFilter(), "", true},
		{"match", NewExtensionFilter("jpg"), "jpg", true},
		{"case insensitive", NewExtensionFilter(".JPG"), "Jpg", true},
		{"miss", NewExtensionFilter("jpg", "png"), "gif", false},
		{"no ext rejected", NewExtensionFilter("jpg"), "", false},
		{"blank entries ignored", NewExtensionFilter(" ", ""), "raw", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Accepts(tt.ext); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestEnumerate_RecursesAndFilters(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"), "a")
	touch(t, filepath.Join(root, "notes.txt"), "n")
	touch(t, filepath.Join(root, "2019", "05", "b.JPG"), "b")
	touch(t, filepath.Join(root, "2019", "c.png"), "c")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Enumerate(root, NewExtensionFilter("jpg"), nil)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	got := paths(files)
	want := []string{
		filepath.Join(root, "2019", "05", "b.JPG"),
		filepath.Join(root, "a.jpg"),
	}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnumerate_EmptyFilterAcceptsAll(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"), "a")
	touch(t, filepath.Join(root, "sub", "README"), "r")

	files, err := Enumerate(root, NewExtensionFilter(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("got %v, want 2 files", paths(files))
	}
}

func TestEnumerate_IncludesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.jpg")
	touch(t, target, "x")
	if err := os.Symlink(target, filepath.Join(root, "link.jpg")); err != nil {
		t.Fatal(err)
	}

	files, err := Enumerate(root, NewExtensionFilter("jpg"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "link.jpg" {
		t.Errorf("got %v", paths(files))
	}
}

func TestEnumerate_MissingRoot(t *testing.T) {
	if _, err := Enumerate(filepath.Join(t.TempDir(), "nope"), NewExtensionFilter(), nil); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

// failingReadDir fails for the listed directories and reads the rest.
func failingReadDir(fail ...string) readDirFunc {
	return func(dir string) ([]os.DirEntry, error) {
		for _, f := range fail {
			if dir == f {
				return nil, os.ErrPermission
			}
		}
		return os.ReadDir(dir)
	}
}

func TestEnumerate_UnreadableSubdirIsSkipped(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "ok.jpg"), "a")
	locked := filepath.Join(root, "locked")
	touch(t, filepath.Join(locked, "hidden.jpg"), "b")
	touch(t, filepath.Join(locked, "deeper", "also-hidden.jpg"), "c")
	touch(t, filepath.Join(root, "open", "seen.jpg"), "d")

	files, err := enumerate(root, NewExtensionFilter(), nil, failingReadDir(locked))
	if err != nil {
		t.Fatalf("subdirectory failure must not fail the walk: %v", err)
	}
	got := paths(files)
	want := []string{filepath.Join(root, "ok.jpg"), filepath.Join(root, "open", "seen.jpg")}
	sort.Strings(want)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnumerate_UnreadableRootIsFatal(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"), "a")

	files, err := enumerate(root, NewExtensionFilter(), nil, failingReadDir(root))
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("err = %v, want the root error as is", err)
	}
	if files != nil {
		t.Errorf("no files expected on root failure, got %v", paths(files))
	}
}

func TestCopyFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	touch(t, src, "new content")
	touch(t, dst, "old content that is longer")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "new content" {
		t.Errorf("dst = %q", string(b))
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2020", "Октябрь")
	for i := 0; i < 2; i++ {
		if err := (OS{}).EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir pass %d: %v", i, err)
		}
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("dir not created: %v", err)
	}
}

func TestTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	touch(t, path, "a")
	mod := time.Date(2015, 6, 7, 8, 9, 10, 0, time.Local)
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}

	ft, err := Times(path)
	if err != nil {
		t.Fatalf("Times: %v", err)
	}
	if !ft.Mod.Equal(mod) {
		t.Errorf("mod = %v, want %v", ft.Mod, mod)
	}

	if _, err := Times(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
