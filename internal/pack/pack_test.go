package pack

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/msfrank/tempo-recipe/recipe"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, []byte(f), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(out)
	return out
}

func TestPackageCopiesOnlyArtifacts(t *testing.T) {
	build := t.TempDir()
	out := t.TempDir()
	writeTree(t, build,
		"include/tempo_utils/logging.h",
		"lib/libtempo_utils.so",
		"lib/libtempo_config.a",
		"CMakeCache.txt",
		"src/logging.cpp.o",
		"lib/cmake/tempo/tempo-targets.cmake",
	)

	copied, err := Package(build, out)
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if len(copied) != 3 {
		t.Fatalf("copied %d files, want 3: %v", len(copied), copied)
	}

	got := listTree(t, out)
	want := []string{
		"include/tempo_utils/logging.h",
		"lib/libtempo_config.a",
		"lib/libtempo_utils.so",
	}
	if len(got) != len(want) {
		t.Fatalf("package tree = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("package tree = %v, want %v", got, want)
		}
	}

	data, err := os.ReadFile(filepath.Join(out, "lib", "libtempo_utils.so"))
	if err != nil {
		t.Fatalf("read packaged file: %v", err)
	}
	if string(data) != "lib/libtempo_utils.so" {
		t.Errorf("packaged content = %q", data)
	}
}

func TestPackageFlattensLibraries(t *testing.T) {
	build := t.TempDir()
	out := t.TempDir()
	writeTree(t, build,
		"tempo_utils/libtempo_utils.so.1.2",
		"tempo_config/Release/tempo_config.lib",
		"tempo_security/libtempo_security.dylib",
		"tempo_utils/src/internal.hpp",
	)

	copied, err := Package(build, out)
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	kinds := map[string]string{}
	for _, c := range copied {
		kinds[c.To] = c.Kind
	}
	want := map[string]string{
		"lib/libtempo_utils.so.1.2":            "shared",
		"lib/tempo_config.lib":                 "static",
		"lib/libtempo_security.dylib":          "shared",
		"include/tempo_utils/src/internal.hpp": "header",
	}
	for to, kind := range want {
		if kinds[to] != kind {
			t.Errorf("%s: kind = %q, want %q (copied %v)", to, kinds[to], kind, copied)
		}
	}
}

func TestPackageRejectsCollisions(t *testing.T) {
	build := t.TempDir()
	writeTree(t, build, "a/libtempo.a", "b/libtempo.a")
	if _, err := Package(build, t.TempDir()); err == nil {
		t.Fatal("expected collision error")
	}
}

func TestFinalize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pkg")
	info := recipe.PackageInfo{CMakeFindMode: "none", BuildDirs: []string{"lib/cmake/tempo"}}
	if err := Finalize(out, info); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, InfoFile))
	if err != nil {
		t.Fatalf("read info: %v", err)
	}
	var got recipe.PackageInfo
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.CMakeFindMode != "none" || len(got.BuildDirs) != 1 || got.BuildDirs[0] != "lib/cmake/tempo" {
		t.Errorf("package info = %+v", got)
	}
}

func TestOutputDirectory(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "include/a.h", "lib/liba.a")
	dest := filepath.Join(t.TempDir(), "out")
	if err := Output(src, dest); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := listTree(t, dest); len(got) != 2 {
		t.Errorf("copied tree = %v", got)
	}
}

func TestOutputReplacesPreviousPackage(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")

	first := t.TempDir()
	writeTree(t, first, "include/a.h", "lib/liba.a", InfoFile)
	if err := Output(first, dest); err != nil {
		t.Fatalf("first Output: %v", err)
	}

	second := t.TempDir()
	writeTree(t, second, "include/a.h", "lib/libb.a", InfoFile)
	if err := Output(second, dest); err != nil {
		t.Fatalf("second Output: %v", err)
	}
	want := []string{"include/a.h", "lib/libb.a", InfoFile}
	if got := listTree(t, dest); len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("replaced tree = %v, want %v", got, want)
	}
}

func TestOutputKeepsForeignDirectory(t *testing.T) {
	dest := t.TempDir()
	writeTree(t, dest, "include/a.h")

	src := t.TempDir()
	writeTree(t, src, "include/a.h", InfoFile)
	if err := Output(src, dest); err == nil {
		t.Fatal("Output over a non-package directory succeeded")
	}
	data, err := os.ReadFile(filepath.Join(dest, "include", "a.h"))
	if err != nil || string(data) != "include/a.h" {
		t.Errorf("existing file changed: %q, %v", data, err)
	}
}

func TestOutputZipManyFiles(t *testing.T) {
	src := t.TempDir()
	var files []string
	for i := range 300 {
		files = append(files, fmt.Sprintf("include/h%03d.h", i))
	}
	writeTree(t, src, files...)
	dest := filepath.Join(t.TempDir(), "many.zip")
	if err := Output(src, dest); err != nil {
		t.Fatalf("Output: %v", err)
	}
	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()
	if len(r.File) != len(files) {
		t.Errorf("zip has %d entries, want %d", len(r.File), len(files))
	}
}

func TestOutputZip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, "include/a.h", "lib/liba.a")
	dest := filepath.Join(t.TempDir(), "tempo.zip")
	if err := Output(src, dest); err != nil {
		t.Fatalf("Output: %v", err)
	}
	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "include/a.h" || names[1] != "lib/liba.a" {
		t.Errorf("zip entries = %v", names)
	}
}
