// Package pack assembles the package tree from a finished build tree.
package pack

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/msfrank/tempo-recipe/recipe"
)

// InfoFile is the finalisation record written at the package root.
const InfoFile = "package_info.json"

// Rule copies the build-tree files it matches into Dest.
type Rule struct {
	Kind  string
	Match func(name string) bool
	Dest  string
	// KeepPath keeps the file's path relative to the build tree, minus a
	// leading StripPrefix directory. Otherwise files land flat in Dest.
	KeepPath    bool
	StripPrefix string
}

var sharedObject = regexp.MustCompile(`\.so(\.\d+)*$`)

func hasExt(exts ...string) func(string) bool {
	return func(name string) bool {
		ext := strings.ToLower(path.Ext(name))
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// Rules are the copy rules of the packaging step, applied in order; the
// first match wins.
var Rules = []Rule{
	{Kind: "header", Match: hasExt(".h", ".hh", ".hpp", ".hxx"), Dest: "include", KeepPath: true, StripPrefix: "include"},
	{Kind: "shared", Match: func(name string) bool { return sharedObject.MatchString(name) || hasExt(".dylib")(name) }, Dest: "lib"},
	{Kind: "static", Match: hasExt(".a", ".lib"), Dest: "lib"},
}

// Copied records one packaged file, with slash-separated paths relative to
// the build and package roots.
type Copied struct {
	Kind string `json:"kind"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Package copies headers, shared objects and static archives from buildDir
// into outDir. Nothing else is copied. Two files mapping to the same
// destination is an error.
func Package(buildDir, outDir string) ([]Copied, error) {
	plan, err := planCopies(os.DirFS(buildDir))
	if err != nil {
		return nil, err
	}
	for _, c := range plan {
		src := filepath.Join(buildDir, filepath.FromSlash(c.From))
		dst := filepath.Join(outDir, filepath.FromSlash(c.To))
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("failed to package %s: %w", c.From, err)
		}
	}
	return plan, nil
}

func planCopies(fsys fs.FS) ([]Copied, error) {
	var plan []Copied
	seen := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for _, r := range Rules {
			if !r.Match(path.Base(name)) {
				continue
			}
			to := path.Join(r.Dest, path.Base(name))
			if r.KeepPath {
				rel := name
				if r.StripPrefix != "" {
					rel = strings.TrimPrefix(rel, r.StripPrefix+"/")
				}
				to = path.Join(r.Dest, rel)
			}
			if prev, ok := seen[to]; ok {
				return fmt.Errorf("%s and %s both package to %s", prev, name, to)
			}
			seen[to] = name
			plan = append(plan, Copied{Kind: r.Kind, From: name, To: to})
			break
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Finalize writes the package-info record into outDir.
func Finalize(outDir string, info recipe.PackageInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, InfoFile), append(data, '\n'), 0o644)
}
