// Package emit writes a derived configuration in the forms the external
// build orchestrator consumes.
package emit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/msfrank/tempo-recipe/recipe"
)

const (
	ToolchainFile = "tempo_toolchain.cmake"
	ReportFile    = "configuration.json"
)

var cmakeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

func quote(s string) string {
	return `"` + cmakeEscaper.Replace(s) + `"`
}

// Toolchain writes cfg's toolchain variables as a CMake script. Plain
// variables come first, then the cached ones, which are forced into the
// cache. Booleans become ON/OFF.
func Toolchain(w io.Writer, cfg *recipe.Configuration) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s, recipe revision %s\n", cfg.Metadata.Name, cfg.Metadata.Version, cfg.Revision)
	for v := range cfg.Toolchain.Cached(false) {
		val, _ := cmakeValue(v.Value)
		fmt.Fprintf(bw, "set(%s %s)\n", v.Name, quote(val))
	}
	for v := range cfg.Toolchain.Cached(true) {
		val, typ := cmakeValue(v.Value)
		fmt.Fprintf(bw, "set(%s %s CACHE %s \"\" FORCE)\n", v.Name, quote(val), typ)
	}
	return bw.Flush()
}

func cmakeValue(v recipe.Value) (string, string) {
	if b, ok := v.AsBool(); ok {
		if b {
			return "ON", "BOOL"
		}
		return "OFF", "BOOL"
	}
	return v.String(), "STRING"
}

// Report writes cfg as indented JSON.
func Report(w io.Writer, cfg *recipe.Configuration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// WriteAll writes the toolchain script and the JSON report into dir and
// returns their paths. Both are rendered and staged before either is put in
// place; on failure neither output is left behind.
func WriteAll(dir string, cfg *recipe.Configuration) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	outputs := []struct {
		name   string
		render func(io.Writer, *recipe.Configuration) error
		tmp    string
	}{
		{name: ToolchainFile, render: Toolchain},
		{name: ReportFile, render: Report},
	}
	defer func() {
		for _, out := range outputs {
			if out.tmp != "" {
				os.Remove(out.tmp)
			}
		}
	}()

	for i := range outputs {
		out := &outputs[i]
		var buf bytes.Buffer
		if err := out.render(&buf, cfg); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", out.name, err)
		}
		tmp, err := stage(dir, out.name, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", filepath.Join(dir, out.name), err)
		}
		out.tmp = tmp
	}

	paths := make([]string, 0, len(outputs))
	for i := range outputs {
		out := &outputs[i]
		path := filepath.Join(dir, out.name)
		if err := os.Rename(out.tmp, path); err != nil {
			for _, done := range paths {
				os.Remove(done)
			}
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		out.tmp = ""
		paths = append(paths, path)
	}
	return paths, nil
}

// stage writes data to a temporary file next to its final name.
func stage(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
