// Package upstream answers build-environment queries about resolved
// dependencies: which variables (tool paths, mostly) each one exposes.
package upstream

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Static is a fixed package -> variables table.
type Static map[string]map[string]string

// Vars returns a copy of pkg's variables.
func (s Static) Vars(pkg string) (map[string]string, error) {
	vars, ok := s[pkg]
	if !ok {
		return nil, fmt.Errorf("no build environment for %q", pkg)
	}
	return maps.Clone(vars), nil
}

// LoadFile reads a YAML build-environment file:
//
//	antlr:
//	  ANTLR_TOOL_JAR: /opt/antlr/antlr-4.9.3-complete.jar
//	flatbuffers:
//	  FLATBUFFERS_FLATC: /opt/flatbuffers/bin/flatc
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Static
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse build environment %s: %w", path, err)
	}
	if s == nil {
		s = Static{}
	}
	return s, nil
}

// Environ reads variables from the process environment. For package pkg
// and variable VAR it looks at <Prefix>_<PKG>_<VAR>, then at VAR itself.
type Environ struct {
	Prefix string
	// Known lists the variables to look up per package, since the process
	// environment cannot be enumerated by package.
	Known map[string][]string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

func (e Environ) Vars(pkg string) (map[string]string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	vars := make(map[string]string)
	for _, name := range e.Known[pkg] {
		if e.Prefix != "" {
			scoped := e.Prefix + "_" + envName(pkg) + "_" + name
			if v, ok := lookup(scoped); ok {
				vars[name] = v
				continue
			}
		}
		if v, ok := lookup(name); ok {
			vars[name] = v
		}
	}
	return vars, nil
}

func envName(pkg string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(pkg))
}

// Source is anything that can answer a build-environment query.
type Source interface {
	Vars(pkg string) (map[string]string, error)
}

// Chain merges the answers of several sources. Earlier sources win; a
// source that errors is skipped unless every source errors.
type Chain []Source

func (c Chain) Vars(pkg string) (map[string]string, error) {
	out := make(map[string]string)
	var firstErr error
	answered := false
	for i := len(c) - 1; i >= 0; i-- {
		vars, err := c[i].Vars(pkg)
		if err != nil {
			firstErr = err
			continue
		}
		answered = true
		maps.Copy(out, vars)
	}
	if !answered && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
