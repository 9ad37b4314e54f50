package recipe

import (
	"fmt"
	"slices"
)

// PackageInfo is what consumers of the packaged library are told about it.
type PackageInfo struct {
	// CMakeFindMode controls generation of find-package files for
	// consumers; "none" suppresses them.
	CMakeFindMode string   `json:"cmake_find_mode"`
	BuildDirs     []string `json:"builddirs"`
}

// Revision is one versioned contract of the recipe: its option schema,
// metadata source, fixed requirements and derivation tables.
type Revision struct {
	ID          string
	Name        string
	Metadata    MetadataSource
	Settings    []string
	Schema      Schema
	MinCppStd   string
	Sources     []string // exported source patterns
	PackageInfo PackageInfo

	// Derivation tables, evaluated in order.
	MetadataVars []MetadataVar
	Tools        []Tool
	Rules        []Rule

	requires []Dependency
}

// SetRequires fixes the revision's dependency list.
func (r *Revision) SetRequires(deps []Dependency) {
	r.requires = slices.Clone(deps)
}

// Requires returns the fixed dependency list. Callers get their own copy.
func (r *Revision) Requires() []Dependency {
	return slices.Clone(r.requires)
}

// Require returns the dependency called name.
func (r *Revision) Require(name string) (Dependency, bool) {
	for _, d := range r.requires {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

// Validate checks the revision tables against each other: the schema is
// well formed, every rule names a declared option, and every tool names a
// required package.
func (r *Revision) Validate() error {
	if r.ID == "" || r.Name == "" {
		return fmt.Errorf("revision needs an id and a name")
	}
	if r.Metadata == nil {
		return fmt.Errorf("revision %s: no metadata source", r.ID)
	}
	if err := r.Schema.Validate(); err != nil {
		return fmt.Errorf("revision %s: %w", r.ID, err)
	}
	if _, ok := stdYear(r.MinCppStd); !ok {
		return fmt.Errorf("revision %s: invalid minimum standard %q", r.ID, r.MinCppStd)
	}
	for _, rule := range r.Rules {
		if _, ok := r.Schema.Lookup(rule.Option); !ok {
			return fmt.Errorf("revision %s: rule for %s names undeclared option %q", r.ID, rule.Variable, rule.Option)
		}
		if rule.When.Match == nil {
			return fmt.Errorf("revision %s: rule for %s has no predicate", r.ID, rule.Variable)
		}
	}
	for _, t := range r.Tools {
		if _, ok := r.Require(t.Package); !ok {
			return fmt.Errorf("revision %s: tool %s comes from %q which is not required", r.ID, t.Variable, t.Package)
		}
	}
	for _, mv := range r.MetadataVars {
		if !slices.Contains(metadataKeys, mv.Key) {
			return fmt.Errorf("revision %s: unknown metadata key %q", r.ID, mv.Key)
		}
	}
	return nil
}
