package recipe

// Predicate decides whether an option value produces a toolchain variable.
type Predicate struct {
	Name  string
	Match func(Value) bool
}

var (
	// Truthy inserts the variable only when the option is set to a true-ish
	// value.
	Truthy = Predicate{Name: "truthy", Match: Value.Truthy}

	// NotNull inserts the variable whenever the option is set at all, so an
	// explicit false is still propagated.
	NotNull = Predicate{Name: "not-null", Match: func(v Value) bool { return !v.IsNull() }}
)

// Rule maps one option to one toolchain variable.
type Rule struct {
	Option   string
	When     Predicate
	Variable string
	Cache    bool
}

// MetadataVar is an always-set variable carrying a metadata field.
type MetadataVar struct {
	Key      string // one of MetaVersion, MetaLicense, MetaURL, MetaDescription
	Variable string
	Cache    bool
}

// Tool is an always-set variable whose value is a tool path exposed by an
// upstream dependency's build environment.
type Tool struct {
	Package  string // dependency name
	EnvVar   string // build-environment variable on that dependency
	Variable string // toolchain variable to set
	Cache    bool
}

// DeriveToolchain builds the toolchain variables: metadata variables, tool
// paths, then one entry per matching rule, in that order. opts is only read.
func DeriveToolchain(meta PackageMetadata, tools map[string]string, opts ResolvedOptions, rev *Revision) *ToolchainConfig {
	tc := &ToolchainConfig{}
	for _, mv := range rev.MetadataVars {
		tc.Set(mv.Variable, String(meta.Field(mv.Key)), mv.Cache)
	}
	for _, t := range rev.Tools {
		tc.Set(t.Variable, String(tools[t.Variable]), t.Cache)
	}
	for _, r := range rev.Rules {
		v := opts.Get(r.Option)
		if r.When.Match(v) {
			tc.Set(r.Variable, v, r.Cache)
		}
	}
	return tc
}
