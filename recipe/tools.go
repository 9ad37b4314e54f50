package recipe

// BuildEnv exposes the build-environment variables declared by resolved
// upstream dependencies.
type BuildEnv interface {
	Vars(pkg string) (map[string]string, error)
}

// ResolveTools looks up every tool of rev in env and returns the paths keyed
// by toolchain variable name.
func ResolveTools(rev *Revision, env BuildEnv) (map[string]string, error) {
	paths := make(map[string]string, len(rev.Tools))
	for _, t := range rev.Tools {
		if _, ok := rev.Require(t.Package); !ok {
			return nil, &UnresolvedToolError{Package: t.Package, Variable: t.EnvVar, Reason: "not a declared dependency"}
		}
		if env == nil {
			return nil, &UnresolvedToolError{Package: t.Package, Variable: t.EnvVar, Reason: "no build environment available"}
		}
		vars, err := env.Vars(t.Package)
		if err != nil {
			return nil, &UnresolvedToolError{Package: t.Package, Variable: t.EnvVar, Reason: "build environment lookup failed", Err: err}
		}
		path, ok := vars[t.EnvVar]
		if !ok {
			return nil, &UnresolvedToolError{Package: t.Package, Variable: t.EnvVar, Reason: "variable not exposed"}
		}
		if path == "" {
			return nil, &UnresolvedToolError{Package: t.Package, Variable: t.EnvVar, Reason: "variable is empty"}
		}
		paths[t.Variable] = path
	}
	return paths, nil
}
