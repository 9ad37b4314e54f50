// Package tempo declares the revisions of the tempo package recipe. Each
// revision is its own configuration contract; option names are not carried
// over between revisions unless the revision says so.
package tempo

import (
	"fmt"

	"github.com/msfrank/tempo-recipe/pkgs/gnu"
	"github.com/msfrank/tempo-recipe/recipe"
)

const (
	packageName = "tempo"
	minCppStd   = "20"

	// MetadataDir holds the key files of file-backed revisions.
	MetadataDir = "meta"
)

var (
	defaultSettings = []string{recipe.SettingOS, recipe.SettingCompiler, recipe.SettingBuildType, recipe.SettingArch}

	exportSources = []string{"CMakeLists.txt", "bin/*", "cmake/*", "lib/*"}

	packageInfo = recipe.PackageInfo{
		CMakeFindMode: "none",
		BuildDirs:     []string{"lib/cmake/tempo"},
	}

	sanitizers = []string{"address", "thread", "memory", "undefined", "leak"}
)

func inline(version string) recipe.InlineMetadata {
	return recipe.InlineMetadata{
		Name:        packageName,
		Version:     version,
		License:     "BSD-3-Clause",
		URL:         "https://github.com/msfrank/tempo",
		Description: "Utility libraries for the Zuri project",
	}
}

func tools(cache bool) []recipe.Tool {
	return []recipe.Tool{
		{Package: "antlr", EnvVar: "ANTLR_TOOL_JAR", Variable: "ANTLR_TOOL_JAR", Cache: cache},
		{Package: "flatbuffers", EnvVar: "FLATBUFFERS_FLATC", Variable: "FLATBUFFERS_FLATC", Cache: cache},
	}
}

func versionVar(cache bool) []recipe.MetadataVar {
	return []recipe.MetadataVar{
		{Key: recipe.MetaVersion, Variable: "TEMPO_PACKAGE_VERSION", Cache: cache},
	}
}

func allMetadataVars() []recipe.MetadataVar {
	return []recipe.MetadataVar{
		{Key: recipe.MetaVersion, Variable: "TEMPO_PACKAGE_VERSION", Cache: true},
		{Key: recipe.MetaURL, Variable: "TEMPO_PACKAGE_URL", Cache: true},
		{Key: recipe.MetaDescription, Variable: "TEMPO_PACKAGE_DESCRIPTION", Cache: true},
		{Key: recipe.MetaLicense, Variable: "TEMPO_PACKAGE_LICENSE", Cache: true},
	}
}

func buildTypeOption() recipe.Option {
	return recipe.Option{Name: "build_type", Domain: recipe.EnumDomain(false, "Debug", "Release"), Default: recipe.String("Debug")}
}

// dockerOptions declares the docker options. sudo is the default of
// docker_requires_sudo.
func dockerOptions(sudo recipe.Value) []recipe.Option {
	return []recipe.Option{
		{Name: "docker_program", Domain: recipe.AnyDomain(true), Default: recipe.Null()},
		{Name: "docker_requires_sudo", Domain: recipe.BoolDomain(true), Default: sudo},
		{Name: "docker_platform_id", Domain: recipe.AnyDomain(true), Default: recipe.Null()},
		{Name: "docker_registry", Domain: recipe.AnyDomain(true), Default: recipe.Null()},
	}
}

func dockerRules() []recipe.Rule {
	return []recipe.Rule{
		{Option: "docker_program", When: recipe.Truthy, Variable: "DOCKER_PROGRAM", Cache: true},
		{Option: "docker_requires_sudo", When: recipe.NotNull, Variable: "DOCKER_REQUIRES_SUDO", Cache: true},
		{Option: "docker_platform_id", When: recipe.Truthy, Variable: "DOCKER_PLATFORM_ID", Cache: true},
		{Option: "docker_registry", When: recipe.Truthy, Variable: "DOCKER_REGISTRY", Cache: true},
	}
}

// sanitizerOptions declares the sanitizer and profiler options under the
// given enable-flag names.
func sanitizerOptions(sanitizerFlag, profilerFlag string) []recipe.Option {
	return []recipe.Option{
		{Name: sanitizerFlag, Domain: recipe.BoolDomain(false), Default: recipe.Bool(false)},
		{Name: "sanitizer", Domain: recipe.EnumDomain(true, sanitizers...), Default: recipe.Null()},
		{Name: profilerFlag, Domain: recipe.BoolDomain(false), Default: recipe.Bool(false)},
	}
}

func sanitizerRules(sanitizerFlag, profilerFlag string) []recipe.Rule {
	return []recipe.Rule{
		{Option: sanitizerFlag, When: recipe.Truthy, Variable: "ENABLE_SANITIZER", Cache: true},
		{Option: "sanitizer", When: recipe.Truthy, Variable: "SANITIZER", Cache: true},
		{Option: profilerFlag, When: recipe.Truthy, Variable: "ENABLE_PROFILER", Cache: true},
	}
}

func concat[T any](parts ...[]T) []T {
	var out []T
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func newRevision(id string, meta recipe.MetadataSource, opts []recipe.Option, deps []recipe.Dependency) *recipe.Revision {
	rev := &recipe.Revision{
		ID:          id,
		Name:        packageName,
		Metadata:    meta,
		Settings:    defaultSettings,
		Schema:      recipe.NewSchema(opts...),
		MinCppStd:   minCppStd,
		Sources:     exportSources,
		PackageInfo: packageInfo,
	}
	rev.SetRequires(deps)
	return rev
}

func revision1() *recipe.Revision {
	rev := newRevision("1", inline("0.0.1"), concat(
		[]recipe.Option{
			{Name: "shared", Domain: recipe.BoolDomain(false), Default: recipe.Bool(true)},
			{Name: "compiler.cppstd", Domain: recipe.EnumDomain(false, "17", "20"), Default: recipe.String("20")},
			buildTypeOption(),
		},
		dockerOptions(recipe.Bool(false)),
	), requires1)
	rev.MetadataVars = versionVar(false)
	rev.Tools = tools(false)
	rev.Rules = dockerRules()
	return rev
}

func revision2() *recipe.Revision {
	rev := newRevision("2", inline("0.0.2"), concat(
		[]recipe.Option{
			{Name: "shared", Domain: recipe.BoolDomain(false), Default: recipe.Bool(true)},
			{Name: "compiler.cppstd", Domain: recipe.EnumDomain(false, "17", "20"), Default: recipe.String("20")},
			buildTypeOption(),
		},
		sanitizerOptions("enable_sanitizer", "enable_profiler"),
		dockerOptions(recipe.Bool(false)),
	), requires2)
	rev.MetadataVars = versionVar(false)
	rev.Tools = tools(false)
	rev.Rules = concat(sanitizerRules("enable_sanitizer", "enable_profiler"), dockerRules())
	return rev
}

func revision3() *recipe.Revision {
	rev := newRevision("3", inline("0.0.3"), concat(
		[]recipe.Option{buildTypeOption()},
		sanitizerOptions("enable_sanitizer", "enable_profiler"),
		dockerOptions(recipe.Null()),
	), requires3)
	rev.MetadataVars = versionVar(true)
	rev.Tools = tools(true)
	rev.Rules = concat(sanitizerRules("enable_sanitizer", "enable_profiler"), dockerRules())
	return rev
}

func laterOptions() []recipe.Option {
	return concat(
		[]recipe.Option{buildTypeOption()},
		sanitizerOptions("use_sanitizer", "use_profiler"),
		[]recipe.Option{{Name: "build_docker_images", Domain: recipe.BoolDomain(false), Default: recipe.Bool(false)}},
		dockerOptions(recipe.Null()),
	)
}

func laterRules() []recipe.Rule {
	return concat(
		sanitizerRules("use_sanitizer", "use_profiler"),
		[]recipe.Rule{{Option: "build_docker_images", When: recipe.Truthy, Variable: "ENABLE_DOCKER_BUILD", Cache: true}},
		dockerRules(),
	)
}

func revision4() *recipe.Revision {
	rev := newRevision("4", inline("0.0.4"), laterOptions(), requires4)
	rev.MetadataVars = allMetadataVars()
	rev.Tools = tools(true)
	rev.Rules = laterRules()
	return rev
}

func revision5() *recipe.Revision {
	rev := newRevision("5", recipe.FileMetadata{Name: packageName, Dir: MetadataDir}, laterOptions(), requires5)
	rev.Sources = concat(exportSources, []string{MetadataDir + "/*"})
	rev.MetadataVars = allMetadataVars()
	rev.Tools = tools(true)
	rev.Rules = laterRules()
	return rev
}

var catalogue = func() []*recipe.Revision {
	revs := []*recipe.Revision{revision1(), revision2(), revision3(), revision4(), revision5()}
	for _, rev := range revs {
		if err := rev.Validate(); err != nil {
			panic(err)
		}
	}
	gnu.SortFunc(revs, func(r *recipe.Revision) string { return r.ID })
	return revs
}()

// All returns every revision, oldest first.
func All() []*recipe.Revision {
	out := make([]*recipe.Revision, len(catalogue))
	copy(out, catalogue)
	return out
}

// Latest returns the newest revision.
func Latest() *recipe.Revision {
	return catalogue[len(catalogue)-1]
}

// Lookup returns the revision with the given id. An empty id selects the
// latest revision.
func Lookup(id string) (*recipe.Revision, error) {
	if id == "" {
		return Latest(), nil
	}
	for _, rev := range catalogue {
		if rev.ID == id {
			return rev, nil
		}
	}
	return nil, fmt.Errorf("unknown recipe revision %q", id)
}
