package recipe

import (
	"fmt"
	"log/slog"
)

// Inputs is everything one derivation pass reads.
type Inputs struct {
	Revision  *Revision
	RecipeDir string                          // root for file-backed metadata
	Metadata  func() (PackageMetadata, error) // optional; see MemoMetadata
	Options   map[string]Value                // user-supplied, unresolved
	Settings  Settings
	BuildEnv  BuildEnv
	Logger    *slog.Logger // optional
}

// Configuration is the result of a derivation pass. It is never mutated
// after Configure returns it.
type Configuration struct {
	Revision    string           `json:"revision"`
	Metadata    PackageMetadata  `json:"metadata"`
	Options     ResolvedOptions  `json:"options"`
	Settings    Settings         `json:"settings"`
	CppStd      string           `json:"cppstd"`
	Toolchain   *ToolchainConfig `json:"toolchain"`
	Requires    []Dependency     `json:"requires"`
	PackageInfo PackageInfo      `json:"package_info"`
}

// Configure runs the derivation pass: metadata, options, standard check,
// tool resolution, toolchain. Any failure aborts with no configuration.
func Configure(in Inputs) (*Configuration, error) {
	rev := in.Revision
	if rev == nil {
		return nil, fmt.Errorf("configure: no revision")
	}
	log := in.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("revision", rev.ID)

	load := in.Metadata
	if load == nil {
		load = func() (PackageMetadata, error) { return rev.Metadata.Load(in.RecipeDir) }
	}
	meta, err := load()
	if err != nil {
		return nil, err
	}
	log.Debug("metadata derived", "version", meta.Version, "license", meta.License)

	opts, err := rev.Schema.Resolve(in.Options)
	if err != nil {
		return nil, err
	}
	log.Debug("options resolved", "count", opts.Len())

	std := EffectiveCppStd(in.Settings, opts)
	if err := CheckMinCppStd(std, rev.MinCppStd); err != nil {
		return nil, err
	}
	log.Debug("standard accepted", "cppstd", std, "minimum", rev.MinCppStd)

	tools, err := ResolveTools(rev, in.BuildEnv)
	if err != nil {
		return nil, err
	}
	log.Debug("tools resolved", "count", len(tools))

	tc := DeriveToolchain(meta, tools, opts, rev)
	log.Debug("toolchain derived", "variables", tc.Len())

	return &Configuration{
		Revision:    rev.ID,
		Metadata:    meta,
		Options:     opts,
		Settings:    in.Settings,
		CppStd:      std,
		Toolchain:   tc,
		Requires:    rev.Requires(),
		PackageInfo: rev.PackageInfo,
	}, nil
}
