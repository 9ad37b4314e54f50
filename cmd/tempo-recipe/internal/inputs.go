package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/internal/config"
	"github.com/msfrank/tempo-recipe/internal/options"
	"github.com/msfrank/tempo-recipe/internal/upstream"
	"github.com/msfrank/tempo-recipe/recipe"
	"github.com/msfrank/tempo-recipe/tempo"
)

const dockerPlatformOption = "docker_platform_id"

// inputFlags are the -o/-s assignments accepted by commands that evaluate
// a revision.
type inputFlags struct {
	options  []string
	settings []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil, "recipe option NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVarP(&f.settings, "setting", "s", nil, "setting NAME=VALUE, e.g. compiler.cppstd=20 (repeatable)")
}

// configureFlags extend inputFlags with the environment a full pass needs.
type configureFlags struct {
	inputFlags
	detectPlatform bool
}

func (f *configureFlags) register(cmd *cobra.Command) {
	f.inputFlags.register(cmd)
	cmd.Flags().StringArray("profile", nil, "profile file (.yaml, .json, .jsonc, .hcl); later profiles win (repeatable)")
	cmd.Flags().String("buildenv", "", "YAML file with the build-environment variables of each dependency")
	cmd.Flags().String("output-dir", "build", "directory for the toolchain file and configuration report")
	cmd.Flags().BoolVar(&f.detectPlatform, "detect-docker-platform", false, "ask the Docker daemon for docker_platform_id when unset")
}

func (a *app) revision() (*recipe.Revision, error) {
	return tempo.Lookup(a.cfg.Revision)
}

// metadataLoader returns the memoized metadata loader for rev.
func (a *app) metadataLoader(rev *recipe.Revision) func() (recipe.PackageMetadata, error) {
	if a.loadMeta == nil {
		a.loadMeta = recipe.MemoMetadata(rev.Metadata, a.cfg.RecipeDir)
	}
	return a.loadMeta
}

// profile merges the configured profile files, in order, under the
// command-line assignments.
func (a *app) profile(f *inputFlags) (*options.Profile, error) {
	var layers []*options.Profile
	for _, path := range a.cfg.Profiles {
		p, err := options.LoadFile(path)
		if err != nil {
			return nil, err
		}
		a.log.Debug("profile loaded", "path", path, "options", len(p.Options), "settings", len(p.Settings))
		layers = append(layers, p)
	}
	cli, err := options.FromAssignments(f.options, f.settings)
	if err != nil {
		return nil, err
	}
	return options.Merge(append(layers, cli)...), nil
}

// buildEnv answers tool lookups from --buildenv first, then from the
// process environment.
func (a *app) buildEnv(rev *recipe.Revision) (recipe.BuildEnv, error) {
	known := make(map[string][]string)
	for _, t := range rev.Tools {
		known[t.Package] = append(known[t.Package], t.EnvVar)
	}
	var chain upstream.Chain
	if a.cfg.BuildEnv != "" {
		static, err := upstream.LoadFile(a.cfg.BuildEnv)
		if err != nil {
			return nil, err
		}
		chain = append(chain, static)
	}
	chain = append(chain, upstream.Environ{Prefix: config.EnvPrefix, Known: known})
	return chain, nil
}

// needsPlatform reports whether rev declares docker_platform_id and the
// user left it unset.
func needsPlatform(rev *recipe.Revision, opts map[string]recipe.Value) bool {
	if _, ok := rev.Schema.Lookup(dockerPlatformOption); !ok {
		return false
	}
	v, ok := opts[dockerPlatformOption]
	return !ok || v.IsNull()
}

func (a *app) configure(ctx context.Context, f *configureFlags) (*recipe.Configuration, error) {
	rev, err := a.revision()
	if err != nil {
		return nil, err
	}
	p, err := a.profile(&f.inputFlags)
	if err != nil {
		return nil, err
	}
	settings, err := p.RecipeSettings()
	if err != nil {
		return nil, err
	}

	if f.detectPlatform && needsPlatform(rev, p.Options) {
		platform, err := a.probePlatform(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to detect docker platform: %w", err)
		}
		a.log.Info("docker platform detected", "platform", platform)
		p.Options[dockerPlatformOption] = recipe.String(platform)
	}

	env, err := a.buildEnv(rev)
	if err != nil {
		return nil, err
	}
	return recipe.Configure(recipe.Inputs{
		Revision:  rev,
		RecipeDir: a.cfg.RecipeDir,
		Metadata:  a.metadataLoader(rev),
		Options:   p.Options,
		Settings:  settings,
		BuildEnv:  env,
		Logger:    a.log,
	})
}
