package internal

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msfrank/tempo-recipe/internal/emit"
	"github.com/msfrank/tempo-recipe/pkgs/buildsys"
	"github.com/msfrank/tempo-recipe/pkgs/buildsys/cmake"
	"github.com/msfrank/tempo-recipe/recipe"
)

type buildFlags struct {
	configureFlags
	sourceDir  string
	installDir string
	generator  string
	prefixes   []string
	verbose    bool
}

func newBuildCmd(a *app) *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure, then drive cmake configure, build and install",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.configure(cmd.Context(), &f.configureFlags)
			if err != nil {
				return err
			}
			if _, err := emit.WriteAll(a.cfg.OutputDir, cfg); err != nil {
				return err
			}

			c := newCMake(a.cfg.OutputDir, a.cfg.RecipeDir, cfg, &f)
			if !f.verbose {
				c.Stdout, c.Stderr = io.Discard, io.Discard
			}
			a.log.Info("building", "source", c.SourceDir, "install", c.OutputDir())
			if err := runBuildSystem(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.OutputDir())
			return nil
		},
	}
	f.configureFlags.register(cmd)
	cmd.Flags().StringVar(&f.sourceDir, "source-dir", "", "CMake source tree (default: --recipe-dir)")
	cmd.Flags().StringVar(&f.installDir, "install-dir", "", "install prefix (default: <output-dir>/install)")
	cmd.Flags().StringVarP(&f.generator, "generator", "G", "", "CMake generator")
	cmd.Flags().StringArrayVar(&f.prefixes, "prefix", nil, "installed dependency prefix to search (repeatable)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "show cmake output")
	return cmd
}

// newCMake prepares a cmake run for cfg under outputDir.
func newCMake(outputDir, recipeDir string, cfg *recipe.Configuration, f *buildFlags) *cmake.CMake {
	source := f.sourceDir
	if source == "" {
		source = recipeDir
	}
	install := f.installDir
	if install == "" {
		install = filepath.Join(outputDir, "install")
	}

	c := cmake.New(source, filepath.Join(outputDir, "cmake"))
	c.InstallDir(install)
	for _, p := range f.prefixes {
		c.UsePrefix(p)
	}
	if f.generator != "" {
		c.Generator(f.generator)
	}
	if bt := buildType(cfg); bt != "" {
		c.BuildType(bt)
	}
	c.ApplyToolchain(cfg.Toolchain)
	return c
}

// buildType prefers the build_type option over the build_type setting.
func buildType(cfg *recipe.Configuration) string {
	if s, ok := cfg.Options.Get(recipe.SettingBuildType).AsString(); ok && s != "" {
		return s
	}
	return cfg.Settings.BuildType
}

func runBuildSystem(ctx context.Context, bs buildsys.BuildSystem) error {
	if err := bs.Configure(ctx); err != nil {
		return fmt.Errorf("cmake configure: %w", err)
	}
	if err := bs.Build(ctx); err != nil {
		return fmt.Errorf("cmake build: %w", err)
	}
	if err := bs.Install(ctx); err != nil {
		return fmt.Errorf("cmake install: %w", err)
	}
	return nil
}
