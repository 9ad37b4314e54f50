package internal

import (
	"context"
	"log"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msfrank/tempo-recipe/internal/config"
	"github.com/msfrank/tempo-recipe/internal/docker"
	"github.com/msfrank/tempo-recipe/internal/logging"
	"github.com/msfrank/tempo-recipe/recipe"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	configFile string
	v          *viper.Viper
	cfg        config.Config
	log        *slog.Logger

	// loadMeta is the metadata loader of the selected revision, shared by
	// every step of one invocation.
	loadMeta func() (recipe.PackageMetadata, error)

	// probePlatform asks a container engine for its os/arch.
	probePlatform func(ctx context.Context) (string, error)
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"revision":   config.KeyRevision,
	"recipe-dir": config.KeyRecipeDir,
	"log-level":  config.KeyLogLevel,
	"log-format": config.KeyLogFormat,
	"buildenv":   config.KeyBuildEnv,
	"output-dir": config.KeyOutputDir,
	"profile":    config.KeyProfiles,
}

func newApp() *app {
	return &app{probePlatform: probeDockerPlatform}
}

// NewRootCommand builds the tempo-recipe command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tempo-recipe",
		Short: "tempo-recipe derives build configurations for the tempo library",
		Long: `tempo-recipe evaluates a revision of the tempo package recipe: it resolves
options and settings, checks the C++ standard, looks up build tools and emits
the CMake toolchain variables the build needs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: <user config dir>/tempo-recipe/config.yaml)")
	pf.StringP("revision", "r", "", "recipe revision (default: latest)")
	pf.String("recipe-dir", ".", "recipe root holding the meta/ files")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	cmd.AddCommand(
		newRevisionsCmd(a),
		newInspectCmd(a),
		newMetadataCmd(a),
		newValidateCmd(a),
		newDepsCmd(a),
		newConfigureCmd(a),
		newBuildCmd(a),
		newPackageCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	a.v = config.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	a.log.Debug("configuration loaded", "revision", cfg.Revision, "recipe_dir", cfg.RecipeDir)
	return nil
}

func probeDockerPlatform(ctx context.Context) (string, error) {
	c, err := docker.NewClient()
	if err != nil {
		return "", err
	}
	defer c.Close()
	return c.Platform(ctx)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
