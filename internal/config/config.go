// Package config resolves the tempo-recipe settings from flags, the
// environment and an optional config.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/msfrank/tempo-recipe/internal/env"
	"github.com/msfrank/tempo-recipe/internal/publish"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// EnvPrefix prefixes every environment override, e.g.
	// TEMPO_RECIPE_REVISION.
	EnvPrefix = "TEMPO_RECIPE"

	KeyRevision  = "revision"
	KeyRecipeDir = "recipe_dir"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyBuildEnv  = "buildenv"
	KeyOutputDir = "output_dir"
	KeyProfiles  = "profiles"
	KeyPublish   = "publish"
)

// publishKeys are listed with empty defaults so that their
// TEMPO_RECIPE_PUBLISH_* variables are seen by Unmarshal.
var publishKeys = []string{"endpoint", "access_key", "secret_key", "region", "bucket", "prefix"}

// Config is the resolved tool configuration.
type Config struct {
	Revision  string   `mapstructure:"revision"`
	RecipeDir string   `mapstructure:"recipe_dir"`
	LogLevel  string   `mapstructure:"log_level"`
	LogFormat string   `mapstructure:"log_format"`
	BuildEnv  string   `mapstructure:"buildenv"`
	OutputDir string   `mapstructure:"output_dir"`
	Profiles  []string `mapstructure:"profiles"`

	Publish publish.Config `mapstructure:"publish"`
}

// New returns a viper instance carrying the defaults and environment
// bindings. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRevision, "")
	v.SetDefault(KeyRecipeDir, ".")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyBuildEnv, "")
	v.SetDefault(KeyOutputDir, "build")
	v.SetDefault(KeyProfiles, []string{})
	for _, k := range publishKeys {
		v.SetDefault(KeyPublish+"."+k, "")
	}
	v.SetDefault(KeyPublish+".region", "us-east-1")
	v.SetDefault(KeyPublish+".use_ssl", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file, or config.yaml from the user config directory when file
// is empty, and decodes the result. Only an explicitly named file must
// exist.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if dir, err := env.ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
