package buildsys

import "context"

// BuildSystem captures the lifecycle shared by build helpers.
type BuildSystem interface {
	// UsePrefix exposes an installed dependency prefix to the build.
	UsePrefix(dir string)

	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
