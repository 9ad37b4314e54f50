package cmake

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/msfrank/tempo-recipe/pkgs/buildsys"
	"github.com/msfrank/tempo-recipe/recipe"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake wraps common CMake build steps with chainable configuration.
type CMake struct {
	SourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	toolchain  string
	Defines    map[string]defineValue
	env        map[string]string

	Stdout, Stderr io.Writer
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a CMake helper for sourceDir that builds into buildDir.
func New(sourceDir, buildDir string) *CMake {
	if buildDir == "" {
		buildDir = filepath.Join(sourceDir, "build")
	}
	return &CMake{
		SourceDir: sourceDir,
		buildDir:  buildDir,
		Defines:   map[string]defineValue{},
		env:       map[string]string{},
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

func (c *CMake) Source(dir string) {
	c.SourceDir = dir
}

func (c *CMake) InstallDir(dir string) {
	c.installDir = dir
}

// BuildDir returns the cmake binary directory.
func (c *CMake) BuildDir() string {
	return c.buildDir
}

func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

func (c *CMake) Toolchain(path string) *CMake {
	c.toolchain = path
	return c
}

func (c *CMake) Define(key, value string) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	c.Defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

func (c *CMake) DefineBool(key string, value bool) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	if value {
		c.Defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return c
	}
	c.Defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return c
}

// ApplyToolchain turns every derived variable into a typed -D definition.
// Booleans become BOOL defines, everything else STRING.
func (c *CMake) ApplyToolchain(tc *recipe.ToolchainConfig) *CMake {
	for _, v := range tc.Variables() {
		if b, ok := v.Value.AsBool(); ok {
			c.DefineBool(v.Name, b)
			continue
		}
		c.Define(v.Name, v.Value.String())
	}
	return c
}

// Env sets a variable for the cmake child processes only.
func (c *CMake) Env(key, value string) {
	if c.env == nil {
		c.env = map[string]string{}
	}
	c.env[key] = value
}

// UsePrefix adds an installed dependency's prefix to the CMake and
// compiler search paths.
func (c *CMake) UsePrefix(dir string) {
	includeDir := filepath.Join(dir, "include")
	libDir := filepath.Join(dir, "lib")
	pkgconfigDir := filepath.Join(libDir, "pkgconfig")

	if exists(pkgconfigDir) {
		c.prependEnv("PKG_CONFIG_PATH", pkgconfigDir)
	}
	if exists(dir) {
		c.prependEnv("CMAKE_PREFIX_PATH", dir)
	}
	if exists(includeDir) {
		c.prependEnv("CMAKE_INCLUDE_PATH", includeDir)
	}
	if exists(libDir) {
		c.prependEnv("CMAKE_LIBRARY_PATH", libDir)
	}

	if runtime.GOOS == "windows" {
		if exists(includeDir) {
			c.prependEnv("INCLUDE", includeDir)
		}
		if exists(libDir) {
			c.prependEnv("LIB", libDir)
		}
		return
	}
	if exists(includeDir) {
		c.appendFlag("CPPFLAGS", "-I"+includeDir)
	}
	if exists(libDir) {
		c.appendFlag("LDFLAGS", "-L"+libDir)
	}
}

func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0755); err != nil {
		return err
	}
	return c.run(ctx, c.configureArgs(args))
}

func (c *CMake) configureArgs(args []string) []string {
	cmakeArgs := []string{"-S", c.SourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.toolchain)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	return append(cmakeArgs, args...)
}

func (c *CMake) Build(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	cmdArgs = append(cmdArgs, args...)
	return c.run(ctx, cmdArgs)
}

func (c *CMake) Install(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--install", c.buildDir}
	if c.installDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", c.installDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return c.run(ctx, cmdArgs)
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	if len(c.Defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Defines))
	for k := range c.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.Defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}

func (c *CMake) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "cmake", args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if len(c.env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.env)
	}
	return cmd.Run()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

// lookupEnv prefers a value already set on the helper over the process env.
func (c *CMake) lookupEnv(key string) string {
	if v, ok := c.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

func (c *CMake) prependEnv(key, value string) {
	current := c.lookupEnv(key)
	if current == "" {
		c.Env(key, value)
		return
	}
	c.Env(key, value+string(os.PathListSeparator)+current)
}

func (c *CMake) appendFlag(key, flag string) {
	current := c.lookupEnv(key)
	if current == "" {
		c.Env(key, flag)
		return
	}
	c.Env(key, strings.TrimSpace(current+" "+flag))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
