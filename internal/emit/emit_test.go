package emit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/msfrank/tempo-recipe/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *recipe.Configuration {
	t.Helper()
	rev := &recipe.Revision{
		ID:   "t",
		Name: "tempo",
		Metadata: recipe.InlineMetadata{
			Name: "tempo", Version: "0.0.4", License: "BSD-3-Clause",
			URL: "https://github.com/msfrank/tempo", Description: `Utility "libraries"`,
		},
		Schema: recipe.NewSchema(
			recipe.Option{Name: "docker_requires_sudo", Domain: recipe.BoolDomain(true), Default: recipe.Bool(false)},
			recipe.Option{Name: "docker_program", Domain: recipe.AnyDomain(true), Default: recipe.String(`C:\Program Files\docker.exe`)},
		),
		MinCppStd: "20",
		MetadataVars: []recipe.MetadataVar{
			{Key: recipe.MetaVersion, Variable: "TEMPO_PACKAGE_VERSION"},
			{Key: recipe.MetaDescription, Variable: "TEMPO_PACKAGE_DESCRIPTION", Cache: true},
		},
		Rules: []recipe.Rule{
			{Option: "docker_requires_sudo", When: recipe.NotNull, Variable: "DOCKER_REQUIRES_SUDO", Cache: true},
			{Option: "docker_program", When: recipe.Truthy, Variable: "DOCKER_PROGRAM", Cache: true},
		},
		PackageInfo: recipe.PackageInfo{CMakeFindMode: "none", BuildDirs: []string{"lib/cmake/tempo"}},
	}
	cfg, err := recipe.Configure(recipe.Inputs{Revision: rev, Settings: recipe.Settings{CppStd: "20"}})
	require.NoError(t, err)
	return cfg
}

func TestToolchain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Toolchain(&buf, testConfig(t)))

	want := `# tempo 0.0.4, recipe revision t
set(TEMPO_PACKAGE_VERSION "0.0.4")
set(TEMPO_PACKAGE_DESCRIPTION "Utility \"libraries\"" CACHE STRING "" FORCE)
set(DOCKER_REQUIRES_SUDO "OFF" CACHE BOOL "" FORCE)
set(DOCKER_PROGRAM "C:\\Program Files\\docker.exe" CACHE STRING "" FORCE)
`
	assert.Equal(t, want, buf.String())

	var again bytes.Buffer
	require.NoError(t, Toolchain(&again, testConfig(t)))
	assert.Equal(t, buf.String(), again.String())
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, testConfig(t)))

	var doc struct {
		Revision  string            `json:"revision"`
		Metadata  map[string]string `json:"metadata"`
		Options   map[string]any    `json:"options"`
		Toolchain []struct {
			Name  string `json:"name"`
			Value any    `json:"value"`
			Cache bool   `json:"cache"`
		} `json:"toolchain"`
		PackageInfo struct {
			CMakeFindMode string   `json:"cmake_find_mode"`
			BuildDirs     []string `json:"builddirs"`
		} `json:"package_info"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "t", doc.Revision)
	assert.Equal(t, "0.0.4", doc.Metadata["version"])
	assert.Equal(t, false, doc.Options["docker_requires_sudo"])
	require.Len(t, doc.Toolchain, 4)
	assert.Equal(t, "DOCKER_REQUIRES_SUDO", doc.Toolchain[2].Name)
	assert.Equal(t, false, doc.Toolchain[2].Value)
	assert.Equal(t, "none", doc.PackageInfo.CMakeFindMode)
	assert.Equal(t, []string{"lib/cmake/tempo"}, doc.PackageInfo.BuildDirs)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generators")
	paths, err := WriteAll(dir, testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, ToolchainFile), filepath.Join(dir, ReportFile)}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestToolchainGroupsPlainBeforeCached(t *testing.T) {
	var tc recipe.ToolchainConfig
	tc.Set("TEMPO_PACKAGE_LICENSE", recipe.String("BSD-3-Clause"), true)
	tc.Set("ANTLR_TOOL_JAR", recipe.String("/opt/antlr.jar"), false)
	tc.Set("ENABLE_SANITIZER", recipe.Bool(true), true)
	tc.Set("FLATBUFFERS_FLATC", recipe.String("/opt/flatc"), false)
	cfg := &recipe.Configuration{
		Revision:  "t",
		Metadata:  recipe.PackageMetadata{Name: "tempo", Version: "0.0.1"},
		Toolchain: &tc,
	}

	var buf bytes.Buffer
	require.NoError(t, Toolchain(&buf, cfg))
	want := `# tempo 0.0.1, recipe revision t
set(ANTLR_TOOL_JAR "/opt/antlr.jar")
set(FLATBUFFERS_FLATC "/opt/flatc")
set(TEMPO_PACKAGE_LICENSE "BSD-3-Clause" CACHE STRING "" FORCE)
set(ENABLE_SANITIZER "ON" CACHE BOOL "" FORCE)
`
	assert.Equal(t, want, buf.String())
}

func TestWriteAllLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	// a directory in the report's place makes the last step fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ReportFile, "occupied"), 0o755))

	_, err := WriteAll(dir, testConfig(t))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, ToolchainFile))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ReportFile, entries[0].Name())
}
