package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMeta(t *testing.T, dir string, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0o644))
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	writeMeta(t, dir, map[string]string{
		"version":     "1.2.3\n",
		"license":     "BSD-3-Clause",
		"url":         "https://example.test",
		"description": "demo\n",
	})

	meta, err := LoadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, PackageMetadata{
		Version:     "1.2.3",
		License:     "BSD-3-Clause",
		URL:         "https://example.test",
		Description: "demo",
	}, meta)
}

func TestLoadMetadataMissingInLookupOrder(t *testing.T) {
	tests := []struct {
		name    string
		present map[string]string
		wantKey string
	}{
		{"empty dir", nil, "version"},
		{"only version", map[string]string{"version": "1.0.0"}, "license"},
		{"no url", map[string]string{"version": "1.0.0", "license": "MIT", "description": "x"}, "url"},
		{"no description", map[string]string{"version": "1.0.0", "license": "MIT", "url": "https://a.b"}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeMeta(t, dir, tt.present)

			_, err := LoadMetadata(dir)
			var missing *MissingMetadataError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantKey, missing.Key)
			assert.Equal(t, filepath.Join(dir, tt.wantKey), missing.Path)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestLoadMetadataMalformed(t *testing.T) {
	base := map[string]string{
		"version":     "1.2.3",
		"license":     "BSD-3-Clause",
		"url":         "https://example.test",
		"description": "demo",
	}
	tests := []struct {
		key, value string
	}{
		{"version", ""},
		{"version", "one.two"},
		{"url", "example.test/no-scheme"},
		{"license", "MIT\nApache-2.0"},
		{"description", "   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			dir := t.TempDir()
			writeMeta(t, dir, base)
			writeMeta(t, dir, map[string]string{tt.key: tt.value})

			_, err := LoadMetadata(dir)
			var malformed *MalformedMetadataError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.key, malformed.Key)
		})
	}
}

func TestLoadMetadataAcceptsPrefixedVersion(t *testing.T) {
	dir := t.TempDir()
	writeMeta(t, dir, map[string]string{
		"version":     "v0.1.0-rc.1",
		"license":     "BSD-3-Clause",
		"url":         "https://example.test",
		"description": "demo",
	})
	meta, err := LoadMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0-rc.1", meta.Version)
}

type countingSource struct {
	calls int
	meta  PackageMetadata
}

func (c *countingSource) Load(string) (PackageMetadata, error) {
	c.calls++
	return c.meta, nil
}

func TestMemoMetadata(t *testing.T) {
	src := &countingSource{meta: PackageMetadata{Name: "tempo", Version: "0.0.1"}}
	load := MemoMetadata(src, "")

	for range 3 {
		meta, err := load()
		require.NoError(t, err)
		assert.Equal(t, "0.0.1", meta.Version)
	}
	assert.Equal(t, 1, src.calls)
}

func TestFileMetadataSetsName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "meta")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeMeta(t, dir, map[string]string{
		"version":     "0.1.0",
		"license":     "BSD-3-Clause",
		"url":         "https://example.test",
		"description": "demo",
	})

	meta, err := FileMetadata{Name: "tempo", Dir: "meta"}.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "tempo", meta.Name)
	assert.Equal(t, "0.1.0", meta.Version)
}

func TestConfigureUsesSharedMetadataLoader(t *testing.T) {
	src := &countingSource{meta: PackageMetadata{Name: "tempo", Version: "0.0.9"}}
	load := MemoMetadata(src, "")

	for range 2 {
		cfg, err := Configure(Inputs{
			Revision: testRevision(),
			Metadata: load,
			Settings: Settings{CppStd: "20"},
			BuildEnv: testEnv,
		})
		require.NoError(t, err)
		assert.Equal(t, "0.0.9", cfg.Metadata.Version)
	}
	meta, err := load()
	require.NoError(t, err)
	assert.Equal(t, "tempo", meta.Name)
	assert.Equal(t, 1, src.calls)
}
