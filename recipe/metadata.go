package recipe

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// Metadata keys, in the order they are looked up.
const (
	MetaVersion     = "version"
	MetaLicense     = "license"
	MetaURL         = "url"
	MetaDescription = "description"
)

var metadataKeys = []string{MetaVersion, MetaLicense, MetaURL, MetaDescription}

// PackageMetadata is the identity of the package being built.
type PackageMetadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	License     string `json:"license"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Field returns the metadata value stored under key.
func (m PackageMetadata) Field(key string) string {
	switch key {
	case MetaVersion:
		return m.Version
	case MetaLicense:
		return m.License
	case MetaURL:
		return m.URL
	case MetaDescription:
		return m.Description
	}
	return ""
}

// MetadataSource yields the package metadata of a revision. root is the
// recipe directory; sources that do not read files ignore it.
type MetadataSource interface {
	Load(root string) (PackageMetadata, error)
}

// InlineMetadata is metadata written into the recipe itself.
type InlineMetadata PackageMetadata

func (m InlineMetadata) Load(string) (PackageMetadata, error) {
	return PackageMetadata(m), nil
}

// FileMetadata loads metadata from key files in Dir, relative to the recipe
// root. Name is not file-backed.
type FileMetadata struct {
	Name string
	Dir  string
}

func (m FileMetadata) Load(root string) (PackageMetadata, error) {
	meta, err := LoadMetadata(filepath.Join(root, m.Dir))
	if err != nil {
		return PackageMetadata{}, err
	}
	meta.Name = m.Name
	return meta, nil
}

// LoadMetadata reads version, license, url and description from same-named
// files in dir. The first missing key fails with MissingMetadataError.
func LoadMetadata(dir string) (PackageMetadata, error) {
	var meta PackageMetadata
	for _, key := range metadataKeys {
		path := filepath.Join(dir, key)
		data, err := os.ReadFile(path)
		if err != nil {
			return PackageMetadata{}, &MissingMetadataError{Key: key, Path: path, Err: err}
		}
		val := strings.TrimSpace(string(data))
		if reason := checkMetadata(key, val); reason != "" {
			return PackageMetadata{}, &MalformedMetadataError{Key: key, Path: path, Reason: reason}
		}
		switch key {
		case MetaVersion:
			meta.Version = val
		case MetaLicense:
			meta.License = val
		case MetaURL:
			meta.URL = val
		case MetaDescription:
			meta.Description = val
		}
	}
	return meta, nil
}

func checkMetadata(key, val string) string {
	if val == "" {
		return "file is empty"
	}
	switch key {
	case MetaVersion:
		if !semver.IsValid("v" + strings.TrimPrefix(val, "v")) {
			return "not a semantic version"
		}
	case MetaURL:
		u, err := url.Parse(val)
		if err != nil {
			return err.Error()
		}
		if u.Scheme == "" || u.Host == "" {
			return "url needs a scheme and host"
		}
	case MetaLicense:
		if strings.ContainsRune(val, '\n') {
			return "license must be a single line"
		}
	}
	return ""
}

// MemoMetadata wraps src so it is loaded at most once.
func MemoMetadata(src MetadataSource, root string) func() (PackageMetadata, error) {
	return sync.OnceValues(func() (PackageMetadata, error) {
		return src.Load(root)
	})
}
