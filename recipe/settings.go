package recipe

import (
	"fmt"
	"sort"
)

// Setting keys understood by the recipe.
const (
	SettingOS              = "os"
	SettingArch            = "arch"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingCppStd          = "compiler.cppstd"
	SettingBuildType       = "build_type"
)

// Settings describes the host toolchain a build runs with.
type Settings struct {
	OS              string `json:"os,omitempty"`
	Arch            string `json:"arch,omitempty"`
	Compiler        string `json:"compiler,omitempty"`
	CompilerVersion string `json:"compiler.version,omitempty"`
	CppStd          string `json:"compiler.cppstd,omitempty"`
	BuildType       string `json:"build_type,omitempty"`
}

// ParseSettings builds Settings from key/value pairs. Unknown keys are an
// error.
func ParseSettings(kv map[string]string) (Settings, error) {
	var s Settings
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, kv[k]); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

// Set assigns one setting by key.
func (s *Settings) Set(key, val string) error {
	switch key {
	case SettingOS:
		s.OS = val
	case SettingArch:
		s.Arch = val
	case SettingCompiler:
		s.Compiler = val
	case SettingCompilerVersion:
		s.CompilerVersion = val
	case SettingCppStd:
		s.CppStd = val
	case SettingBuildType:
		s.BuildType = val
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Merge returns s with every non-empty field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Settings{
		OS:              pick(s.OS, o.OS),
		Arch:            pick(s.Arch, o.Arch),
		Compiler:        pick(s.Compiler, o.Compiler),
		CompilerVersion: pick(s.CompilerVersion, o.CompilerVersion),
		CppStd:          pick(s.CppStd, o.CppStd),
		BuildType:       pick(s.BuildType, o.BuildType),
	}
}
