package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMinCppStd(t *testing.T) {
	tests := []struct {
		std string
		ok  bool
	}{
		{"20", true},
		{"gnu20", true},
		{"23", true},
		{"26", true},
		{"17", false},
		{"gnu17", false},
		{"14", false},
		{"11", false},
		{"03", false},
		{"98", false},
		{"", false},
		{"c++20", false},
	}
	for _, tt := range tests {
		t.Run(tt.std, func(t *testing.T) {
			err := CheckMinCppStd(tt.std, "20")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var stdErr *UnsupportedStandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, "20", stdErr.Minimum)
		})
	}
}

func TestCheckMinCppStdOrdersLegacyStandards(t *testing.T) {
	assert.NoError(t, CheckMinCppStd("11", "98"))
	assert.NoError(t, CheckMinCppStd("03", "98"))
	assert.Error(t, CheckMinCppStd("98", "03"))
}

func TestDefaultCppStd(t *testing.T) {
	tests := []struct {
		compiler, version, want string
	}{
		{"gcc", "5.4", "gnu98"},
		{"gcc", "9", "gnu14"},
		{"gcc", "13.2", "gnu17"},
		{"clang", "15", "gnu14"},
		{"clang", "18.1.0", "gnu17"},
		{"apple-clang", "15", "gnu98"},
		{"msvc", "193", "14"},
		{"intel-cc", "2024", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultCppStd(tt.compiler, tt.version), "%s %s", tt.compiler, tt.version)
	}
}

func TestEffectiveCppStd(t *testing.T) {
	schema := NewSchema(Option{Name: SettingCppStd, Domain: EnumDomain(false, "17", "20"), Default: String("20")})
	withOption, err := schema.Resolve(nil)
	require.NoError(t, err)
	without, err := NewSchema().Resolve(nil)
	require.NoError(t, err)

	gcc13 := Settings{Compiler: "gcc", CompilerVersion: "13"}

	assert.Equal(t, "23", EffectiveCppStd(Settings{CppStd: "23"}, withOption))
	assert.Equal(t, "20", EffectiveCppStd(gcc13, withOption))
	assert.Equal(t, "gnu17", EffectiveCppStd(gcc13, without))
	assert.Equal(t, "", EffectiveCppStd(Settings{}, without))
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings(map[string]string{
		"os":               "Linux",
		"compiler":         "gcc",
		"compiler.version": "13",
		"compiler.cppstd":  "20",
	})
	require.NoError(t, err)
	assert.Equal(t, Settings{OS: "Linux", Compiler: "gcc", CompilerVersion: "13", CppStd: "20"}, s)

	_, err = ParseSettings(map[string]string{"compiler.libcxx": "libstdc++11"})
	assert.Error(t, err)

	merged := s.Merge(Settings{CppStd: "23", Arch: "x86_64"})
	assert.Equal(t, "23", merged.CppStd)
	assert.Equal(t, "x86_64", merged.Arch)
	assert.Equal(t, "gcc", merged.Compiler)
}
