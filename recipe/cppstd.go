package recipe

import (
	"strconv"
	"strings"
)

// stdYear maps a C++ standard ("17", "gnu20", "98") to a comparable year.
func stdYear(std string) (int, bool) {
	s := strings.TrimPrefix(std, "gnu")
	if len(s) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch s {
	case "98":
		return 1998, true
	case "03":
		return 2003, true
	}
	return 2000 + n, true
}

// CheckMinCppStd fails with UnsupportedStandardError unless std is at least
// min.
func CheckMinCppStd(std, min string) error {
	want, ok := stdYear(min)
	if !ok {
		return &UnsupportedStandardError{Standard: std, Minimum: min, Reason: "minimum is not a C++ standard"}
	}
	if std == "" {
		return &UnsupportedStandardError{Minimum: min, Reason: "standard is not declared"}
	}
	got, ok := stdYear(std)
	if !ok {
		return &UnsupportedStandardError{Standard: std, Minimum: min, Reason: "not a C++ standard"}
	}
	if got < want {
		return &UnsupportedStandardError{Standard: std, Minimum: min}
	}
	return nil
}

// DefaultCppStd returns the standard a compiler uses when none is requested.
// It returns "" when the compiler is unknown.
func DefaultCppStd(compiler, version string) string {
	major := 0
	if v, _, _ := strings.Cut(version, "."); v != "" {
		major, _ = strconv.Atoi(v)
	}
	switch compiler {
	case "gcc":
		switch {
		case major < 6:
			return "gnu98"
		case major < 11:
			return "gnu14"
		}
		return "gnu17"
	case "clang":
		switch {
		case major < 6:
			return "gnu98"
		case major < 16:
			return "gnu14"
		}
		return "gnu17"
	case "apple-clang":
		return "gnu98"
	case "msvc":
		return "14"
	}
	return ""
}

// EffectiveCppStd picks the standard the build will use: the setting, then
// the compiler.cppstd option when the revision declares one, then the
// compiler default.
func EffectiveCppStd(s Settings, opts ResolvedOptions) string {
	if s.CppStd != "" {
		return s.CppStd
	}
	if v, ok := opts.Get(SettingCppStd).AsString(); ok && v != "" {
		return v
	}
	return DefaultCppStd(s.Compiler, s.CompilerVersion)
}
