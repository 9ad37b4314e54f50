package recipe

import "fmt"

// UnsupportedStandardError reports that the active toolchain's C++ standard
// is below the revision's minimum, or cannot be determined at all.
type UnsupportedStandardError struct {
	Standard string // effective standard, empty when undetermined
	Minimum  string
	Reason   string
}

func (e *UnsupportedStandardError) Error() string {
	if e.Standard == "" {
		return fmt.Sprintf("unsupported C++ standard: minimum is %s: %s", e.Minimum, e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("unsupported C++ standard %s: minimum is %s: %s", e.Standard, e.Minimum, e.Reason)
	}
	return fmt.Sprintf("unsupported C++ standard %s: minimum is %s", e.Standard, e.Minimum)
}

// MissingMetadataError reports a metadata file that is absent or unreadable.
type MissingMetadataError struct {
	Key  string
	Path string
	Err  error
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("missing package metadata %q: %v", e.Key, e.Err)
}

func (e *MissingMetadataError) Unwrap() error { return e.Err }

// MalformedMetadataError reports a metadata file whose content is unusable.
type MalformedMetadataError struct {
	Key    string
	Path   string
	Reason string
}

func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("malformed package metadata %q in %s: %s", e.Key, e.Path, e.Reason)
}

// UnresolvedToolError reports an upstream dependency that does not expose
// the build-environment variable naming a required tool.
type UnresolvedToolError struct {
	Package  string
	Variable string
	Reason   string
	Err      error
}

func (e *UnresolvedToolError) Error() string {
	msg := fmt.Sprintf("unresolved tool %s from %s: %s", e.Variable, e.Package, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnresolvedToolError) Unwrap() error { return e.Err }

// InvalidOptionError reports an option that is unknown to the schema or
// whose value lies outside the option's domain.
type InvalidOptionError struct {
	Option string
	Value  string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid option %q: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("invalid option %s=%s: %s", e.Option, e.Value, e.Reason)
}
