package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return NewSchema(
		Option{Name: "shared", Domain: BoolDomain(false), Default: Bool(true)},
		Option{Name: "build_type", Domain: EnumDomain(false, "Debug", "Release"), Default: String("Debug")},
		Option{Name: "docker_program", Domain: AnyDomain(true), Default: Null()},
		Option{Name: "docker_requires_sudo", Domain: BoolDomain(true), Default: Null()},
	)
}

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Bool(false), false},
		{Bool(true), true},
		{String(""), false},
		{String("False"), false},
		{String("none"), false},
		{String("0"), false},
		{String("OFF"), false},
		{String("/usr/bin/docker"), true},
		{String("linux/amd64"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Truthy(), "Truthy(%s)", tt.v)
	}
}

func TestValueOf(t *testing.T) {
	v, ok := ValueOf(20)
	require.True(t, ok)
	assert.Equal(t, String("20"), v)

	v, ok = ValueOf(true)
	require.True(t, ok)
	assert.Equal(t, Bool(true), v)

	v, ok = ValueOf(nil)
	require.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = ValueOf([]string{"x"})
	assert.False(t, ok)
}

func TestDomainCoerce(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		in     Value
		want   Value
		ok     bool
	}{
		{"bool from string", BoolDomain(false), String("True"), Bool(true), true},
		{"bool from lower string", BoolDomain(false), String("false"), Bool(false), true},
		{"bool rejects junk", BoolDomain(false), String("maybe"), Value{}, false},
		{"bool rejects null", BoolDomain(false), Null(), Value{}, false},
		{"nullable bool accepts None", BoolDomain(true), String("None"), Null(), true},
		{"enum member", EnumDomain(false, "17", "20"), String("20"), String("20"), true},
		{"enum non member", EnumDomain(false, "17", "20"), String("14"), Value{}, false},
		{"any keeps string", AnyDomain(true), String("podman"), String("podman"), true},
		{"any stringifies bool", AnyDomain(false), Bool(true), String("True"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := tt.domain.Coerce(tt.in)
			if !tt.ok {
				assert.NotEmpty(t, reason)
				return
			}
			require.Empty(t, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "[True, False, None]", BoolDomain(true).String())
	assert.Equal(t, "[17, 20]", EnumDomain(false, "17", "20").String())
	assert.Equal(t, "[ANY, None]", AnyDomain(true).String())
}

func TestSchemaValidate(t *testing.T) {
	require.NoError(t, testSchema().Validate())

	bad := NewSchema(Option{Name: "build_type", Domain: EnumDomain(false, "Debug"), Default: String("Release")})
	var optErr *InvalidOptionError
	require.ErrorAs(t, bad.Validate(), &optErr)
	assert.Equal(t, "build_type", optErr.Option)

	dup := NewSchema(
		Option{Name: "shared", Domain: BoolDomain(false), Default: Bool(true)},
		Option{Name: "shared", Domain: BoolDomain(false), Default: Bool(false)},
	)
	assert.Error(t, dup.Validate())

	nonCanonical := NewSchema(Option{Name: "shared", Domain: BoolDomain(false), Default: String("True")})
	assert.Error(t, nonCanonical.Validate())
}

func TestSchemaResolveDefaults(t *testing.T) {
	opts, err := testSchema().Resolve(nil)
	require.NoError(t, err)

	var names []string
	for name := range opts.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"shared", "build_type", "docker_program", "docker_requires_sudo"}, names)
	assert.Equal(t, Bool(true), opts.Get("shared"))
	assert.Equal(t, String("Debug"), opts.Get("build_type"))
	assert.True(t, opts.Get("docker_program").IsNull())
	assert.True(t, opts.Get("docker_requires_sudo").IsNull())
}

func TestSchemaResolveOverrides(t *testing.T) {
	raw := map[string]Value{
		"shared":               String("False"),
		"docker_requires_sudo": Bool(false),
	}
	opts, err := testSchema().Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, Bool(false), opts.Get("shared"))
	assert.Equal(t, Bool(false), opts.Get("docker_requires_sudo"))

	// input map is not retained
	raw["shared"] = Bool(true)
	assert.Equal(t, Bool(false), opts.Get("shared"))
}

func TestSchemaResolveRejects(t *testing.T) {
	_, err := testSchema().Resolve(map[string]Value{"use_sanitizer": Bool(true), "b": Bool(true)})
	var optErr *InvalidOptionError
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, "b", optErr.Option)

	_, err = testSchema().Resolve(map[string]Value{"build_type": String("RelWithDebInfo")})
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "build_type", optErr.Option)
}

func TestResolvedOptionsJSON(t *testing.T) {
	opts, err := testSchema().Resolve(map[string]Value{"docker_program": String("docker")})
	require.NoError(t, err)
	data, err := opts.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"shared":true,"build_type":"Debug","docker_program":"docker","docker_requires_sudo":null}`, string(data))

	var order []string
	for name, v := range opts.All() {
		order = append(order, name+"="+v.String())
	}
	assert.Equal(t, []string{"shared=True", "build_type=Debug", "docker_program=docker", "docker_requires_sudo=None"}, order)
}
