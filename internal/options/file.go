package options

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tidwall/jsonc"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// profileDoc is the document shape shared by the YAML and JSON formats.
type profileDoc struct {
	Options  map[string]any `yaml:"options" json:"options"`
	Settings map[string]any `yaml:"settings" json:"settings"`
}

// LoadFile reads a profile. The format follows the extension: .yaml/.yml,
// .json/.jsonc (comments allowed) or .hcl.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a profile whose format is chosen from name's extension.
func Parse(name string, data []byte) (*Profile, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		var doc profileDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return fromDoc(doc)
	case ".json", ".jsonc":
		var doc profileDoc
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, err
		}
		return fromDoc(doc)
	case ".hcl":
		return parseHCL(name, data)
	default:
		return nil, fmt.Errorf("unsupported profile format %q", ext)
	}
}

func fromDoc(doc profileDoc) (*Profile, error) {
	p := NewProfile()
	for _, section := range []struct {
		name string
		kv   map[string]any
	}{{"options", doc.Options}, {"settings", doc.Settings}} {
		for _, k := range sortedKeys(section.kv) {
			if err := p.set(section.name, k, section.kv[k]); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var hclSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "options"},
		{Name: "settings"},
	},
}

// parseHCL reads
//
//	options = {
//	  docker_program    = "/usr/bin/docker"
//	  "compiler.cppstd" = "20"
//	}
//	settings = { compiler = "gcc" }
//
// Keys containing dots must be quoted.
func parseHCL(name string, data []byte) (*Profile, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, diags
	}
	content, diags := file.Body.Content(hclSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	p := NewProfile()
	for _, section := range []string{"options", "settings"} {
		attr, ok := content.Attributes[section]
		if !ok {
			continue
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() {
			continue
		}
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return nil, fmt.Errorf("%s: %s must be an object", attr.NameRange, section)
		}
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			raw, err := ctyScalar(v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", section, k.AsString(), err)
			}
			if err := p.set(section, k.AsString(), raw); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func ctyScalar(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	switch v.Type() {
	case cty.Bool:
		return v.True(), nil
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	}
	return nil, fmt.Errorf("unsupported type %s", v.Type().FriendlyName())
}
