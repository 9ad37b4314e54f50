// Package options collects user-supplied recipe options and settings from
// profile files and command-line assignments.
package options

import (
	"fmt"
	"maps"
	"strings"

	"github.com/msfrank/tempo-recipe/recipe"
)

// Profile is one layer of user input.
type Profile struct {
	Options  map[string]recipe.Value
	Settings map[string]string
}

// NewProfile returns an empty profile.
func NewProfile() *Profile {
	return &Profile{
		Options:  make(map[string]recipe.Value),
		Settings: make(map[string]string),
	}
}

// ParseAssignments parses "key=value" pairs. Later pairs override earlier
// ones.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: want key=value", pair)
		}
		out[key] = strings.TrimSpace(val)
	}
	return out, nil
}

// FromAssignments builds a profile from -o and -s style assignments.
// Option values stay strings; the schema coerces them.
func FromAssignments(opts, settings []string) (*Profile, error) {
	p := NewProfile()
	o, err := ParseAssignments(opts)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	for k, v := range o {
		p.Options[k] = recipe.String(v)
	}
	s, err := ParseAssignments(settings)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	maps.Copy(p.Settings, s)
	return p, nil
}

// Merge layers profiles; later profiles win key by key. Nil profiles are
// skipped.
func Merge(profiles ...*Profile) *Profile {
	out := NewProfile()
	for _, p := range profiles {
		if p == nil {
			continue
		}
		maps.Copy(out.Options, p.Options)
		maps.Copy(out.Settings, p.Settings)
	}
	return out
}

// RecipeSettings converts the settings layer into recipe.Settings.
func (p *Profile) RecipeSettings() (recipe.Settings, error) {
	return recipe.ParseSettings(p.Settings)
}

// set stores a decoded scalar under section.
func (p *Profile) set(section, key string, raw any) error {
	v, ok := recipe.ValueOf(raw)
	if !ok {
		return fmt.Errorf("%s.%s: unsupported value of type %T", section, key, raw)
	}
	switch section {
	case "options":
		p.Options[key] = v
	case "settings":
		if !v.IsNull() {
			p.Settings[key] = v.String()
		}
	}
	return nil
}
