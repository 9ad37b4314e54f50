package recipe

import (
	"fmt"
	"strings"

	"github.com/msfrank/tempo-recipe/pkgs/gnu"
)

// Dependency is a package the recipe requires, pinned to a version and the
// channel it is published on.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Channel string `json:"channel"`
}

// String renders d as "name/version@channel".
func (d Dependency) String() string {
	s := d.Name + "/" + d.Version
	if d.Channel != "" {
		s += "@" + d.Channel
	}
	return s
}

// ParseDependency parses a "name/version[@channel]" reference.
func ParseDependency(ref string) (Dependency, error) {
	rest, channel, _ := strings.Cut(ref, "@")
	name, version, ok := strings.Cut(rest, "/")
	if !ok || name == "" || version == "" {
		return Dependency{}, fmt.Errorf("invalid dependency reference %q: want name/version[@channel]", ref)
	}
	if strings.Contains(ref, "@") && channel == "" {
		return Dependency{}, fmt.Errorf("invalid dependency reference %q: empty channel", ref)
	}
	return Dependency{Name: name, Version: version, Channel: channel}, nil
}

// MustParseDependencies parses refs and panics on error. It is meant for
// fixed tables.
func MustParseDependencies(refs ...string) []Dependency {
	deps := make([]Dependency, 0, len(refs))
	for _, ref := range refs {
		d, err := ParseDependency(ref)
		if err != nil {
			panic(err)
		}
		deps = append(deps, d)
	}
	return deps
}

// ChangeKind classifies a dependency difference between two revisions.
type ChangeKind string

const (
	Added       ChangeKind = "added"
	Removed     ChangeKind = "removed"
	Upgraded    ChangeKind = "upgraded"
	Downgraded  ChangeKind = "downgraded"
	Rechanneled ChangeKind = "rechanneled"
)

// Change is one difference reported by DiffRequires.
//
// From and To hold versions for upgrades and downgrades, or full references
// when the channel changed too. Rechanneled changes hold channels.
type Change struct {
	Kind ChangeKind
	Name string
	From string // empty for Added
	To   string // empty for Removed
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s", c.To)
	case Removed:
		return fmt.Sprintf("- %s", c.From)
	}
	return fmt.Sprintf("~ %s: %s -> %s (%s)", c.Name, c.From, c.To, c.Kind)
}

// DiffRequires lists what changed from a to b. Changes follow the order of
// a, with additions from b appended in b's order.
func DiffRequires(a, b []Dependency) []Change {
	inB := make(map[string]Dependency, len(b))
	for _, d := range b {
		inB[d.Name] = d
	}
	inA := make(map[string]bool, len(a))

	var changes []Change
	for _, from := range a {
		inA[from.Name] = true
		to, ok := inB[from.Name]
		if !ok {
			changes = append(changes, Change{Kind: Removed, Name: from.Name, From: from.String()})
			continue
		}
		// a version change that also moves channel reports full references
		fromRef, toRef := from.Version, to.Version
		if from.Channel != to.Channel {
			fromRef, toRef = from.String(), to.String()
		}
		switch c := gnu.Compare(from.Version, to.Version); {
		case c < 0:
			changes = append(changes, Change{Kind: Upgraded, Name: from.Name, From: fromRef, To: toRef})
		case c > 0:
			changes = append(changes, Change{Kind: Downgraded, Name: from.Name, From: fromRef, To: toRef})
		case from.Channel != to.Channel:
			changes = append(changes, Change{Kind: Rechanneled, Name: from.Name, From: from.Channel, To: to.Channel})
		}
	}
	for _, to := range b {
		if !inA[to.Name] {
			changes = append(changes, Change{Kind: Added, Name: to.Name, To: to.String()})
		}
	}
	return changes
}
