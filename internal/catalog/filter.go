package catalog

import (
	"fmt"
	"go/token"
	"strings"
)

// Mode selects how a filter term is matched against member names.
type Mode string

const (
	ModeContains   Mode = "contains"
	ModeStartsWith Mode = "startswith"
)

// ParseMode converts user input into a Mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "contains":
		return ModeContains, nil
	case "startswith", "starts-with", "prefix":
		return ModeStartsWith, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", raw)
	}
}

// Query describes a filter over a flat member list.
type Query struct {
	Term           string `json:"term" yaml:"term"`
	Mode           Mode   `json:"mode" yaml:"mode"`
	IncludePrivate bool   `json:"includePrivate" yaml:"includePrivate"`
}

// IsPrivate reports whether m is hidden unless private members are requested.
// Underscore names are always private; other names are private when not
// exported, except imported packages whose names are lower case by convention.
func IsPrivate(m Member) bool {
	if strings.HasPrefix(m.Name, "_") {
		return true
	}
	if m.Category == CategoryModules {
		return false
	}
	return !token.IsExported(m.Name)
}

// Filter applies q to flat and returns the surviving members together with
// the catalog rebuilt from them. An empty result is valid. The result never
// shares storage with flat.
func Filter(flat FlatList, q Query) (FlatList, Catalog) {
	visible := make(FlatList, 0, len(flat))
	for _, m := range flat {
		if !q.IncludePrivate && IsPrivate(m) {
			continue
		}
		visible = append(visible, m)
	}

	if q.Term == "" {
		return visible, FromFlat(visible)
	}

	match := matchFunc(q.Mode, strings.ToLower(q.Term))
	out := make(FlatList, 0, len(visible))
	for _, m := range visible {
		if match(strings.ToLower(m.Name)) {
			out = append(out, m)
		}
	}
	return out, FromFlat(out)
}

func matchFunc(mode Mode, term string) func(string) bool {
	if mode == ModeStartsWith {
		return func(name string) bool { return strings.HasPrefix(name, term) }
	}
	return func(name string) bool { return strings.Contains(name, term) }
}
