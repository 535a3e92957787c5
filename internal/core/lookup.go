// Package core provides layout lookup and filtering.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/dpswitch/internal/model"
)

// LookupByName finds a layout by its exact name.
// Returns nil if not found.
func LookupByName(layouts []model.Layout, name string) *model.Layout {
	for i := range layouts {
		if layouts[i].Name == name {
			return &layouts[i]
		}
	}
	return nil
}

// LookupByIndex finds a layout by its position in the file (1-based).
// Returns nil if index is out of bounds.
func LookupByIndex(layouts []model.Layout, index int) *model.Layout {
	idx := index - 1
	if idx < 0 || idx >= len(layouts) {
		return nil
	}
	return &layouts[idx]
}

// LookupByPrefix finds the only layout whose name starts with prefix,
// ignoring case. Returns nil when none or several match.
func LookupByPrefix(layouts []model.Layout, prefix string) *model.Layout {
	if prefix == "" {
		return nil
	}
	prefix = strings.ToLower(prefix)

	var found *model.Layout
	for i := range layouts {
		if !strings.HasPrefix(strings.ToLower(layouts[i].Name), prefix) {
			continue
		}
		if found != nil {
			return nil
		}
		found = &layouts[i]
	}
	return found
}

// Resolve picks a layout the way a user would name it on the command line:
// an exact name wins, then a 1-based index, then a unique prefix.
func Resolve(layouts []model.Layout, arg string) (*model.Layout, error) {
	if l := LookupByName(layouts, arg); l != nil {
		return l, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if l := LookupByIndex(layouts, n); l != nil {
			return l, nil
		}
		return nil, fmt.Errorf("layout index %d out of range (1-%d)", n, len(layouts))
	}
	if l := LookupByPrefix(layouts, arg); l != nil {
		return l, nil
	}

	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	return nil, fmt.Errorf("layout %q not found (available: %s)", arg, strings.Join(names, ", "))
}
