package core

import (
	"slices"
	"strings"

	"github.com/jmylchreest/dpswitch/internal/model"
)

// FilterOptions specifies criteria for filtering layouts.
type FilterOptions struct {
	Search    string   // Case-insensitive substring of the layout, display or port name
	Connected []string // When non-nil, only layouts whose ports are all in this set
	Limit     int      // Maximum results (0=unlimited)
}

// Filter returns the layouts matching opts, keeping file order.
func Filter(layouts []model.Layout, opts FilterOptions) []model.Layout {
	result := make([]model.Layout, 0, len(layouts))
	term := strings.ToLower(opts.Search)

	for _, l := range layouts {
		if term != "" && !matches(l, term) {
			continue
		}
		if opts.Connected != nil && !Available(l, opts.Connected) {
			continue
		}

		result = append(result, l)
		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
	}

	return result
}

// Available reports whether every display the layout drives is connected.
func Available(l model.Layout, connected []string) bool {
	for _, port := range l.Ports() {
		if !slices.Contains(connected, port) {
			return false
		}
	}
	return true
}

func matches(l model.Layout, term string) bool {
	if strings.Contains(strings.ToLower(l.Name), term) {
		return true
	}
	for _, s := range l.Settings {
		if strings.Contains(strings.ToLower(s.Display.Name), term) ||
			strings.Contains(strings.ToLower(s.Port()), term) {
			return true
		}
	}
	return false
}
