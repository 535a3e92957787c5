// Package model defines the core data structures for dpswitch.
package model

import (
	"fmt"
	"slices"
)

// Direction is the placement of a display relative to another one.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// ValidDirections returns all valid direction values.
func ValidDirections() []Direction {
	return []Direction{DirectionLeft, DirectionRight, DirectionAbove, DirectionBelow}
}

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if slices.Contains(ValidDirections(), d) {
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q, must be one of: %v", s, ValidDirections())
}

// Flag returns the xrandr flag for the direction.
func (d Direction) Flag() string {
	switch d {
	case DirectionLeft:
		return "--left-of"
	case DirectionRight:
		return "--right-of"
	case DirectionAbove:
		return "--above"
	case DirectionBelow:
		return "--below"
	default:
		return ""
	}
}

// Display is a named video output and the port xrandr knows it by.
type Display struct {
	Name string `json:"name" yaml:"name"`
	Port string `json:"port" yaml:"port"`
}

// Position places a display next to a reference display.
type Position struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Reference Display   `json:"reference" yaml:"reference"`
}

// DisplaySetting is one display entry of a layout.
type DisplaySetting struct {
	Display    Display   `json:"display" yaml:"display"`
	Resolution string    `json:"resolution" yaml:"resolution"`
	Rate       string    `json:"rate" yaml:"rate"`
	Position   *Position `json:"position,omitempty" yaml:"position,omitempty"`
	Primary    bool      `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Port returns the port of the configured display.
func (s DisplaySetting) Port() string {
	return s.Display.Port
}

// Layout is a named, ordered set of display settings applied together.
type Layout struct {
	Name     string           `json:"name" yaml:"name"`
	Settings []DisplaySetting `json:"settings" yaml:"settings"`
}

// Ports returns the ports referenced by the layout, in order.
func (l Layout) Ports() []string {
	ports := make([]string, 0, len(l.Settings))
	for _, s := range l.Settings {
		ports = append(ports, s.Port())
	}
	return ports
}

// Config is a validated layout file.
// Layouts keep the order in which they appear in the file.
type Config struct {
	Displays map[string]Display
	Layouts  []Layout
}

// Layout returns the layout with the given name.
func (c *Config) Layout(name string) (Layout, bool) {
	if c == nil {
		return Layout{}, false
	}
	for _, l := range c.Layouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// LayoutNames returns the layout names in file order.
func (c *Config) LayoutNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Layouts))
	for i, l := range c.Layouts {
		names[i] = l.Name
	}
	return names
}

// DisplayNames returns the configured display names, sorted.
func (c *Config) DisplayNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Displays))
	for name := range c.Displays {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
