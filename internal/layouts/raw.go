package layouts

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Format is the encoding of a layout file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// rawDisplay is a display entry as written in the file.
type rawDisplay struct {
	Port string `json:"port" yaml:"port"`
}

// rawSetting is a display setting as written in the file.
// Names are unresolved at this point.
type rawSetting struct {
	Display    string   `json:"display" yaml:"display"`
	Resolution string   `json:"resolution" yaml:"resolution"`
	Rate       string   `json:"rate" yaml:"rate"`
	Position   []string `json:"position,omitempty" yaml:"position,omitempty"`
	Primary    *bool    `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// rawLayout keeps the settings of a layout together with where they came from.
// single is set when the file held one object instead of a list.
type rawLayout struct {
	Name     string
	Settings []rawSetting
	single   bool
}

// rawFile is the decoded, not yet validated, layout file.
type rawFile struct {
	Displays map[string]rawDisplay
	Layouts  []rawLayout
}

var settingKeys = map[string]bool{
	"display":    true,
	"resolution": true,
	"rate":       true,
	"position":   true,
	"primary":    true,
}

var displayKeys = map[string]bool{
	"port": true,
}

// settingField returns the dotted path used in errors for a setting.
func (l rawLayout) settingField(i int) string {
	if l.single {
		return "configs." + l.Name
	}
	return "configs." + l.Name + "[" + strconv.Itoa(i) + "]"
}
