// Package layouts loads the display layout file and resolves display names to ports.
package layouts

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jmylchreest/dpswitch/internal/model"
)

// DefaultPath is the layout file read when no path is given.
const DefaultPath = "/etc/dpswitch/config.json"

var (
	resolutionRegex = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)
	rateRegex       = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// Load reads and validates the layout file at path.
// Errors are *ReadError, *ParseError or *ReferenceError.
func Load(path string) (*model.Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	cfg, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

// Parse decodes and validates layout file content.
func Parse(data []byte, format Format) (*model.Config, error) {
	var (
		raw *rawFile
		err error
	)
	switch format {
	case FormatYAML:
		raw, err = decodeYAML(data)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	return build(raw)
}

// build validates a decoded file and resolves every display reference.
func build(raw *rawFile) (*model.Config, error) {
	cfg := &model.Config{
		Displays: make(map[string]model.Display, len(raw.Displays)),
	}

	names := make([]string, 0, len(raw.Displays))
	for name := range raw.Displays {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		port := strings.TrimSpace(raw.Displays[name].Port)
		if port == "" {
			return nil, parseError("displays."+name+".port", errors.New("port is required"))
		}
		cfg.Displays[name] = model.Display{Name: name, Port: port}
	}

	seen := make(map[string]bool, len(raw.Layouts))
	for _, rl := range raw.Layouts {
		if seen[rl.Name] {
			return nil, parseError("configs."+rl.Name, errors.New("duplicate layout name"))
		}
		seen[rl.Name] = true

		if len(rl.Settings) == 0 {
			return nil, parseError("configs."+rl.Name, errors.New("layout has no display settings"))
		}

		layout := model.Layout{
			Name:     rl.Name,
			Settings: make([]model.DisplaySetting, 0, len(rl.Settings)),
		}
		for i, rs := range rl.Settings {
			setting, err := buildSetting(cfg, rl.Name, rl.settingField(i), rs)
			if err != nil {
				return nil, err
			}
			layout.Settings = append(layout.Settings, setting)
		}
		cfg.Layouts = append(cfg.Layouts, layout)
	}

	return cfg, nil
}

func buildSetting(cfg *model.Config, layoutName, field string, rs rawSetting) (model.DisplaySetting, error) {
	var s model.DisplaySetting

	if rs.Display == "" {
		return s, parseError(field+".display", errors.New("display is required"))
	}
	if !resolutionRegex.MatchString(rs.Resolution) {
		if rs.Resolution == "" {
			return s, parseError(field+".resolution", errors.New("resolution is required"))
		}
		return s, parseError(field+".resolution", fmt.Errorf("invalid resolution %q, must be like 1920x1080", rs.Resolution))
	}
	if err := validateRate(rs.Rate); err != nil {
		return s, parseError(field+".rate", err)
	}

	display, ok := cfg.Displays[rs.Display]
	if !ok {
		return s, &ReferenceError{Layout: layoutName, Field: field + ".display", Name: rs.Display, Defined: cfg.DisplayNames()}
	}

	s.Display = display
	s.Resolution = rs.Resolution
	s.Rate = rs.Rate
	s.Primary = rs.Primary != nil && *rs.Primary

	if rs.Position != nil {
		if len(rs.Position) != 2 {
			return s, parseError(field+".position", fmt.Errorf("must be [direction, display], got %d elements", len(rs.Position)))
		}
		dir, err := model.ParseDirection(rs.Position[0])
		if err != nil {
			return s, parseError(field+".position", err)
		}
		ref, ok := cfg.Displays[rs.Position[1]]
		if !ok {
			return s, &ReferenceError{Layout: layoutName, Field: field + ".position", Name: rs.Position[1], Defined: cfg.DisplayNames()}
		}
		s.Position = &model.Position{Direction: dir, Reference: ref}
	}

	return s, nil
}

func validateRate(rate string) error {
	if rate == "" {
		return errors.New("rate is required")
	}
	if !rateRegex.MatchString(rate) {
		return fmt.Errorf("invalid rate %q, must be a positive number like \"60\"", rate)
	}
	v, err := strconv.ParseFloat(rate, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid rate %q, must be a positive number like \"60\"", rate)
	}
	return nil
}

// withPath records the file path on load errors raised while parsing.
func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
		return pe
	}
	var re *ReferenceError
	if errors.As(err, &re) {
		re.Path = path
		return re
	}
	return err
}
