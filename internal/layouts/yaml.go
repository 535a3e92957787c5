package layouts

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes a YAML layout file. The document is walked as a node tree so
// layout order is kept and unknown keys are rejected at every level.
func decodeYAML(data []byte) (*rawFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError("", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, parseError("", errors.New("empty document"))
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, parseError("", errors.New("top level must be a mapping"))
	}

	raw := &rawFile{Displays: make(map[string]rawDisplay)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "displays":
			if err := decodeYAMLDisplays(value, raw); err != nil {
				return nil, err
			}
		case "configs":
			if err := decodeYAMLLayouts(value, raw); err != nil {
				return nil, err
			}
		default:
			return nil, parseError(key, errors.New("unknown field"))
		}
	}

	return raw, nil
}

func decodeYAMLDisplays(node *yaml.Node, raw *rawFile) error {
	if node.Kind != yaml.MappingNode {
		return parseError("displays", errors.New("must be a mapping"))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		field := "displays." + name
		if err := checkYAMLKeys(value, displayKeys); err != nil {
			return parseError(field, err)
		}
		var d rawDisplay
		if err := value.Decode(&d); err != nil {
			return parseError(field, err)
		}
		raw.Displays[name] = d
	}
	return nil
}

func decodeYAMLLayouts(node *yaml.Node, raw *rawFile) error {
	if node.Kind != yaml.MappingNode {
		return parseError("configs", errors.New("must be a mapping"))
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		layout := rawLayout{Name: name}

		switch value.Kind {
		case yaml.MappingNode:
			layout.single = true
			s, err := decodeYAMLSetting(value)
			if err != nil {
				return parseError(layout.settingField(0), err)
			}
			layout.Settings = []rawSetting{s}
		case yaml.SequenceNode:
			for j, item := range value.Content {
				s, err := decodeYAMLSetting(item)
				if err != nil {
					return parseError(layout.settingField(j), err)
				}
				layout.Settings = append(layout.Settings, s)
			}
		default:
			return parseError("configs."+name, errors.New("must be a display setting mapping or a list of them"))
		}

		raw.Layouts = append(raw.Layouts, layout)
	}
	return nil
}

func decodeYAMLSetting(node *yaml.Node) (rawSetting, error) {
	var s rawSetting
	if err := checkYAMLKeys(node, settingKeys); err != nil {
		return s, err
	}
	if err := node.Decode(&s); err != nil {
		return s, err
	}
	return s, nil
}

// checkYAMLKeys rejects mapping keys outside allowed.
// Node.Decode does not honour KnownFields, so nested values are checked here.
func checkYAMLKeys(node *yaml.Node, allowed map[string]bool) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("must be a mapping, line %d", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !allowed[key] {
			return fmt.Errorf("unknown field %q, line %d", key, node.Content[i].Line)
		}
	}
	return nil
}
