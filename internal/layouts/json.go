package layouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeJSON decodes a JSON layout file.
// encoding/json maps lose key order, so "configs" is walked token by token to keep
// layouts in the order they were written.
func decodeJSON(data []byte) (*rawFile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, parseError("", err)
	}

	raw := &rawFile{Displays: make(map[string]rawDisplay)}
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return nil, parseError("", err)
		}

		switch key {
		case "displays":
			if err := decodeJSONDisplays(dec, raw); err != nil {
				return nil, err
			}
		case "configs":
			if err := decodeJSONLayouts(dec, raw); err != nil {
				return nil, err
			}
		default:
			return nil, parseError(key, errors.New("unknown field"))
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, parseError("", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, parseError("", errors.New("unexpected data after top-level object"))
	}

	return raw, nil
}

func decodeJSONDisplays(dec *json.Decoder, raw *rawFile) error {
	var displays map[string]json.RawMessage
	if err := dec.Decode(&displays); err != nil {
		return parseError("displays", err)
	}
	for name, msg := range displays {
		var d rawDisplay
		if err := strictJSON(msg, &d); err != nil {
			return parseError("displays."+name, err)
		}
		raw.Displays[name] = d
	}
	return nil
}

func decodeJSONLayouts(dec *json.Decoder, raw *rawFile) error {
	if err := expectDelim(dec, '{'); err != nil {
		return parseError("configs", err)
	}

	for dec.More() {
		name, err := objectKey(dec)
		if err != nil {
			return parseError("configs", err)
		}

		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return parseError("configs."+name, err)
		}

		layout, err := decodeJSONSettings(name, msg)
		if err != nil {
			return err
		}
		raw.Layouts = append(raw.Layouts, layout)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return parseError("configs", err)
	}
	return nil
}

// decodeJSONSettings accepts either one setting object or a list of them.
func decodeJSONSettings(name string, msg json.RawMessage) (rawLayout, error) {
	layout := rawLayout{Name: name}
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 {
		return layout, parseError("configs."+name, errors.New("empty value"))
	}

	switch trimmed[0] {
	case '{':
		var s rawSetting
		if err := strictJSON(trimmed, &s); err != nil {
			return layout, parseError("configs."+name, err)
		}
		layout.Settings = []rawSetting{s}
		layout.single = true
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return layout, parseError("configs."+name, err)
		}
		for i, item := range items {
			var s rawSetting
			if err := strictJSON(item, &s); err != nil {
				return layout, parseError(layout.settingField(i), err)
			}
			layout.Settings = append(layout.Settings, s)
		}
	default:
		return layout, parseError("configs."+name, errors.New("must be a display setting object or a list of them"))
	}

	return layout, nil
}

// strictJSON decodes a single value and rejects unknown fields.
func strictJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("unexpected end of input, expected %q", want)
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
