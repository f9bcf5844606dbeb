package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sky-flux/opw"
)

// Format is a model file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Load reads a model file. A missing name defaults to the file name
// without its extension.
func Load(path string) (Model, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Model{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("model: read %s: %w", path, err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return Model{}, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Parse decodes a model from data. Unknown keys are rejected, zero sign
// corrections default to +1 and the resulting parameters are validated.
func Parse(data []byte, format Format) (Model, error) {
	var m Model
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return Model{}, fmt.Errorf("model: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return Model{}, fmt.Errorf("model: decode json: %w", err)
		}
	default:
		return Model{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for i, s := range m.SignCorrections {
		if s == 0 {
			m.SignCorrections[i] = opw.Positive
		}
	}
	if err := m.Validate(); err != nil {
		return Model{}, fmt.Errorf("model %q: %w", m.Name, err)
	}
	return m, nil
}

// Marshal encodes m in the given format.
func Marshal(m Model, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
