package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) ([]Family, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return validPrefix(file.Families)
}

func decodeTOML(data []byte) ([]Family, error) {
	var file File
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return validPrefix(file.Families)
}

// Write encodes families in the given format.
func Write(w io.Writer, format Format, families []Family) error {
	file := File{Families: families}

	switch format {
	case FormatText:
		return WriteText(w, families)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(file); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(file); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
