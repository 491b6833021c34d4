package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads a JSON or YAML topology. Unknown keys are rejected in both.
func Decode(r io.Reader, format string) (Topology, error) {
	var t Topology
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Topology{}, fmt.Errorf("decoding topology: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
			return Topology{}, fmt.Errorf("decoding topology: %w", err)
		}
	default:
		return Topology{}, fmt.Errorf("unsupported topology format %q", format)
	}
	return t, nil
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return Topology{}, err
	}
	defer f.Close()
	return Decode(f, strings.TrimPrefix(filepath.Ext(path), "."))
}
