package standards

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"Ducted/internal/calc/duct"
)

// yamlOverrides is the on-disk form of a regional table. Every field is
// optional; absent fields keep the built-in value. Map entries are merged
// key by key.
type yamlOverrides struct {
	Version            *string                     `yaml:"version"`
	VelocityMaxFPM     map[duct.SystemType]float64 `yaml:"velocity_max_fpm"`
	OccupiedMaxFPM     *float64                    `yaml:"occupied_max_fpm"`
	MaxAspectRatio     *float64                    `yaml:"max_aspect_ratio"`
	DefaultAspectRatio *float64                    `yaml:"default_aspect_ratio"`
	RoundSizesIn       []float64                   `yaml:"round_sizes_in"`
	RectIncrementIn    *float64                    `yaml:"rect_increment_in"`
	MaxDimensionIn     *float64                    `yaml:"max_dimension_in"`
	RoughnessFt        map[duct.Material]float64   `yaml:"roughness_ft"`
	DefaultMaterial    *duct.Material              `yaml:"default_material"`
	DefaultK           *float64                    `yaml:"default_k"`
	KCurves            map[string]Curve            `yaml:"k_curves"`
	KConstants         map[string]float64          `yaml:"k_constants"`
}

// Load reads a YAML override file and applies it on top of the built-in
// table.
func Load(path string) (*Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading standards file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse applies YAML overrides to the built-in table.
func Parse(data []byte) (*Limits, error) {
	var ov yamlOverrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ov); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing standards YAML: %w", err)
	}
	s := ov.apply(DefaultSpec())
	l, err := New(s)
	if err != nil {
		return nil, fmt.Errorf("invalid standards table: %w", err)
	}
	return l, nil
}

func (ov yamlOverrides) apply(s Spec) Spec {
	if ov.Version != nil {
		s.Version = *ov.Version
	}
	for k, v := range ov.VelocityMaxFPM {
		s.VelocityMaxFPM[k] = v
	}
	if ov.OccupiedMaxFPM != nil {
		s.OccupiedMaxFPM = *ov.OccupiedMaxFPM
	}
	if ov.MaxAspectRatio != nil {
		s.MaxAspectRatio = *ov.MaxAspectRatio
	}
	if ov.DefaultAspectRatio != nil {
		s.DefaultAspectRatio = *ov.DefaultAspectRatio
	}
	if len(ov.RoundSizesIn) > 0 {
		s.RoundSizesIn = ov.RoundSizesIn
	}
	if ov.RectIncrementIn != nil {
		s.RectIncrementIn = *ov.RectIncrementIn
	}
	if ov.MaxDimensionIn != nil {
		s.MaxDimensionIn = *ov.MaxDimensionIn
	}
	for k, v := range ov.RoughnessFt {
		s.RoughnessFt[k] = v
	}
	if ov.DefaultMaterial != nil {
		s.DefaultMaterial = *ov.DefaultMaterial
	}
	if ov.DefaultK != nil {
		s.DefaultK = *ov.DefaultK
	}
	for k, c := range ov.KCurves {
		s.KCurves[k] = c
	}
	for k, v := range ov.KConstants {
		s.KConstants[k] = v
	}
	return s
}
