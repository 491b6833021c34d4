// Package standards holds the SMACNA/ASHRAE reference data the calculators
// read: velocity ceilings, aspect-ratio limits, the standard round size
// series, material roughness and the fitting loss catalog.
//
// A *Limits is immutable once built. Every accessor returns copies, so one
// value can be shared by any number of goroutines and calculators, and an
// alternate regional table can be injected into a single calculator without
// touching the others.
package standards

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"Ducted/internal/calc/duct"
)

// Spec is the plain-data form of a standards table. It is what New
// validates and what Limits.Spec hands back for display.
type Spec struct {
	Version            string                      `json:"version" yaml:"version"`
	VelocityMaxFPM     map[duct.SystemType]float64 `json:"velocity_max_fpm" yaml:"velocity_max_fpm"`
	OccupiedMaxFPM     float64                     `json:"occupied_max_fpm" yaml:"occupied_max_fpm"`
	MaxAspectRatio     float64                     `json:"max_aspect_ratio" yaml:"max_aspect_ratio"`
	DefaultAspectRatio float64                     `json:"default_aspect_ratio" yaml:"default_aspect_ratio"`
	RoundSizesIn       []float64                   `json:"round_sizes_in" yaml:"round_sizes_in"`
	RectIncrementIn    float64                     `json:"rect_increment_in" yaml:"rect_increment_in"`
	MaxDimensionIn     float64                     `json:"max_dimension_in" yaml:"max_dimension_in"`
	RoughnessFt        map[duct.Material]float64   `json:"roughness_ft" yaml:"roughness_ft"`
	DefaultMaterial    duct.Material               `json:"default_material" yaml:"default_material"`
	DefaultK           float64                     `json:"default_k" yaml:"default_k"`
	KCurves            map[string]Curve            `json:"k_curves" yaml:"k_curves"`
	KConstants         map[string]float64          `json:"k_constants" yaml:"k_constants"`
}

type Limits struct {
	spec Spec
}

// New validates s and returns an immutable table built from a deep copy.
func New(s Spec) (*Limits, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Limits{spec: s.clone()}, nil
}

func (s Spec) validate() error {
	for st, v := range s.VelocityMaxFPM {
		if v <= 0 {
			return fmt.Errorf("velocity_max_fpm[%s] must be positive, got %g", st, v)
		}
	}
	if s.OccupiedMaxFPM <= 0 {
		return fmt.Errorf("occupied_max_fpm must be positive, got %g", s.OccupiedMaxFPM)
	}
	if s.MaxAspectRatio < 1 {
		return fmt.Errorf("max_aspect_ratio must be at least 1, got %g", s.MaxAspectRatio)
	}
	if s.DefaultAspectRatio < 1 {
		return fmt.Errorf("default_aspect_ratio must be at least 1, got %g", s.DefaultAspectRatio)
	}
	if len(s.RoundSizesIn) == 0 {
		return fmt.Errorf("round_sizes_in must not be empty")
	}
	for i, d := range s.RoundSizesIn {
		if d <= 0 {
			return fmt.Errorf("round_sizes_in[%d] must be positive, got %g", i, d)
		}
		if i > 0 && d <= s.RoundSizesIn[i-1] {
			return fmt.Errorf("round_sizes_in must be strictly ascending at index %d", i)
		}
	}
	if s.RectIncrementIn < 0 {
		return fmt.Errorf("rect_increment_in must not be negative, got %g", s.RectIncrementIn)
	}
	if s.MaxDimensionIn < s.RoundSizesIn[len(s.RoundSizesIn)-1] {
		return fmt.Errorf("max_dimension_in %g is below the largest standard size", s.MaxDimensionIn)
	}
	if len(s.RoughnessFt) == 0 {
		return fmt.Errorf("roughness_ft must not be empty")
	}
	for m, e := range s.RoughnessFt {
		if e < 0 {
			return fmt.Errorf("roughness_ft[%s] must not be negative, got %g", m, e)
		}
	}
	if _, ok := s.RoughnessFt[s.DefaultMaterial]; !ok {
		return fmt.Errorf("default_material %q has no roughness entry", s.DefaultMaterial)
	}
	if s.DefaultK < 0 {
		return fmt.Errorf("default_k must not be negative, got %g", s.DefaultK)
	}
	for key, c := range s.KCurves {
		if err := c.validate(); err != nil {
			return fmt.Errorf("k_curves[%s]: %w", key, err)
		}
	}
	for key, k := range s.KConstants {
		if k < 0 {
			return fmt.Errorf("k_constants[%s] must not be negative, got %g", key, k)
		}
	}
	return nil
}

func (s Spec) clone() Spec {
	out := s
	out.VelocityMaxFPM = maps.Clone(s.VelocityMaxFPM)
	out.RoundSizesIn = slices.Clone(s.RoundSizesIn)
	out.RoughnessFt = maps.Clone(s.RoughnessFt)
	out.KConstants = maps.Clone(s.KConstants)
	out.KCurves = make(map[string]Curve, len(s.KCurves))
	for k, c := range s.KCurves {
		out.KCurves[k] = slices.Clone(c)
	}
	return out
}

// Spec returns a deep copy of the table's data.
func (l *Limits) Spec() Spec { return l.spec.clone() }

func (l *Limits) Version() string { return l.spec.Version }

// VelocityLimit is the SMACNA ceiling for the system type, if one is defined.
func (l *Limits) VelocityLimit(st duct.SystemType) (float64, bool) {
	v, ok := l.spec.VelocityMaxFPM[st]
	return v, ok
}

func (l *Limits) OccupiedVelocityLimit() float64 { return l.spec.OccupiedMaxFPM }
func (l *Limits) MaxAspectRatio() float64        { return l.spec.MaxAspectRatio }
func (l *Limits) DefaultAspectRatio() float64    { return l.spec.DefaultAspectRatio }
func (l *Limits) RectIncrement() float64         { return l.spec.RectIncrementIn }
func (l *Limits) MaxDimension() float64          { return l.spec.MaxDimensionIn }
func (l *Limits) DefaultMaterial() duct.Material { return l.spec.DefaultMaterial }
func (l *Limits) DefaultK() float64              { return l.spec.DefaultK }

func (l *Limits) RoundSizes() []float64 { return slices.Clone(l.spec.RoundSizesIn) }

// Roughness returns the absolute roughness in feet.
func (l *Limits) Roughness(m duct.Material) (float64, bool) {
	e, ok := l.spec.RoughnessFt[m]
	return e, ok
}

func (l *Limits) Materials() []duct.Material {
	out := make([]duct.Material, 0, len(l.spec.RoughnessFt))
	for m := range l.spec.RoughnessFt {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *Limits) KCurve(key string) (Curve, bool) {
	c, ok := l.spec.KCurves[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}

func (l *Limits) KConstant(key string) (float64, bool) {
	k, ok := l.spec.KConstants[key]
	return k, ok
}
