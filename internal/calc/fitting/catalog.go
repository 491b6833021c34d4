package fitting

import (
	"fmt"

	"Ducted/internal/calc/duct"
	"Ducted/internal/standards"
)

type Type string

const (
	TypeElbow        Type = "elbow"
	TypeMiteredElbow Type = "mitered_elbow"
	TypeTee          Type = "tee"
	TypeTransition   Type = "transition"
	TypeDamper       Type = "damper"
	TypeEntry        Type = "entry"
	TypeExit         Type = "exit"
	TypeCustom       Type = "custom"
)

// Fitting is one entry of the closed fitting catalog. Each variant carries
// its own parameters and knows how to look itself up in a standards table.
type Fitting interface {
	Type() Type
	// check rejects enumerated parameters outside their allowed values.
	check() error
	// lookup returns the K-factor, or false when the table has no entry for
	// these parameters.
	lookup(l *standards.Limits, shape duct.Shape) (float64, bool)
}

// Elbow is a smooth-radius elbow. RadiusRatio is centerline radius over
// diameter (round) or width (rectangular).
type Elbow struct {
	RadiusRatio float64 `json:"radius_ratio" yaml:"radius_ratio"`
	AngleDeg    float64 `json:"angle_deg,omitempty" yaml:"angle_deg,omitempty"`
}

func (Elbow) Type() Type   { return TypeElbow }
func (Elbow) check() error { return nil }

func (e Elbow) angle() float64 { return orDefault(e.AngleDeg, 90) }

func (e Elbow) lookup(l *standards.Limits, shape duct.Shape) (float64, bool) {
	var key string
	switch shape {
	case duct.ShapeRound:
		key = standards.KeyElbowRound
	case duct.ShapeRectangular:
		key = standards.KeyElbowRectangular
	default:
		return 0, false
	}
	k90, ok := curveAt(l, key, e.RadiusRatio)
	if !ok {
		return 0, false
	}
	factor, ok := curveAt(l, standards.KeyElbowAngle, e.angle())
	if !ok {
		return 0, false
	}
	return k90 * factor, true
}

type MiteredElbow struct {
	AngleDeg     float64 `json:"angle_deg,omitempty" yaml:"angle_deg,omitempty"`
	TurningVanes bool    `json:"turning_vanes,omitempty" yaml:"turning_vanes,omitempty"`
}

func (MiteredElbow) Type() Type   { return TypeMiteredElbow }
func (MiteredElbow) check() error { return nil }

func (m MiteredElbow) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	key := standards.KeyMitered
	if m.TurningVanes {
		key = standards.KeyMiteredVanes
	}
	return curveAt(l, key, orDefault(m.AngleDeg, 90))
}

type TeePath string

const (
	PathMain   TeePath = "main"
	PathBranch TeePath = "branch"
)

// Tee is a diverging tee or wye, seen from either the straight-through
// (main) or the branch flow path.
type Tee struct {
	Path           TeePath `json:"path" yaml:"path"`
	BranchAngleDeg float64 `json:"branch_angle_deg,omitempty" yaml:"branch_angle_deg,omitempty"`
}

func (Tee) Type() Type { return TypeTee }

func (t Tee) check() error {
	if t.Path != PathMain && t.Path != PathBranch {
		return fmt.Errorf("path must be %q or %q, got %q", PathMain, PathBranch, t.Path)
	}
	return nil
}

func (t Tee) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	key := standards.KeyTeeBranch
	if t.Path == PathMain {
		key = standards.KeyTeeMain
	}
	return curveAt(l, key, orDefault(t.BranchAngleDeg, 90))
}

type Direction string

const (
	Contraction Direction = "contraction"
	Expansion   Direction = "expansion"
)

type Transition struct {
	Direction        Direction `json:"direction" yaml:"direction"`
	IncludedAngleDeg float64   `json:"included_angle_deg" yaml:"included_angle_deg"`
}

func (Transition) Type() Type { return TypeTransition }

func (t Transition) check() error {
	if t.Direction != Contraction && t.Direction != Expansion {
		return fmt.Errorf("direction must be %q or %q, got %q", Contraction, Expansion, t.Direction)
	}
	return nil
}

func (t Transition) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	key := standards.KeyContraction
	if t.Direction == Expansion {
		key = standards.KeyExpansion
	}
	return curveAt(l, key, t.IncludedAngleDeg)
}

// Damper is a butterfly or opposed-blade damper; 0° is fully open.
type Damper struct {
	BladeAngleDeg float64 `json:"blade_angle_deg,omitempty" yaml:"blade_angle_deg,omitempty"`
}

func (Damper) Type() Type   { return TypeDamper }
func (Damper) check() error { return nil }

func (d Damper) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	return curveAt(l, standards.KeyDamper, d.BladeAngleDeg)
}

type EntryStyle string

const (
	EntryBellmouth EntryStyle = "bellmouth"
	EntryFlanged   EntryStyle = "flanged"
	EntryPlain     EntryStyle = "plain"
)

var entryKeys = map[EntryStyle]string{
	EntryBellmouth: standards.KeyEntryBellmouth,
	EntryFlanged:   standards.KeyEntryFlanged,
	EntryPlain:     standards.KeyEntryPlain,
}

type Entry struct {
	Style EntryStyle `json:"style" yaml:"style"`
}

func (Entry) Type() Type { return TypeEntry }

func (e Entry) check() error {
	if _, ok := entryKeys[e.Style]; !ok {
		return fmt.Errorf("style must be one of bellmouth, flanged, plain, got %q", e.Style)
	}
	return nil
}

func (e Entry) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	return l.KConstant(entryKeys[e.Style])
}

// Exit is an abrupt discharge to a plenum or room.
type Exit struct{}

func (Exit) Type() Type   { return TypeExit }
func (Exit) check() error { return nil }

func (Exit) lookup(l *standards.Limits, _ duct.Shape) (float64, bool) {
	return l.KConstant(standards.KeyExit)
}

// Custom is a fitting outside the catalog. Without a caller-supplied
// K-factor it cannot be resolved.
type Custom struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	KFactor *float64 `json:"k_factor,omitempty" yaml:"k_factor,omitempty"`
}

func (Custom) Type() Type { return TypeCustom }

func (c Custom) check() error {
	if c.KFactor != nil && *c.KFactor < 0 {
		return fmt.Errorf("k_factor must not be negative, got %g", *c.KFactor)
	}
	return nil
}

func (c Custom) lookup(_ *standards.Limits, _ duct.Shape) (float64, bool) {
	if c.KFactor == nil {
		return 0, false
	}
	return *c.KFactor, true
}

func curveAt(l *standards.Limits, key string, x float64) (float64, bool) {
	c, ok := l.KCurve(key)
	if !ok {
		return 0, false
	}
	return c.At(x)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// CatalogEntry describes one fitting type for discovery.
type CatalogEntry struct {
	Type        Type     `json:"type"`
	Params      []string `json:"params"`
	Description string   `json:"description"`
}

var catalog = []CatalogEntry{
	{TypeElbow, []string{"radius_ratio", "angle_deg"}, "smooth radius elbow; K by R/D (round) or R/W (rectangular), scaled by angle"},
	{TypeMiteredElbow, []string{"angle_deg", "turning_vanes"}, "mitered elbow, optionally with turning vanes (90 deg only)"},
	{TypeTee, []string{"path", "branch_angle_deg"}, "diverging tee or wye; path main or branch"},
	{TypeTransition, []string{"direction", "included_angle_deg"}, "contraction or expansion by included angle"},
	{TypeDamper, []string{"blade_angle_deg"}, "damper; 0 deg is fully open"},
	{TypeEntry, []string{"style"}, "duct entry: bellmouth, flanged or plain"},
	{TypeExit, nil, "abrupt exit"},
	{TypeCustom, []string{"name", "k_factor"}, "fitting outside the catalog; default K applies without k_factor"},
}

func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

func newVariant(t Type) (Fitting, bool) {
	switch t {
	case TypeElbow:
		return &Elbow{}, true
	case TypeMiteredElbow:
		return &MiteredElbow{}, true
	case TypeTee:
		return &Tee{}, true
	case TypeTransition:
		return &Transition{}, true
	case TypeDamper:
		return &Damper{}, true
	case TypeEntry:
		return &Entry{}, true
	case TypeExit:
		return &Exit{}, true
	case TypeCustom:
		return &Custom{}, true
	}
	return nil, false
}
