package standards

import "Ducted/internal/calc/duct"

const DefaultVersion = "smacna-ashrae-2024.1"

// Catalog keys for fitting K-factor tables.
const (
	KeyElbowRound       = "elbow/round"       // x: centerline radius / diameter, 90 deg
	KeyElbowRectangular = "elbow/rectangular" // x: centerline radius / width, 90 deg, H/W = 1
	KeyElbowAngle       = "elbow/angle"       // x: turn angle, multiplier on the 90 deg K
	KeyMitered          = "mitered_elbow"     // x: turn angle, no vanes
	KeyMiteredVanes     = "mitered_elbow/vanes"
	KeyTeeBranch        = "tee/branch" // x: branch angle
	KeyTeeMain          = "tee/main"   // x: branch angle
	KeyContraction      = "transition/contraction"
	KeyExpansion        = "transition/expansion"
	KeyDamper           = "damper" // x: blade angle, 0 = fully open
	KeyEntryBellmouth   = "entry/bellmouth"
	KeyEntryFlanged     = "entry/flanged"
	KeyEntryPlain       = "entry/plain"
	KeyExit             = "exit"
)

// DefaultSpec is the built-in SMACNA/ASHRAE table. Each call returns fresh
// maps and slices.
func DefaultSpec() Spec {
	return Spec{
		Version: DefaultVersion,
		VelocityMaxFPM: map[duct.SystemType]float64{
			duct.Supply:  2500,
			duct.Return:  2000,
			duct.Exhaust: 3000,
		},
		OccupiedMaxFPM:     750, // ASHRAE comfort
		MaxAspectRatio:     4,
		DefaultAspectRatio: 2,
		RoundSizesIn:       []float64{6, 8, 10, 12, 14, 16, 18, 20, 24, 30, 36, 42, 48, 54, 60, 72, 84, 96},
		RectIncrementIn:    1,
		MaxDimensionIn:     480,
		RoughnessFt: map[duct.Material]float64{
			duct.GalvanizedSteel: 0.0003,
			duct.StainlessSteel:  0.00015,
			duct.Aluminum:        0.00015,
			duct.PVC:             0.00003,
			duct.Fiberglass:      0.003,
			duct.Flexible:        0.01,
		},
		DefaultMaterial: duct.GalvanizedSteel,
		DefaultK:        0.5,
		KCurves: map[string]Curve{
			KeyElbowRound: {
				{0.5, 0.71}, {0.75, 0.33}, {1.0, 0.22}, {1.5, 0.15}, {2.0, 0.13}, {2.5, 0.12},
			},
			KeyElbowRectangular: {
				{0.5, 1.2}, {0.75, 0.44}, {1.0, 0.21}, {1.5, 0.17}, {2.0, 0.15},
			},
			KeyElbowAngle: {
				{0, 0}, {30, 0.45}, {45, 0.60}, {60, 0.78}, {90, 1.0}, {110, 1.13}, {130, 1.20}, {150, 1.28}, {180, 1.40},
			},
			KeyMitered: {
				{20, 0.08}, {30, 0.16}, {45, 0.34}, {60, 0.55}, {75, 0.81}, {90, 1.2},
			},
			KeyMiteredVanes: {
				{90, 0.11},
			},
			KeyTeeBranch: {
				{30, 0.30}, {45, 0.50}, {60, 0.70}, {90, 1.0},
			},
			KeyTeeMain: {
				{30, 0.20}, {90, 0.20},
			},
			KeyContraction: {
				{10, 0.05}, {45, 0.07}, {60, 0.08}, {90, 0.19}, {120, 0.29}, {150, 0.37}, {180, 0.43},
			},
			KeyExpansion: {
				{10, 0.11}, {20, 0.19}, {30, 0.32}, {45, 0.45}, {60, 0.56}, {90, 0.60}, {180, 0.62},
			},
			KeyDamper: {
				{0, 0.20}, {10, 0.52}, {20, 1.5}, {30, 4.5}, {40, 11}, {50, 29}, {60, 108},
			},
		},
		KConstants: map[string]float64{
			KeyEntryBellmouth: 0.03,
			KeyEntryFlanged:   0.5,
			KeyEntryPlain:     0.85,
			KeyExit:           1.0,
		},
	}
}

var defaultLimits = mustNew(DefaultSpec())

// Default returns the shared built-in table.
func Default() *Limits { return defaultLimits }

func mustNew(s Spec) *Limits {
	l, err := New(s)
	if err != nil {
		panic("standards: invalid built-in table: " + err.Error())
	}
	return l
}
