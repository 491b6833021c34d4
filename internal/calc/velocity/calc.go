// Package velocity converts between air velocity and velocity pressure.
//
// This is the only place the velocity-pressure relation is written down.
// Sizing, fitting and system calculations all call Pressure so that their
// numbers agree with each other and with the published VP tables.
package velocity

import (
	"math"

	"Ducted/internal/calc/air"
)

// ReferenceFPM is the velocity giving 1 in. w.g. in standard air.
const ReferenceFPM = 4005.0

// Pressure returns the velocity pressure in in. w.g. for a velocity in FPM
// and an air density in lb/ft³:
//
//	VP = (V/4005)² × (ρ/0.075)
func Pressure(velocityFPM, density float64) float64 {
	r := velocityFPM / ReferenceFPM
	return r * r * (density / air.StandardDensity)
}

// FromPressure is the inverse of Pressure. Non-positive inputs give 0.
func FromPressure(vp, density float64) float64 {
	if vp <= 0 || density <= 0 {
		return 0
	}
	return ReferenceFPM * math.Sqrt(vp*air.StandardDensity/density)
}
