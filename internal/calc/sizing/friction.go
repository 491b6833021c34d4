package sizing

import (
	"math"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/velocity"
)

// LaminarLimit is the Reynolds number below which 64/Re is used.
const LaminarLimit = 2300.0

// Flow is the straight-duct friction state for one geometry and velocity.
type Flow struct {
	ReynoldsNumber   float64 `json:"reynolds_number"`
	FrictionFactor   float64 `json:"friction_factor"`
	VelocityPressure float64 `json:"velocity_pressure_in_wg"`
	LossPer100Ft     float64 `json:"pressure_loss_in_wg_per_100ft"`
	Laminar          bool    `json:"laminar"`
}

// Friction evaluates Darcy–Weisbach for a straight duct. Rectangular ducts
// use the hydraulic diameter 4A/P for both Reynolds number and relative
// roughness.
//
//	ΔP/100 ft = f × (100 / D_ft) × VP
func (c *Calculator) Friction(g duct.Geometry, velocityFPM float64, material duct.Material, props air.Properties) (Flow, error) {
	eps, err := c.roughness(material)
	if err != nil {
		return Flow{}, err
	}
	dFt := g.HydraulicDiameterIn() / 12.0
	if dFt <= 0 {
		return Flow{}, calcerr.InvalidInput("sizing.friction", "geometry", g.String(), "duct has no flow diameter")
	}

	re := props.Density * (velocityFPM / 60.0) * dFt / props.Viscosity
	f := FrictionFactor(re, eps/dFt)
	vp := velocity.Pressure(velocityFPM, props.Density)

	return Flow{
		ReynoldsNumber:   re,
		FrictionFactor:   f,
		VelocityPressure: vp,
		LossPer100Ft:     f * (100.0 / dFt) * vp,
		Laminar:          re > 0 && re < LaminarLimit,
	}, nil
}

// FrictionFactor is the Darcy friction factor: 64/Re in laminar flow and
// the Swamee–Jain fit to Colebrook–White otherwise.
func FrictionFactor(re, relRoughness float64) float64 {
	if re <= 0 {
		return 0
	}
	if re < LaminarLimit {
		return 64.0 / re
	}
	l := math.Log10(relRoughness/3.7 + 5.74/math.Pow(re, 0.9))
	return 0.25 / (l * l)
}

func (c *Calculator) roughness(m duct.Material) (float64, error) {
	if m == "" {
		m = c.limits.DefaultMaterial()
	}
	eps, ok := c.limits.Roughness(m)
	if !ok {
		return 0, calcerr.InvalidInput("sizing", "material", string(m), "unknown duct material")
	}
	return eps, nil
}
