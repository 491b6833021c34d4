// Package fitting computes dynamic (minor) losses through duct fittings
// from tabulated loss coefficients:
//
//	ΔP = K × VP
//
// K is a pure function of the fitting type, its parameters and the duct
// shape, read from the injected standards table.
package fitting

import (
	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/velocity"
	"Ducted/internal/standards"
)

type Result struct {
	Type             Type              `json:"type"`
	KFactor          float64           `json:"k_factor"`
	Resolved         bool              `json:"resolved"`
	VelocityFPM      float64           `json:"velocity_fpm"`
	VelocityPressure float64           `json:"velocity_pressure_in_wg"`
	PressureLoss     float64           `json:"pressure_loss_in_wg"`
	Warnings         []calcerr.Warning `json:"warnings"`
}

type Calculator struct {
	limits *standards.Limits
}

// New returns a calculator over limits, or the built-in table when nil.
func New(limits *standards.Limits) *Calculator {
	if limits == nil {
		limits = standards.Default()
	}
	return &Calculator{limits: limits}
}

// KFactor looks up the loss coefficient for cfg. When the table has no
// entry for the given parameters the configured default K is returned with
// an unresolved_fitting warning; the result is never silently defaulted.
func (c *Calculator) KFactor(cfg Config) (float64, bool, []calcerr.Warning, error) {
	if cfg.Fitting == nil {
		return 0, false, nil, calcerr.InvalidInput("fitting.k_factor", "type", nil, "fitting type is missing")
	}
	if err := cfg.Fitting.check(); err != nil {
		return 0, false, nil, calcerr.InvalidInput("fitting.k_factor", "params", nil, err.Error())
	}
	if k, ok := cfg.Fitting.lookup(c.limits, cfg.Shape); ok {
		return k, true, []calcerr.Warning{}, nil
	}
	k := c.limits.DefaultK()
	w := calcerr.Warn(calcerr.WarnUnresolvedFitting,
		"no K-factor for %s with these parameters; using default K=%.2f", cfg.Fitting.Type(), k)
	return k, false, []calcerr.Warning{w}, nil
}

// Loss returns the pressure drop across one fitting at the given duct
// velocity and air density. The velocity pressure comes from the same
// relation straight-duct friction uses.
func (c *Calculator) Loss(cfg Config, velocityFPM, density float64) (Result, error) {
	const op = "fitting.loss"
	if velocityFPM <= 0 {
		return Result{}, calcerr.InvalidInput(op, "velocity_fpm", velocityFPM, "velocity must be positive")
	}
	if density <= 0 {
		return Result{}, calcerr.InvalidInput(op, "density", density, "air density must be positive")
	}
	k, resolved, warnings, err := c.KFactor(cfg)
	if err != nil {
		return Result{}, err
	}
	vp := velocity.Pressure(velocityFPM, density)
	return Result{
		Type:             cfg.Fitting.Type(),
		KFactor:          k,
		Resolved:         resolved,
		VelocityFPM:      velocityFPM,
		VelocityPressure: vp,
		PressureLoss:     k * vp,
		Warnings:         warnings,
	}, nil
}

// Input is the request form: either a velocity, or an airflow through a
// duct geometry from which the velocity follows.
type Input struct {
	Fitting     Config          `json:"fitting" yaml:"fitting"`
	VelocityFPM float64         `json:"velocity_fpm,omitempty" yaml:"velocity_fpm,omitempty"`
	AirflowCFM  float64         `json:"airflow_cfm,omitempty" yaml:"airflow_cfm,omitempty"`
	Geometry    *duct.Geometry  `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Conditions  *air.Conditions `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

func (c *Calculator) Evaluate(in Input) (Result, error) {
	const op = "fitting.evaluate"
	props, err := air.ResolveOrStandard(in.Conditions)
	if err != nil {
		return Result{}, err
	}
	cfg := in.Fitting
	v := in.VelocityFPM
	if in.Geometry != nil {
		if err := in.Geometry.Check(); err != nil {
			return Result{}, calcerr.InvalidInput(op, "geometry", in.Geometry.String(), err.Error())
		}
		if cfg.Shape == "" {
			cfg.Shape = in.Geometry.Shape
		}
		if v == 0 && in.AirflowCFM > 0 {
			v = in.AirflowCFM / in.Geometry.AreaFt2()
		}
	}
	if v == 0 && in.AirflowCFM != 0 {
		return Result{}, calcerr.InvalidInput(op, "geometry", nil, "airflow_cfm needs a geometry to give a velocity")
	}
	return c.Loss(cfg, v, props.Density)
}
