package velocity

import (
	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
)

// Input converts in whichever direction is given: a velocity yields its
// velocity pressure, a velocity pressure yields the velocity.
type Input struct {
	VelocityFPM      float64         `json:"velocity_fpm,omitempty" yaml:"velocity_fpm,omitempty"`
	VelocityPressure float64         `json:"velocity_pressure_in_wg,omitempty" yaml:"velocity_pressure_in_wg,omitempty"`
	Conditions       *air.Conditions `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

type Result struct {
	VelocityFPM      float64 `json:"velocity_fpm"`
	VelocityPressure float64 `json:"velocity_pressure_in_wg"`
	Density          float64 `json:"density_lb_ft3"`
}

func Convert(in Input) (Result, error) {
	const op = "velocity.convert"
	if in.VelocityFPM < 0 {
		return Result{}, calcerr.InvalidInput(op, "velocity_fpm", in.VelocityFPM, "velocity must not be negative")
	}
	if in.VelocityPressure < 0 {
		return Result{}, calcerr.InvalidInput(op, "velocity_pressure_in_wg", in.VelocityPressure, "velocity pressure must not be negative")
	}
	if (in.VelocityFPM > 0) == (in.VelocityPressure > 0) {
		return Result{}, calcerr.InvalidInput(op, "velocity_fpm", nil, "set exactly one of velocity_fpm or velocity_pressure_in_wg")
	}
	props, err := air.ResolveOrStandard(in.Conditions)
	if err != nil {
		return Result{}, err
	}
	res := Result{Density: props.Density}
	if in.VelocityFPM > 0 {
		res.VelocityFPM = in.VelocityFPM
		res.VelocityPressure = Pressure(in.VelocityFPM, props.Density)
	} else {
		res.VelocityPressure = in.VelocityPressure
		res.VelocityFPM = FromPressure(in.VelocityPressure, props.Density)
	}
	return res, nil
}
