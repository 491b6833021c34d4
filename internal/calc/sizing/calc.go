package sizing

import (
	"fmt"
	"math"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/compliance"
	"Ducted/internal/calc/duct"
	"Ducted/internal/standards"
)

// ContinuityToleranceCFM bounds |V·A − Q| for every sized duct.
const ContinuityToleranceCFM = 0.1

type Method string

const (
	MethodVelocity     Method = "velocity"
	MethodFrictionRate Method = "friction_rate"
)

type Constraints struct {
	MaxDiameterIn float64 `json:"max_diameter_in,omitempty" yaml:"max_diameter_in,omitempty"`
	MaxHeightIn   float64 `json:"max_height_in,omitempty" yaml:"max_height_in,omitempty"`
}

// Input selects the sizing method by which of TargetVelocityFPM or
// FrictionRate (in. w.g. per 100 ft) is set; exactly one must be.
type Input struct {
	AirflowCFM        float64         `json:"airflow_cfm" yaml:"airflow_cfm"`
	Shape             duct.Shape      `json:"shape" yaml:"shape"`
	TargetVelocityFPM float64         `json:"target_velocity_fpm,omitempty" yaml:"target_velocity_fpm,omitempty"`
	FrictionRate      float64         `json:"friction_rate,omitempty" yaml:"friction_rate,omitempty"`
	AspectRatio       float64         `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
	Material          duct.Material   `json:"material,omitempty" yaml:"material,omitempty"`
	Conditions        *air.Conditions `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	SystemType        duct.SystemType `json:"system_type,omitempty" yaml:"system_type,omitempty"`
	Location          duct.Location   `json:"location,omitempty" yaml:"location,omitempty"`
	Constraints       Constraints     `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type Result struct {
	Method               Method            `json:"method"`
	Geometry             duct.Geometry     `json:"geometry"`
	Material             duct.Material     `json:"material"`
	RequiredAreaFt2      float64           `json:"required_area_ft2,omitempty"`
	AreaFt2              float64           `json:"area_ft2"`
	VelocityFPM          float64           `json:"velocity_fpm"`
	VelocityPressure     float64           `json:"velocity_pressure_in_wg"`
	ReynoldsNumber       float64           `json:"reynolds_number"`
	FrictionFactor       float64           `json:"friction_factor"`
	PressureLossPer100Ft float64           `json:"pressure_loss_in_wg_per_100ft"`
	HydraulicDiameterIn  float64           `json:"hydraulic_diameter_in"`
	EquivalentDiameterIn float64           `json:"equivalent_diameter_in"`
	AspectRatio          float64           `json:"aspect_ratio"`
	Air                  air.Properties    `json:"air"`
	Warnings             []calcerr.Warning `json:"warnings"`
	Compliance           compliance.Flags  `json:"compliance"`
}

type Calculator struct {
	limits    *standards.Limits
	validator *compliance.Validator
}

// New returns a calculator over limits, or the built-in table when nil.
func New(limits *standards.Limits) *Calculator {
	if limits == nil {
		limits = standards.Default()
	}
	return &Calculator{limits: limits, validator: compliance.New(limits)}
}

func (c *Calculator) Limits() *standards.Limits { return c.limits }

// Size picks a duct for the airflow, then reports its actual velocity,
// friction state and standards compliance. Inputs are checked before any
// computation; on error no partial result is returned.
func (c *Calculator) Size(in Input) (Result, error) {
	method, err := c.check(&in)
	if err != nil {
		return Result{}, err
	}
	props, err := air.ResolveOrStandard(in.Conditions)
	if err != nil {
		return Result{}, err
	}

	var (
		g        duct.Geometry
		warnings []calcerr.Warning
		required float64
	)
	switch method {
	case MethodVelocity:
		required = in.AirflowCFM / in.TargetVelocityFPM
		if in.Shape == duct.ShapeRound {
			g, warnings = c.roundForArea(required, in.Constraints)
		} else {
			g, warnings = c.rectForArea(required, in.AspectRatio, in.Constraints)
		}
	case MethodFrictionRate:
		g, warnings, err = c.searchFrictionRate(in, props)
		if err != nil {
			return Result{}, err
		}
	}

	area := g.AreaFt2()
	vel := in.AirflowCFM / area
	if math.Abs(vel*area-in.AirflowCFM) >= ContinuityToleranceCFM {
		return Result{}, fmt.Errorf("sizing: continuity violated for %s: %.4f CFM vs %.4f CFM", g, vel*area, in.AirflowCFM)
	}

	flow, err := c.Friction(g, vel, in.Material, props)
	if err != nil {
		return Result{}, err
	}
	if flow.Laminar {
		warnings = append(warnings, calcerr.Warn(calcerr.WarnLaminarFlow,
			"Reynolds number %.0f is laminar; friction uses 64/Re", flow.ReynoldsNumber))
	}

	report := c.validator.Validate(compliance.SubjectOf(g, vel), in.SystemType, in.Location)
	warnings = append(warnings, report.Warnings...)
	if warnings == nil {
		warnings = []calcerr.Warning{}
	}

	return Result{
		Method:               method,
		Geometry:             g,
		Material:             in.Material,
		RequiredAreaFt2:      required,
		AreaFt2:              area,
		VelocityFPM:          vel,
		VelocityPressure:     flow.VelocityPressure,
		ReynoldsNumber:       flow.ReynoldsNumber,
		FrictionFactor:       flow.FrictionFactor,
		PressureLossPer100Ft: flow.LossPer100Ft,
		HydraulicDiameterIn:  g.HydraulicDiameterIn(),
		EquivalentDiameterIn: g.EquivalentDiameterIn(),
		AspectRatio:          g.AspectRatio(),
		Air:                  props,
		Warnings:             warnings,
		Compliance:           report.Compliance,
	}, nil
}

// check validates in and fills defaults in place.
func (c *Calculator) check(in *Input) (Method, error) {
	const op = "sizing.size"
	if in.AirflowCFM <= 0 {
		return "", calcerr.InvalidInput(op, "airflow_cfm", in.AirflowCFM, "airflow must be positive")
	}
	if in.TargetVelocityFPM < 0 {
		return "", calcerr.InvalidInput(op, "target_velocity_fpm", in.TargetVelocityFPM, "target velocity must be positive")
	}
	if in.FrictionRate < 0 {
		return "", calcerr.InvalidInput(op, "friction_rate", in.FrictionRate, "friction rate must be positive")
	}

	var method Method
	switch {
	case in.TargetVelocityFPM > 0 && in.FrictionRate > 0:
		return "", calcerr.InvalidInput(op, "method", nil, "set either target_velocity_fpm or friction_rate, not both")
	case in.TargetVelocityFPM > 0:
		method = MethodVelocity
	case in.FrictionRate > 0:
		method = MethodFrictionRate
	default:
		return "", calcerr.InvalidInput(op, "method", nil, "a positive target_velocity_fpm or friction_rate is required")
	}

	switch in.Shape {
	case "":
		in.Shape = duct.ShapeRound
	case duct.ShapeRound, duct.ShapeRectangular:
	default:
		return "", calcerr.InvalidInput(op, "shape", string(in.Shape), "shape must be round or rectangular")
	}

	if in.AspectRatio < 0 {
		return "", calcerr.InvalidInput(op, "aspect_ratio", in.AspectRatio, "aspect ratio must be positive")
	}
	if in.AspectRatio == 0 {
		in.AspectRatio = c.limits.DefaultAspectRatio()
	}
	if in.Constraints.MaxDiameterIn < 0 {
		return "", calcerr.InvalidInput(op, "constraints.max_diameter_in", in.Constraints.MaxDiameterIn, "constraint must be positive")
	}
	if in.Constraints.MaxHeightIn < 0 {
		return "", calcerr.InvalidInput(op, "constraints.max_height_in", in.Constraints.MaxHeightIn, "constraint must be positive")
	}

	if in.Material == "" {
		in.Material = c.limits.DefaultMaterial()
	}
	if _, err := c.roughness(in.Material); err != nil {
		return "", err
	}
	if in.SystemType == "" {
		in.SystemType = duct.Supply
	}
	return method, nil
}
