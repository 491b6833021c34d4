// Package system sums friction and fitting losses along a duct run.
package system

import (
	"fmt"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/compliance"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/fitting"
	"Ducted/internal/calc/sizing"
	"Ducted/internal/standards"
)

const op = "system.aggregate"

type SegmentResult struct {
	ID               string            `json:"id"`
	Kind             Kind              `json:"kind"`
	Geometry         duct.Geometry     `json:"geometry"`
	AirflowCFM       float64           `json:"airflow_cfm"`
	VelocityFPM      float64           `json:"velocity_fpm"`
	VelocityPressure float64           `json:"velocity_pressure_in_wg"`
	LossPer100Ft     float64           `json:"pressure_loss_in_wg_per_100ft,omitempty"`
	ReynoldsNumber   float64           `json:"reynolds_number,omitempty"`
	FrictionFactor   float64           `json:"friction_factor,omitempty"`
	KFactor          float64           `json:"k_factor,omitempty"`
	FrictionLoss     float64           `json:"friction_loss_in_wg"`
	MinorLoss        float64           `json:"minor_loss_in_wg"`
	PressureLoss     float64           `json:"pressure_loss_in_wg"`
	Warnings         []calcerr.Warning `json:"warnings"`
	Compliance       compliance.Flags  `json:"compliance"`
}

type Result struct {
	Name               string            `json:"name,omitempty"`
	SystemType         duct.SystemType   `json:"system_type"`
	FrictionLoss       float64           `json:"friction_loss_in_wg"`
	MinorLoss          float64           `json:"minor_loss_in_wg"`
	TotalPressureLoss  float64           `json:"total_pressure_loss_in_wg"`
	MaxVelocityFPM     float64           `json:"max_velocity_fpm"`
	AverageVelocityFPM float64           `json:"average_velocity_fpm"`
	Critical           int               `json:"critical_segment"`
	Segments           []SegmentResult   `json:"segments"`
	Warnings           []calcerr.Warning `json:"warnings"`
	Compliance         compliance.Flags  `json:"compliance"`
	Air                air.Properties    `json:"air"`
	StandardsVersion   string            `json:"standards_version"`
}

// Aggregator holds no state between calls; one value may serve concurrent
// requests.
type Aggregator struct {
	limits    *standards.Limits
	sizer     *sizing.Calculator
	fittings  *fitting.Calculator
	validator *compliance.Validator
}

// New returns an aggregator over limits, or the built-in table when nil.
func New(limits *standards.Limits) *Aggregator {
	if limits == nil {
		limits = standards.Default()
	}
	return &Aggregator{
		limits:    limits,
		sizer:     sizing.New(limits),
		fittings:  fitting.New(limits),
		validator: compliance.New(limits),
	}
}

// Aggregate validates every segment, then walks them in order summing
// straight-duct friction and fitting losses. Any bad segment fails the
// whole topology; there is no partial result.
func (a *Aggregator) Aggregate(t Topology) (Result, error) {
	if len(t.Segments) == 0 {
		return Result{}, calcerr.InvalidInput(op, "segments", 0, "topology has no segments")
	}
	if err := a.check(t.Segments); err != nil {
		return Result{}, err
	}
	props, err := air.ResolveOrStandard(t.Conditions)
	if err != nil {
		return Result{}, err
	}
	st := t.SystemType
	if st == "" {
		st = duct.Supply
	}

	res := Result{
		Name:             t.Name,
		SystemType:       st,
		Segments:         make([]SegmentResult, 0, len(t.Segments)),
		Air:              props,
		StandardsVersion: a.limits.Version(),
	}
	report := compliance.Compliant()
	var weighted, flow float64
	for i, s := range t.Segments {
		sr, err := a.segment(s, st, props)
		if err != nil {
			return Result{}, calcerr.InSegment(err, s.ID)
		}
		res.FrictionLoss += sr.FrictionLoss
		res.MinorLoss += sr.MinorLoss
		if sr.VelocityFPM > res.MaxVelocityFPM {
			res.MaxVelocityFPM = sr.VelocityFPM
		}
		weighted += sr.VelocityFPM * sr.AirflowCFM
		flow += sr.AirflowCFM
		if i == 0 || sr.PressureLoss > res.Segments[res.Critical].PressureLoss {
			res.Critical = i
		}
		report = report.Merge(compliance.Report{Warnings: sr.Warnings, Compliance: sr.Compliance})
		res.Segments = append(res.Segments, sr)
	}
	res.TotalPressureLoss = res.FrictionLoss + res.MinorLoss
	res.AverageVelocityFPM = weighted / flow
	res.Warnings = report.Warnings
	res.Compliance = report.Compliance
	return res, nil
}

func (a *Aggregator) segment(s Segment, st duct.SystemType, props air.Properties) (SegmentResult, error) {
	g := s.Geometry()
	v := s.AirflowCFM / g.AreaFt2()
	sr := SegmentResult{
		ID:          s.ID,
		Kind:        s.Kind,
		Geometry:    g,
		AirflowCFM:  s.AirflowCFM,
		VelocityFPM: v,
	}
	var warnings []calcerr.Warning

	switch s.Kind {
	case KindStraight:
		f, err := a.sizer.Friction(g, v, s.Material, props)
		if err != nil {
			return SegmentResult{}, err
		}
		sr.VelocityPressure = f.VelocityPressure
		sr.LossPer100Ft = f.LossPer100Ft
		sr.ReynoldsNumber = f.ReynoldsNumber
		sr.FrictionFactor = f.FrictionFactor
		sr.FrictionLoss = f.LossPer100Ft * s.LengthFt / 100.0
		sr.PressureLoss = sr.FrictionLoss
		if f.Laminar {
			warnings = append(warnings, calcerr.Warn(calcerr.WarnLaminarFlow,
				"Reynolds number %.0f is laminar; friction uses 64/Re", f.ReynoldsNumber))
		}
	case KindFitting:
		cfg := *s.Fitting
		if cfg.Shape == "" {
			cfg.Shape = g.Shape
		}
		fr, err := a.fittings.Loss(cfg, v, props.Density)
		if err != nil {
			return SegmentResult{}, err
		}
		sr.VelocityPressure = fr.VelocityPressure
		sr.KFactor = fr.KFactor
		sr.MinorLoss = fr.PressureLoss
		sr.PressureLoss = sr.MinorLoss
		warnings = append(warnings, fr.Warnings...)
	}

	rep := a.validator.Validate(compliance.SubjectOf(g, v), st, s.Location)
	warnings = append(warnings, rep.Warnings...)
	sr.Warnings = calcerr.WithSegment(warnings, s.ID)
	sr.Compliance = rep.Compliance
	return sr, nil
}

// check runs before any computation so that a bad segment late in the
// list is reported without evaluating the ones before it.
func (a *Aggregator) check(segments []Segment) error {
	seen := make(map[string]bool, len(segments))
	for i, s := range segments {
		if s.ID == "" {
			return calcerr.MalformedSegment(op, "", fmt.Sprintf("segment at index %d has no id", i))
		}
		if seen[s.ID] {
			return calcerr.MalformedSegment(op, s.ID, "duplicate segment id")
		}
		seen[s.ID] = true

		if err := s.Geometry().Check(); err != nil {
			return calcerr.MalformedSegment(op, s.ID, err.Error())
		}
		switch s.Kind {
		case KindStraight:
			if s.LengthFt <= 0 {
				return calcerr.MalformedSegment(op, s.ID, "straight segment requires a positive length")
			}
			if s.Fitting != nil {
				return calcerr.MalformedSegment(op, s.ID, "straight segment must not carry a fitting")
			}
		case KindFitting:
			if s.Fitting == nil || s.Fitting.Fitting == nil {
				return calcerr.MalformedSegment(op, s.ID, "fitting segment requires a fitting configuration")
			}
			if s.LengthFt != 0 {
				return calcerr.MalformedSegment(op, s.ID, "fitting segment must not carry a length")
			}
		default:
			return calcerr.MalformedSegment(op, s.ID, fmt.Sprintf("unknown segment kind %q", s.Kind))
		}

		if s.AirflowCFM <= 0 {
			e := calcerr.InvalidInput(op, "airflow_cfm", s.AirflowCFM, "airflow must be positive")
			e.SegmentID = s.ID
			return e
		}
		if s.Material != "" {
			if _, ok := a.limits.Roughness(s.Material); !ok {
				e := calcerr.InvalidInput(op, "material", string(s.Material), "unknown duct material")
				e.SegmentID = s.ID
				return e
			}
		}
	}
	return nil
}
