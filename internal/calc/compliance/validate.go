package compliance

import (
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/standards"
)

// Subject is the part of a sized duct the rules look at.
type Subject struct {
	VelocityFPM float64    `json:"velocity_fpm"`
	Shape       duct.Shape `json:"shape"`
	WidthIn     float64    `json:"width_in,omitempty"`
	HeightIn    float64    `json:"height_in,omitempty"`
}

func SubjectOf(g duct.Geometry, velocityFPM float64) Subject {
	return Subject{VelocityFPM: velocityFPM, Shape: g.Shape, WidthIn: g.WidthIn, HeightIn: g.HeightIn}
}

type Flags struct {
	SMACNA bool `json:"smacna"`
	ASHRAE bool `json:"ashrae"`
}

type Report struct {
	Warnings   []calcerr.Warning `json:"warnings"`
	Compliance Flags             `json:"compliance"`
}

// Merge ANDs the flags and concatenates warnings.
func (r Report) Merge(other Report) Report {
	return Report{
		Warnings: append(append([]calcerr.Warning{}, r.Warnings...), other.Warnings...),
		Compliance: Flags{
			SMACNA: r.Compliance.SMACNA && other.Compliance.SMACNA,
			ASHRAE: r.Compliance.ASHRAE && other.Compliance.ASHRAE,
		},
	}
}

// Compliant is the neutral element for Merge.
func Compliant() Report {
	return Report{Warnings: []calcerr.Warning{}, Compliance: Flags{SMACNA: true, ASHRAE: true}}
}

type Validator struct {
	limits *standards.Limits
}

// New returns a validator reading limits, or the built-in table when nil.
func New(limits *standards.Limits) *Validator {
	if limits == nil {
		limits = standards.Default()
	}
	return &Validator{limits: limits}
}

// Validate applies each rule independently. It never fails: a rule that
// does not hold lowers a flag and adds a warning.
func (v *Validator) Validate(s Subject, st duct.SystemType, loc duct.Location) Report {
	r := Compliant()

	if limit, ok := v.limits.VelocityLimit(st); ok {
		if s.VelocityFPM > limit {
			r.Compliance.SMACNA = false
			w := calcerr.Warn(calcerr.WarnVelocityLimit,
				"velocity %.0f FPM exceeds the SMACNA %s duct limit of %.0f FPM", s.VelocityFPM, st, limit)
			w.Actual, w.Limit = s.VelocityFPM, limit
			r.Warnings = append(r.Warnings, w)
		}
	} else {
		r.Warnings = append(r.Warnings, calcerr.Warn(calcerr.WarnUnknownSystemType,
			"no SMACNA velocity limit is defined for system type %q", st))
	}

	if s.Shape == duct.ShapeRectangular {
		g := duct.Rectangular(s.WidthIn, s.HeightIn)
		ar, limit := g.AspectRatio(), v.limits.MaxAspectRatio()
		if ar > limit {
			r.Compliance.SMACNA = false
			w := calcerr.Warn(calcerr.WarnAspectRatio,
				"aspect ratio %.2f:1 exceeds the SMACNA limit of %.0f:1", ar, limit)
			w.Actual, w.Limit = ar, limit
			r.Warnings = append(r.Warnings, w)
		}
	}

	if loc == duct.LocationOccupied {
		limit := v.limits.OccupiedVelocityLimit()
		if s.VelocityFPM > limit {
			r.Compliance.ASHRAE = false
			w := calcerr.Warn(calcerr.WarnOccupiedVelocity,
				"velocity %.0f FPM exceeds the ASHRAE occupied-space comfort limit of %.0f FPM", s.VelocityFPM, limit)
			w.Actual, w.Limit = s.VelocityFPM, limit
			r.Warnings = append(r.Warnings, w)
		}
	}

	return r
}
