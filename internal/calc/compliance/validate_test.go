package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/standards"
)

func TestVelocityCeilingPerSystemType(t *testing.T) {
	v := New(nil)
	tests := []struct {
		st   duct.SystemType
		fpm  float64
		want bool
	}{
		{duct.Supply, 2500, true},
		{duct.Supply, 2501, false},
		{duct.Return, 2000, true},
		{duct.Return, 2100, false},
		{duct.Exhaust, 2900, true},
		{duct.Exhaust, 3100, false},
	}
	for _, tt := range tests {
		r := v.Validate(Subject{VelocityFPM: tt.fpm, Shape: duct.ShapeRound}, tt.st, duct.LocationUnspecified)
		assert.Equal(t, tt.want, r.Compliance.SMACNA, "%s at %.0f", tt.st, tt.fpm)
		assert.Equal(t, !tt.want, calcerr.HasCode(r.Warnings, calcerr.WarnVelocityLimit))
		assert.True(t, r.Compliance.ASHRAE)
	}
}

func TestAspectRatioRule(t *testing.T) {
	v := New(nil)

	ok := v.Validate(Subject{VelocityFPM: 1000, Shape: duct.ShapeRectangular, WidthIn: 40, HeightIn: 10}, duct.Supply, "")
	assert.True(t, ok.Compliance.SMACNA)

	bad := v.Validate(Subject{VelocityFPM: 1000, Shape: duct.ShapeRectangular, WidthIn: 10, HeightIn: 50}, duct.Supply, "")
	assert.False(t, bad.Compliance.SMACNA)
	require.Len(t, bad.Warnings, 1)
	assert.Equal(t, calcerr.WarnAspectRatio, bad.Warnings[0].Code)
	assert.Equal(t, 5.0, bad.Warnings[0].Actual)
}

func TestOccupiedSpaceRule(t *testing.T) {
	v := New(nil)

	r := v.Validate(Subject{VelocityFPM: 900, Shape: duct.ShapeRound}, duct.Supply, duct.LocationOccupied)
	assert.True(t, r.Compliance.SMACNA)
	assert.False(t, r.Compliance.ASHRAE)
	assert.True(t, calcerr.HasCode(r.Warnings, calcerr.WarnOccupiedVelocity))

	r = v.Validate(Subject{VelocityFPM: 900, Shape: duct.ShapeRound}, duct.Supply, duct.LocationUnoccupied)
	assert.True(t, r.Compliance.ASHRAE)
}

func TestRulesAreAdditive(t *testing.T) {
	v := New(nil)
	r := v.Validate(Subject{VelocityFPM: 2600, Shape: duct.ShapeRectangular, WidthIn: 60, HeightIn: 10}, duct.Supply, duct.LocationOccupied)

	assert.False(t, r.Compliance.SMACNA)
	assert.False(t, r.Compliance.ASHRAE)
	assert.Len(t, r.Warnings, 3)
}

func TestUnknownSystemTypeDoesNotFail(t *testing.T) {
	r := New(nil).Validate(Subject{VelocityFPM: 9000, Shape: duct.ShapeRound}, "process", "")
	assert.True(t, r.Compliance.SMACNA)
	assert.True(t, calcerr.HasCode(r.Warnings, calcerr.WarnUnknownSystemType))
}

func TestInjectedLimits(t *testing.T) {
	s := standards.DefaultSpec()
	s.VelocityMaxFPM[duct.Supply] = 1800
	l, err := standards.New(s)
	require.NoError(t, err)

	r := New(l).Validate(Subject{VelocityFPM: 2000, Shape: duct.ShapeRound}, duct.Supply, "")
	assert.False(t, r.Compliance.SMACNA)

	r = New(nil).Validate(Subject{VelocityFPM: 2000, Shape: duct.ShapeRound}, duct.Supply, "")
	assert.True(t, r.Compliance.SMACNA)
}

func TestMerge(t *testing.T) {
	a := Compliant()
	b := Report{
		Warnings:   []calcerr.Warning{calcerr.Warn(calcerr.WarnVelocityLimit, "x")},
		Compliance: Flags{SMACNA: false, ASHRAE: true},
	}
	m := a.Merge(b)
	assert.False(t, m.Compliance.SMACNA)
	assert.True(t, m.Compliance.ASHRAE)
	assert.Len(t, m.Warnings, 1)
	assert.Empty(t, a.Warnings)
}
