package standards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ducted/internal/calc/duct"
)

func TestDefaultTable(t *testing.T) {
	l := Default()

	v, ok := l.VelocityLimit(duct.Supply)
	require.True(t, ok)
	assert.Equal(t, 2500.0, v)
	v, _ = l.VelocityLimit(duct.Return)
	assert.Equal(t, 2000.0, v)
	v, _ = l.VelocityLimit(duct.Exhaust)
	assert.Equal(t, 3000.0, v)

	assert.Equal(t, 750.0, l.OccupiedVelocityLimit())
	assert.Equal(t, 4.0, l.MaxAspectRatio())
	assert.Equal(t, 2.0, l.DefaultAspectRatio())
	assert.Equal(t, 0.5, l.DefaultK())
	assert.Equal(t, duct.GalvanizedSteel, l.DefaultMaterial())

	for _, m := range []duct.Material{duct.GalvanizedSteel, duct.StainlessSteel, duct.Aluminum, duct.PVC, duct.Fiberglass} {
		_, ok := l.Roughness(m)
		assert.True(t, ok, "roughness for %s", m)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	l := Default()

	sizes := l.RoundSizes()
	sizes[0] = 999
	assert.Equal(t, 6.0, l.RoundSizes()[0])

	c, ok := l.KCurve(KeyElbowRound)
	require.True(t, ok)
	c[0].K = 99
	c2, _ := l.KCurve(KeyElbowRound)
	assert.Equal(t, 0.71, c2[0].K)

	s := l.Spec()
	s.VelocityMaxFPM[duct.Supply] = 1
	v, _ := l.VelocityLimit(duct.Supply)
	assert.Equal(t, 2500.0, v)
}

func TestNewRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"descending sizes", func(s *Spec) { s.RoundSizesIn = []float64{8, 6} }},
		{"empty sizes", func(s *Spec) { s.RoundSizesIn = nil }},
		{"negative velocity", func(s *Spec) { s.VelocityMaxFPM[duct.Supply] = -1 }},
		{"aspect below one", func(s *Spec) { s.MaxAspectRatio = 0.5 }},
		{"unknown default material", func(s *Spec) { s.DefaultMaterial = "wood" }},
		{"unsorted curve", func(s *Spec) { s.KCurves["x"] = Curve{{2, 1}, {1, 1}} }},
		{"cap below largest size", func(s *Spec) { s.MaxDimensionIn = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSpec()
			tt.mutate(&s)
			_, err := New(s)
			assert.Error(t, err)
		})
	}
}

func TestCurveAt(t *testing.T) {
	c := Curve{{0, 0}, {10, 1}, {20, 3}}

	k, ok := c.At(5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, k, 1e-12)

	k, ok = c.At(20)
	require.True(t, ok)
	assert.Equal(t, 3.0, k)

	_, ok = c.At(25)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)

	single := Curve{{90, 0.11}}
	k, ok = single.At(90)
	require.True(t, ok)
	assert.Equal(t, 0.11, k)
	_, ok = single.At(45)
	assert.False(t, ok)
}

func TestParseOverrides(t *testing.T) {
	l, err := Parse([]byte(`
version: regional-eu
velocity_max_fpm:
  supply: 2000
occupied_max_fpm: 600
roughness_ft:
  concrete: 0.004
k_constants:
  exit: 0.9
`))
	require.NoError(t, err)

	assert.Equal(t, "regional-eu", l.Version())
	v, _ := l.VelocityLimit(duct.Supply)
	assert.Equal(t, 2000.0, v)
	v, _ = l.VelocityLimit(duct.Return)
	assert.Equal(t, 2000.0, v, "unlisted entries keep defaults")
	assert.Equal(t, 600.0, l.OccupiedVelocityLimit())
	e, ok := l.Roughness("concrete")
	require.True(t, ok)
	assert.Equal(t, 0.004, e)
	k, _ := l.KConstant(KeyExit)
	assert.Equal(t, 0.9, k)

	d, _ := Default().VelocityLimit(duct.Supply)
	assert.Equal(t, 2500.0, d, "overrides must not leak into the shared default")
}

func TestParseRejectsUnknownFieldsAndBadValues(t *testing.T) {
	_, err := Parse([]byte("velocity_limit: 3\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("max_aspect_ratio: 0\n"))
	assert.Error(t, err)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	l, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, l.Version())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_k: 0.8\n"), 0o600))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, l.DefaultK())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
