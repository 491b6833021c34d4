package velocity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureMatchesPublishedTable(t *testing.T) {
	tests := []struct {
		fpm  float64
		want float64
	}{
		{500, 0.0155},
		{1000, 0.0622},
		{1500, 0.1400},
		{2000, 0.2489},
		{2500, 0.3890},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Pressure(tt.fpm, 0.075), 0.001, "VP at %.0f FPM", tt.fpm)
	}
}

func TestPressureMonotonicInVelocity(t *testing.T) {
	prev := Pressure(0, 0.075)
	for v := 100.0; v <= 6000; v += 100 {
		cur := Pressure(v, 0.075)
		assert.Less(t, prev, cur, "VP must grow between %.0f and %.0f FPM", v-100, v)
		prev = cur
	}
}

func TestPressureLinearInDensity(t *testing.T) {
	base := Pressure(1200, 0.075)
	for _, k := range []float64{0.5, 0.8, 1.2, 2} {
		assert.InDelta(t, base*k, Pressure(1200, 0.075*k), 1e-12)
	}
}

func TestFromPressureRoundTrip(t *testing.T) {
	for _, v := range []float64{400, 1000, 2750} {
		for _, rho := range []float64{0.062, 0.075} {
			assert.InDelta(t, v, FromPressure(Pressure(v, rho), rho), 1e-9)
		}
	}
	assert.Equal(t, 0.0, FromPressure(0, 0.075))
	assert.Equal(t, 0.0, FromPressure(0.1, 0))
}
