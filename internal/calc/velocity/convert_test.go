package velocity

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
)

func TestConvert(t *testing.T) {
	res, err := Convert(Input{VelocityFPM: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 0.0622, res.VelocityPressure, 0.001)
	assert.InDelta(t, air.StandardDensity, res.Density, 1e-4)

	back, err := Convert(Input{VelocityPressure: res.VelocityPressure})
	require.NoError(t, err)
	assert.InDelta(t, 1000, back.VelocityFPM, 1e-6)

	thin, err := Convert(Input{VelocityFPM: 1000, Conditions: &air.Conditions{TemperatureF: 70, AltitudeFt: 5000}})
	require.NoError(t, err)
	assert.Less(t, thin.VelocityPressure, res.VelocityPressure)
}

func TestConvertRejects(t *testing.T) {
	for _, in := range []Input{
		{},
		{VelocityFPM: 1000, VelocityPressure: 0.1},
		{VelocityFPM: -1},
		{VelocityPressure: -0.2},
	} {
		_, err := Convert(in)
		assert.ErrorIs(t, err, calcerr.ErrInvalidInput, "%+v", in)
	}
}

func TestHandlerCalc(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/api/velocity-pressure",
		strings.NewReader(`{"velocity_fpm": 2000}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"velocity_pressure_in_wg":0.24`)
}
