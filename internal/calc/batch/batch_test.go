package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/sizing"
)

func TestSizeReportsFailuresInPlace(t *testing.T) {
	s := sizing.New(nil)
	res, err := Size(s, Input{Items: []sizing.Input{
		{AirflowCFM: 1000, TargetVelocityFPM: 1000},
		{AirflowCFM: -5, TargetVelocityFPM: 1000},
		{AirflowCFM: 2000, Shape: duct.ShapeRectangular, TargetVelocityFPM: 1000},
		{AirflowCFM: 500, TargetVelocityFPM: 800, FrictionRate: 0.1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Items, 4)

	for i, item := range res.Items {
		assert.Equal(t, i, item.Index)
	}
	require.NotNil(t, res.Items[0].Result)
	assert.Equal(t, duct.Round(14), res.Items[0].Result.Geometry)
	assert.Equal(t, duct.Rectangular(24, 12), res.Items[2].Result.Geometry)

	require.NotNil(t, res.Items[1].Error)
	assert.Equal(t, calcerr.KindInvalidInput, res.Items[1].Error.Kind)
	assert.Equal(t, "airflow_cfm", res.Items[1].Error.Field)
	assert.Nil(t, res.Items[1].Result)
	assert.Equal(t, "method", res.Items[3].Error.Field)
}

func TestSizeMatchesSingleCalls(t *testing.T) {
	s := sizing.New(nil)
	items := []sizing.Input{
		{AirflowCFM: 350, FrictionRate: 0.08},
		{AirflowCFM: 4200, Shape: duct.ShapeRectangular, FrictionRate: 0.1, AspectRatio: 3},
	}
	res, err := Size(s, Input{Items: items})
	require.NoError(t, err)
	for i, in := range items {
		want, err := s.Size(in)
		require.NoError(t, err)
		assert.Equal(t, want, *res.Items[i].Result)
	}
}

func TestSizeRejectsEmpty(t *testing.T) {
	_, err := Size(sizing.New(nil), Input{})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = Size(sizing.New(nil), Input{Items: make([]sizing.Input, MaxItems+1)})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestHandlerSize(t *testing.T) {
	h := &Handler{Sizer: sizing.New(nil)}
	rec := httptest.NewRecorder()
	h.Size(rec, httptest.NewRequest(http.MethodPost, "/api/size/batch",
		strings.NewReader(`{"items":[{"airflow_cfm":1000,"target_velocity_fpm":1000},{"airflow_cfm":0,"target_velocity_fpm":1000}]}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)

	rec = httptest.NewRecorder()
	h.Size(rec, httptest.NewRequest(http.MethodPost, "/api/size/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
