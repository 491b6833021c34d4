package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ducted/internal/calc/calcerr"
)

func body(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Error
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var v struct {
		AirflowCFM float64 `json:"airflow_cfm"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"airflow_cfm": 400}`))
	require.NoError(t, Decode(httptest.NewRecorder(), r, &v))
	assert.Equal(t, 400.0, v.AirflowCFM)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"airflow": 400}`))
	assert.Error(t, Decode(httptest.NewRecorder(), r, &v))
}

func TestDecodeLimitsBody(t *testing.T) {
	var v map[string]string
	big := `{"x":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	assert.Error(t, Decode(httptest.NewRecorder(), r, &v))
}

func TestBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", body(t, rec).Kind)

	rec = httptest.NewRecorder()
	BadRequest(rec, calcerr.InvalidInput("fitting.decode", "type", "wye", "unknown fitting type"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	b := body(t, rec)
	assert.Equal(t, string(calcerr.KindInvalidInput), b.Kind)
	assert.Equal(t, "type", b.Field)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		segment string
	}{
		{"invalid input", calcerr.InvalidInput("sizing", "airflow_cfm", -1, "must be positive"), http.StatusBadRequest, string(calcerr.KindInvalidInput), ""},
		{"malformed segment", calcerr.MalformedSegment("system", "S3", "length must be positive"), http.StatusUnprocessableEntity, string(calcerr.KindMalformedSegment), "S3"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, log.New(io.Discard), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			b := body(t, rec)
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.segment, b.SegmentID)
		})
	}
}

func TestFailHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, nil, errors.New("nil pointer in solver"))
	assert.NotContains(t, rec.Body.String(), "solver")
}
