package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/system", strings.NewReader(body)))
	return rec
}

func TestHandlerAggregate(t *testing.T) {
	h := &Handler{Aggregator: New(nil)}
	rec := post(h, `{"name":"zone 2","segments":[
		{"id":"S1","kind":"straight","shape":"round","diameter_in":12,"length_ft":100,"airflow_cfm":1000},
		{"id":"F1","kind":"fitting","shape":"round","diameter_in":12,"airflow_cfm":1000,"fitting":{"type":"exit"}}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "zone 2", res.Name)
	assert.Len(t, res.Segments, 2)
	assert.InDelta(t, res.FrictionLoss+res.MinorLoss, res.TotalPressureLoss, 1e-12)
}

func TestHandlerErrors(t *testing.T) {
	h := &Handler{Aggregator: New(nil)}
	tests := []struct {
		name    string
		body    string
		status  int
		kind    string
		segment string
	}{
		{"malformed segment", `{"segments":[{"id":"S9","kind":"straight","shape":"round","length_ft":10,"airflow_cfm":100}]}`,
			http.StatusUnprocessableEntity, "malformed_segment", "S9"},
		{"zero airflow", `{"segments":[{"id":"S4","kind":"straight","shape":"round","diameter_in":8,"length_ft":10,"airflow_cfm":0}]}`,
			http.StatusBadRequest, "invalid_input", "S4"},
		{"empty", `{"segments":[]}`, http.StatusBadRequest, "invalid_input", ""},
		{"unknown fitting", `{"segments":[{"id":"F1","kind":"fitting","fitting":{"type":"wye"}}]}`,
			http.StatusBadRequest, "invalid_input", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body struct {
				Error struct {
					Kind      string `json:"kind"`
					SegmentID string `json:"segment_id"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Error.Kind)
			assert.Equal(t, tt.segment, body.Error.SegmentID)
		})
	}
}
