package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/fitting"
	"Ducted/internal/calc/system"
)

var header = []any{"ID", "Kind", "Shape", "Diameter_in", "Width_in", "Height_in", "Length_ft", "Material", "Airflow_CFM", "Location", "Fitting", "Params"}

func workbook(t *testing.T, rows [][]any, settings [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "AHU-2"))
	require.NoError(t, f.SetSheetRow("AHU-2", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("AHU-2", cell, &row))
	}
	if settings != nil {
		_, err := f.NewSheet(SystemSheet)
		require.NoError(t, err)
		for i, row := range settings {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(SystemSheet, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var mainRows = [][]any{
	{"S1", "straight", "round", 12, "", "", 50, "galvanized_steel", 1000},
	{"F1", "fitting", "round", 12, "", "", "", "", 1000, "", "elbow", "radius_ratio=1.5;angle_deg=90"},
	{},
	{"S2", "straight", "rect", "", 16, 8, 30, "", 900, "occupied"},
	{"F2", "fitting", "rectangular", "", 16, 8, "", "", 900, "", "tee", "path=branch"},
}

func TestRead(t *testing.T) {
	top, err := Read(workbook(t, mainRows, nil))
	require.NoError(t, err)

	assert.Equal(t, "AHU-2", top.Name)
	assert.Nil(t, top.Conditions)
	require.Len(t, top.Segments, 4)

	assert.Equal(t, system.Segment{
		ID: "S1", Kind: system.KindStraight, Shape: duct.ShapeRound, DiameterIn: 12,
		LengthFt: 50, Material: duct.GalvanizedSteel, AirflowCFM: 1000,
	}, top.Segments[0])
	assert.Equal(t, &fitting.Elbow{RadiusRatio: 1.5, AngleDeg: 90}, top.Segments[1].Fitting.Fitting)
	assert.Equal(t, duct.Rectangular(16, 8), top.Segments[2].Geometry())
	assert.Equal(t, duct.LocationOccupied, top.Segments[2].Location)
	assert.Equal(t, &fitting.Tee{Path: fitting.PathBranch}, top.Segments[3].Fitting.Fitting)

	res, err := system.New(nil).Aggregate(top)
	require.NoError(t, err)
	assert.Equal(t, res.FrictionLoss+res.MinorLoss, res.TotalPressureLoss)
}

func TestReadSystemSheet(t *testing.T) {
	top, err := Read(workbook(t, mainRows, [][]any{
		{"name", "Level 3 return"},
		{"system_type", "Return"},
		{"altitude_ft", 5280},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Level 3 return", top.Name)
	assert.Equal(t, duct.Return, top.SystemType)
	require.NotNil(t, top.Conditions)
	assert.Equal(t, 70.0, top.Conditions.TemperatureF)
	assert.Equal(t, 5280.0, top.Conditions.AltitudeFt)

	_, err = Read(workbook(t, mainRows, [][]any{{"elevation", 100}}))
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestReadBadRows(t *testing.T) {
	tests := []struct {
		name    string
		row     []any
		segment string
	}{
		{"bad number", []any{"S9", "straight", "round", "twelve", "", "", 10, "", 100}, "S9"},
		{"bad shape", []any{"S9", "straight", "oval", 12, "", "", 10, "", 100}, "S9"},
		{"missing id", []any{"", "straight", "round", 12, "", "", 10, "", 100}, "row 3"},
		{"unknown fitting", []any{"F9", "fitting", "round", 12, "", "", "", "", 100, "", "wye"}, "F9"},
		{"bad params", []any{"F9", "fitting", "round", 12, "", "", "", "", 100, "", "elbow", "radius_ratio"}, "F9"},
		{"misspelled param", []any{"F9", "fitting", "round", 12, "", "", "", "", 100, "", "elbow", "ratio=1"}, "F9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(workbook(t, [][]any{mainRows[0], tt.row}, nil))
			var ce *calcerr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, calcerr.KindMalformedSegment, ce.Kind)
			assert.Equal(t, tt.segment, ce.SegmentID)
		})
	}
}

func TestReadRejectsWorkbook(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = Read(workbook(t, nil, nil))
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "kind", "shape"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"S1", "straight", "round"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	_, err = Read(buf)
	var ce *calcerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "header", ce.Field)
}

func upload(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "system.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/system/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlerSystem(t *testing.T) {
	h := &Handler{Aggregator: system.New(nil)}

	rec := httptest.NewRecorder()
	h.System(rec, upload(t, workbook(t, mainRows, nil).Bytes()))
	require.Equal(t, http.StatusOK, rec.Code)
	var res system.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Len(t, res.Segments, 4)
	assert.False(t, res.Compliance.ASHRAE)

	rec = httptest.NewRecorder()
	bad := [][]any{{"S1", "straight", "round", 12, 4, "", 50, "", 1000}}
	h.System(rec, upload(t, workbook(t, bad, nil).Bytes()))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	h.System(rec, httptest.NewRequest(http.MethodPost, "/api/system/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
