// Package importer reads a duct topology from an Excel workbook.
//
// The first sheet holds one segment per row under a header row. Column
// order is free; names are matched case-insensitively:
//
//	id | kind | shape | diameter_in | width_in | height_in | length_ft |
//	material | airflow_cfm | location | fitting | params
//
// "fitting" is the fitting type and "params" its parameters written as
// key=value pairs separated by semicolons, e.g. "radius_ratio=1.5;angle_deg=45".
// An optional sheet named "system" holds key/value rows for name,
// system_type, temperature_f, altitude_ft, barometric_in_hg and
// relative_humidity.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/fitting"
	"Ducted/internal/calc/system"
)

const (
	op          = "importer.read"
	SystemSheet = "system"
)

var requiredColumns = []string{"id", "kind", "shape", "airflow_cfm"}

// Read parses a workbook into a topology. A row that cannot be parsed is a
// MalformedSegment carrying the row's segment id, or "row N" when the id
// cell is empty.
func Read(r io.Reader) (system.Topology, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return system.Topology{}, calcerr.InvalidInput(op, "file", nil, "not a readable xlsx workbook: "+err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if strings.EqualFold(sheet, SystemSheet) && f.SheetCount > 1 {
		sheet = f.GetSheetName(1)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return system.Topology{}, calcerr.InvalidInput(op, "file", sheet, err.Error())
	}
	if len(rows) < 2 {
		return system.Topology{}, calcerr.InvalidInput(op, "segments", sheet, "sheet has no segment rows")
	}

	cols := headerIndex(rows[0])
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return system.Topology{}, calcerr.InvalidInput(op, "header", c, "required column is missing")
		}
	}

	t := system.Topology{Name: sheet}
	if err := readSystemSheet(f, &t); err != nil {
		return system.Topology{}, err
	}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		seg, err := parseSegmentRow(cols, rows[i])
		if err != nil {
			id := seg.ID
			if id == "" {
				id = fmt.Sprintf("row %d", i+1)
			}
			return system.Topology{}, calcerr.MalformedSegment(op, id, err.Error())
		}
		t.Segments = append(t.Segments, seg)
	}
	return t, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseSegmentRow returns the segment parsed so far along with any error so
// that the caller can name the row by its id.
func parseSegmentRow(cols map[string]int, row []string) (system.Segment, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(name string) (float64, error) {
		s := cell(name)
		if s == "" {
			return 0, nil
		}
		v, err := toFloat(s)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a number", name, s)
		}
		return v, nil
	}

	seg := system.Segment{
		ID:       cell("id"),
		Kind:     system.Kind(strings.ToLower(cell("kind"))),
		Material: duct.Material(strings.ToLower(cell("material"))),
		Location: duct.Location(strings.ToLower(cell("location"))),
	}
	if seg.ID == "" {
		return seg, fmt.Errorf("id is empty")
	}
	shape, err := duct.ParseShape(cell("shape"))
	if err != nil {
		return seg, err
	}
	seg.Shape = shape

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"diameter_in", &seg.DiameterIn},
		{"width_in", &seg.WidthIn},
		{"height_in", &seg.HeightIn},
		{"length_ft", &seg.LengthFt},
		{"airflow_cfm", &seg.AirflowCFM},
	} {
		v, err := number(f.name)
		if err != nil {
			return seg, err
		}
		*f.dst = v
	}

	if typ := cell("fitting"); typ != "" {
		cfg, err := fitting.ParseInline(typ, cell("params"))
		if err != nil {
			return seg, err
		}
		seg.Fitting = &cfg
	}
	return seg, nil
}

func readSystemSheet(f *excelize.File, t *system.Topology) error {
	idx, err := f.GetSheetIndex(SystemSheet)
	if err != nil || idx < 0 {
		return nil
	}
	rows, err := f.GetRows(SystemSheet)
	if err != nil {
		return calcerr.InvalidInput(op, SystemSheet, nil, err.Error())
	}
	c := air.StandardConditions()
	hasConditions := false
	for _, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		key, val := strings.ToLower(strings.TrimSpace(row[0])), strings.TrimSpace(row[1])
		switch key {
		case "name":
			t.Name = val
			continue
		case "system_type":
			t.SystemType = duct.SystemType(strings.ToLower(val))
			continue
		}
		var dst *float64
		switch key {
		case "temperature_f":
			dst = &c.TemperatureF
		case "altitude_ft":
			dst = &c.AltitudeFt
		case "barometric_in_hg":
			dst = &c.BarometricInHg
		case "relative_humidity":
			dst = &c.RelativeHumidity
		default:
			return calcerr.InvalidInput(op, SystemSheet, key, "unknown system setting")
		}
		v, err := toFloat(val)
		if err != nil {
			return calcerr.InvalidInput(op, key, val, "not a number")
		}
		*dst = v
		hasConditions = true
	}
	if hasConditions {
		t.Conditions = &c
	}
	return nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
