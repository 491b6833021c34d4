package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"Ducted/internal/calc/batch"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/compliance"
	"Ducted/internal/calc/fitting"
	"Ducted/internal/calc/sizing"
	"Ducted/internal/calc/system"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	stylePass    = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
)

// emit writes v as indented JSON, or calls text when --format text is set.
func (a *app) emit(v any, text func() error) error {
	if a.format == formatText {
		return text()
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// num rounds for display only.
func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func flag(ok bool) string {
	if ok {
		return stylePass.Render("pass")
	}
	return styleFail.Render("fail")
}

func complianceLine(f compliance.Flags) string {
	return fmt.Sprintf("SMACNA %s  ASHRAE %s", flag(f.SMACNA), flag(f.ASHRAE))
}

func writeWarnings(w io.Writer, ws []calcerr.Warning) {
	for _, wn := range ws {
		prefix := "!"
		if wn.SegmentID != "" {
			prefix += " " + wn.SegmentID
		}
		fmt.Fprintln(w, styleWarning.Render(prefix+" "+string(wn.Code)+": "+wn.Message))
	}
}

func sizeText(w io.Writer, r sizing.Result) error {
	t := newTable("Quantity", "Value").Rows(
		[]string{"Duct", r.Geometry.String()},
		[]string{"Method", string(r.Method)},
		[]string{"Material", string(r.Material)},
		[]string{"Area (ft²)", num(r.AreaFt2, 3)},
		[]string{"Velocity (FPM)", num(r.VelocityFPM, 0)},
		[]string{"Velocity pressure (in. w.g.)", num(r.VelocityPressure, 4)},
		[]string{"Friction (in. w.g./100 ft)", num(r.PressureLossPer100Ft, 4)},
		[]string{"Reynolds number", num(r.ReynoldsNumber, 0)},
		[]string{"Friction factor", num(r.FrictionFactor, 4)},
		[]string{"Equivalent diameter (in)", num(r.EquivalentDiameterIn, 1)},
		[]string{"Aspect ratio", num(r.AspectRatio, 2)},
		[]string{"Air density (lb/ft³)", num(r.Air.Density, 4)},
	)
	fmt.Fprintln(w, styleTitle.Render("Duct size"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, complianceLine(r.Compliance))
	writeWarnings(w, r.Warnings)
	return nil
}

func batchText(w io.Writer, r batch.Result) error {
	t := newTable("#", "Duct", "Velocity (FPM)", "Friction (in./100 ft)", "Compliance", "Error")
	for _, it := range r.Items {
		if it.Error != nil {
			t.Row(strconv.Itoa(it.Index), "", "", "", "", styleFail.Render(it.Error.Message))
			continue
		}
		res := it.Result
		t.Row(strconv.Itoa(it.Index), res.Geometry.String(), num(res.VelocityFPM, 0),
			num(res.PressureLossPer100Ft, 4), complianceLine(res.Compliance), "")
	}
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Batch: %d sized, %d failed", r.Succeeded, r.Failed)))
	fmt.Fprintln(w, t.Render())
	return nil
}

func fittingText(w io.Writer, r fitting.Result) error {
	k := num(r.KFactor, 3)
	if !r.Resolved {
		k += " (default)"
	}
	t := newTable("Quantity", "Value").Rows(
		[]string{"Fitting", string(r.Type)},
		[]string{"K-factor", k},
		[]string{"Velocity (FPM)", num(r.VelocityFPM, 0)},
		[]string{"Velocity pressure (in. w.g.)", num(r.VelocityPressure, 4)},
		[]string{"Pressure loss (in. w.g.)", num(r.PressureLoss, 4)},
	)
	fmt.Fprintln(w, t.Render())
	writeWarnings(w, r.Warnings)
	return nil
}

func catalogText(w io.Writer, entries []fitting.CatalogEntry) error {
	t := newTable("Type", "Parameters", "Description")
	for _, e := range entries {
		t.Row(string(e.Type), strings.Join(e.Params, ", "), e.Description)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func systemText(w io.Writer, r system.Result) error {
	t := newTable("Segment", "Kind", "Duct", "CFM", "FPM", "K", "Friction", "Minor", "Loss")
	for i, s := range r.Segments {
		id := s.ID
		if i == r.Critical {
			id += " *"
		}
		k := ""
		if s.Kind == system.KindFitting {
			k = num(s.KFactor, 3)
		}
		t.Row(id, string(s.Kind), s.Geometry.String(), num(s.AirflowCFM, 0), num(s.VelocityFPM, 0),
			k, num(s.FrictionLoss, 4), num(s.MinorLoss, 4), num(s.PressureLoss, 4))
	}
	title := "System"
	if r.Name != "" {
		title += " " + r.Name
	}
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s (%s)", title, r.SystemType)))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Friction %s + minor %s = total %s in. w.g.\n",
		num(r.FrictionLoss, 4), num(r.MinorLoss, 4), num(r.TotalPressureLoss, 4))
	fmt.Fprintf(w, "Velocity max %s FPM, average %s FPM\n", num(r.MaxVelocityFPM, 0), num(r.AverageVelocityFPM, 0))
	fmt.Fprintln(w, complianceLine(r.Compliance))
	writeWarnings(w, r.Warnings)
	return nil
}
