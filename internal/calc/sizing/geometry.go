package sizing

import (
	"math"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
)

// fp slack so that 12.0000000001 still rounds to 12.
const slack = 1e-9

// DiameterForArea is the round diameter in inches with the given area in ft².
func DiameterForArea(areaFt2 float64) float64 {
	return math.Sqrt(areaFt2*4.0/math.Pi) * 12.0
}

// StandardDiameter rounds req up to the standard series. Past the end of
// the series it keeps stepping by the series' last increment and reports
// false.
func (c *Calculator) StandardDiameter(req float64) (float64, bool) {
	sizes := c.limits.RoundSizes()
	for _, d := range sizes {
		if d >= req-slack {
			return d, true
		}
	}
	last := sizes[len(sizes)-1]
	step := last
	if len(sizes) > 1 {
		step = last - sizes[len(sizes)-2]
	}
	n := math.Max(1, math.Ceil((req-last)/step-slack))
	return last + step*n, false
}

// nextDiameter is the first size in the series above d, continuing past the
// end of the series by its last increment.
func (c *Calculator) nextDiameter(d float64) float64 {
	sizes := c.limits.RoundSizes()
	for _, s := range sizes {
		if s > d+slack {
			return s
		}
	}
	last := sizes[len(sizes)-1]
	step := last
	if len(sizes) > 1 {
		step = last - sizes[len(sizes)-2]
	}
	return d + step
}

func ceilTo(x, inc float64) float64 {
	if inc <= 0 {
		return x
	}
	return inc * math.Ceil(x/inc-slack)
}

func (c *Calculator) roundForArea(areaFt2 float64, con Constraints) (duct.Geometry, []calcerr.Warning) {
	var ws []calcerr.Warning
	req := DiameterForArea(areaFt2)
	d, inSeries := c.StandardDiameter(req)
	if !inSeries {
		w := calcerr.Warn(calcerr.WarnBeyondStandardSize,
			"required diameter %.1f in is beyond the standard size series; using %.0f in", req, d)
		w.Actual = req
		ws = append(ws, w)
	}
	if con.MaxDiameterIn > 0 && d > con.MaxDiameterIn {
		w := calcerr.Warn(calcerr.WarnConstraintApplied,
			"diameter limited from %.0f in to the %.0f in constraint; velocity rises accordingly", d, con.MaxDiameterIn)
		w.Actual, w.Limit = d, con.MaxDiameterIn
		ws = append(ws, w)
		d = con.MaxDiameterIn
	}
	return duct.Round(d), ws
}

// rectForArea derives W×H at aspect ratio r = W/H, rounding both sides up
// to the rectangular increment. A height constraint fixes H and widens W.
func (c *Calculator) rectForArea(areaFt2, r float64, con Constraints) (duct.Geometry, []calcerr.Warning) {
	var ws []calcerr.Warning
	inc := c.limits.RectIncrement()
	areaIn2 := areaFt2 * 144.0

	h := math.Sqrt(areaIn2 / r)
	w := r * h
	if con.MaxHeightIn > 0 && h > con.MaxHeightIn {
		wn := calcerr.Warn(calcerr.WarnConstraintApplied,
			"height limited from %.1f in to the %.0f in constraint; width increased", h, con.MaxHeightIn)
		wn.Actual, wn.Limit = h, con.MaxHeightIn
		ws = append(ws, wn)
		h = con.MaxHeightIn
		w = areaIn2 / h
		return duct.Rectangular(ceilTo(w, inc), h), ws
	}
	return duct.Rectangular(ceilTo(w, inc), ceilTo(h, inc)), ws
}

// searchFrictionRate finds the smallest duct whose loss per 100 ft does not
// exceed the requested rate. The search is bounded by the table's maximum
// dimension and any caller constraint.
func (c *Calculator) searchFrictionRate(in Input, props air.Properties) (duct.Geometry, []calcerr.Warning, error) {
	fits := func(g duct.Geometry) (bool, error) {
		f, err := c.Friction(g, in.AirflowCFM/g.AreaFt2(), in.Material, props)
		if err != nil {
			return false, err
		}
		return f.LossPer100Ft <= in.FrictionRate, nil
	}
	if in.Shape == duct.ShapeRound {
		return c.searchRound(in.Constraints, fits)
	}
	return c.searchRect(in.AspectRatio, in.Constraints, fits)
}

func (c *Calculator) searchRound(con Constraints, fits func(duct.Geometry) (bool, error)) (duct.Geometry, []calcerr.Warning, error) {
	limit := c.limits.MaxDimension()
	if con.MaxDiameterIn > 0 && con.MaxDiameterIn < limit {
		limit = con.MaxDiameterIn
	}
	var ws []calcerr.Warning
	candidates := c.limits.RoundSizes()
	seriesEnd := candidates[len(candidates)-1]
	d := math.Min(candidates[0], limit)
	for {
		ok, err := fits(duct.Round(d))
		if err != nil {
			return duct.Geometry{}, nil, err
		}
		if ok {
			if d > seriesEnd {
				ws = append(ws, calcerr.Warn(calcerr.WarnBeyondStandardSize,
					"diameter %.0f in is beyond the standard size series", d))
			}
			return duct.Round(d), ws, nil
		}
		next := c.nextDiameter(d)
		if next > limit {
			ws = append(ws, capWarning(d, limit, con.MaxDiameterIn))
			return duct.Round(d), ws, nil
		}
		d = next
	}
}

func (c *Calculator) searchRect(r float64, con Constraints, fits func(duct.Geometry) (bool, error)) (duct.Geometry, []calcerr.Warning, error) {
	inc := c.limits.RectIncrement()
	step := inc
	if step <= 0 {
		step = 1
	}
	limit := c.limits.MaxDimension()

	var last duct.Geometry
	for h := step; ; h += step {
		if con.MaxHeightIn > 0 && h > con.MaxHeightIn {
			break
		}
		w := ceilTo(r*h, inc)
		if last.Shape != "" && (w > limit || h > limit) {
			return last, []calcerr.Warning{capWarning(math.Max(last.WidthIn, last.HeightIn), limit, 0)}, nil
		}
		last = duct.Rectangular(w, h)
		ok, err := fits(last)
		if err != nil {
			return duct.Geometry{}, nil, err
		}
		if ok {
			return last, nil, nil
		}
	}

	// Height is capped: widen at the constrained height instead.
	h := con.MaxHeightIn
	wn := calcerr.Warn(calcerr.WarnConstraintApplied,
		"height held at the %.0f in constraint; width increased to meet the friction rate", h)
	wn.Limit = h
	ws := []calcerr.Warning{wn}
	for w := ceilTo(math.Max(r*h, step), inc); ; w += step {
		if last.Shape != "" && w > limit {
			return last, append(ws, capWarning(last.WidthIn, limit, 0)), nil
		}
		last = duct.Rectangular(w, h)
		ok, err := fits(last)
		if err != nil {
			return duct.Geometry{}, nil, err
		}
		if ok {
			return last, ws, nil
		}
	}
}

func capWarning(size, limit, constraint float64) calcerr.Warning {
	w := calcerr.Warn(calcerr.WarnSizeCap,
		"no duct up to %.0f in meets the friction rate; using %.0f in", limit, size)
	if constraint > 0 && constraint <= limit {
		w.Code = calcerr.WarnConstraintApplied
	}
	w.Actual, w.Limit = size, limit
	return w
}
