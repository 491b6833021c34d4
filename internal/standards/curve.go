package standards

import "fmt"

// Point is one tabulated (parameter, K) pair.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	K float64 `json:"k" yaml:"k"`
}

// Curve is a K-factor table over one parameter, sorted by X.
type Curve []Point

func (c Curve) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("curve is empty")
	}
	for i, p := range c {
		if p.K < 0 {
			return fmt.Errorf("point %d has negative K %g", i, p.K)
		}
		if i > 0 && p.X <= c[i-1].X {
			return fmt.Errorf("points must be strictly ascending in x at index %d", i)
		}
	}
	return nil
}

// At interpolates linearly between tabulated points. It reports false when
// x lies outside the tabulated range; there is no extrapolation.
func (c Curve) At(x float64) (float64, bool) {
	if len(c) == 0 || x < c[0].X || x > c[len(c)-1].X {
		return 0, false
	}
	for i := 1; i < len(c); i++ {
		if x <= c[i].X {
			lo, hi := c[i-1], c[i]
			t := (x - lo.X) / (hi.X - lo.X)
			return lo.K + t*(hi.K-lo.K), true
		}
	}
	return c[0].K, true
}
