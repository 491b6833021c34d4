package duct

import (
	"fmt"
	"math"
	"strings"
)

type Shape string

const (
	ShapeRound       Shape = "round"
	ShapeRectangular Shape = "rectangular"
)

type Material string

const (
	GalvanizedSteel Material = "galvanized_steel"
	StainlessSteel  Material = "stainless_steel"
	Aluminum        Material = "aluminum"
	PVC             Material = "pvc"
	Fiberglass      Material = "fiberglass"
	Flexible        Material = "flexible"
)

type SystemType string

const (
	Supply  SystemType = "supply"
	Return  SystemType = "return"
	Exhaust SystemType = "exhaust"
)

type Location string

const (
	LocationUnspecified Location = ""
	LocationOccupied    Location = "occupied"
	LocationUnoccupied  Location = "unoccupied"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeRound:
		return ShapeRound, nil
	case ShapeRectangular, "rect":
		return ShapeRectangular, nil
	}
	return "", fmt.Errorf("unknown duct shape %q", s)
}

// Geometry is a duct cross-section in inches. Round sections carry only
// DiameterIn, rectangular sections only WidthIn and HeightIn.
type Geometry struct {
	Shape      Shape   `json:"shape" yaml:"shape"`
	DiameterIn float64 `json:"diameter_in,omitempty" yaml:"diameter_in,omitempty"`
	WidthIn    float64 `json:"width_in,omitempty" yaml:"width_in,omitempty"`
	HeightIn   float64 `json:"height_in,omitempty" yaml:"height_in,omitempty"`
}

func Round(diameterIn float64) Geometry {
	return Geometry{Shape: ShapeRound, DiameterIn: diameterIn}
}

func Rectangular(widthIn, heightIn float64) Geometry {
	return Geometry{Shape: ShapeRectangular, WidthIn: widthIn, HeightIn: heightIn}
}

// Check reports the first way the geometry disagrees with its declared shape.
func (g Geometry) Check() error {
	switch g.Shape {
	case ShapeRound:
		if g.DiameterIn <= 0 {
			return fmt.Errorf("round duct requires a positive diameter")
		}
		if g.WidthIn != 0 || g.HeightIn != 0 {
			return fmt.Errorf("round duct must not carry width or height")
		}
	case ShapeRectangular:
		if g.WidthIn <= 0 || g.HeightIn <= 0 {
			return fmt.Errorf("rectangular duct requires positive width and height")
		}
		if g.DiameterIn != 0 {
			return fmt.Errorf("rectangular duct must not carry a diameter")
		}
	case "":
		return fmt.Errorf("duct shape is missing")
	default:
		return fmt.Errorf("unknown duct shape %q", g.Shape)
	}
	return nil
}

// AreaFt2 is the flow area in square feet.
func (g Geometry) AreaFt2() float64 {
	if g.Shape == ShapeRound {
		d := g.DiameterIn / 12.0
		return math.Pi * d * d / 4.0
	}
	return (g.WidthIn / 12.0) * (g.HeightIn / 12.0)
}

// HydraulicDiameterIn is 4A/P; equal to the diameter for round ducts.
func (g Geometry) HydraulicDiameterIn() float64 {
	if g.Shape == ShapeRound {
		return g.DiameterIn
	}
	return 2.0 * g.WidthIn * g.HeightIn / (g.WidthIn + g.HeightIn)
}

// EquivalentDiameterIn is the Huebscher circular equivalent,
// De = 1.30 (ab)^0.625 / (a+b)^0.25.
func (g Geometry) EquivalentDiameterIn() float64 {
	if g.Shape == ShapeRound {
		return g.DiameterIn
	}
	a, b := g.WidthIn, g.HeightIn
	return 1.30 * math.Pow(a*b, 0.625) / math.Pow(a+b, 0.25)
}

// AspectRatio is long side over short side; 1 for round ducts.
func (g Geometry) AspectRatio() float64 {
	if g.Shape != ShapeRectangular || g.WidthIn <= 0 || g.HeightIn <= 0 {
		return 1
	}
	return math.Max(g.WidthIn, g.HeightIn) / math.Min(g.WidthIn, g.HeightIn)
}

func (g Geometry) String() string {
	if g.Shape == ShapeRound {
		return fmt.Sprintf("%g in round", g.DiameterIn)
	}
	return fmt.Sprintf("%gx%g in", g.WidthIn, g.HeightIn)
}
