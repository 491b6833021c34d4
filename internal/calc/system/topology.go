package system

import (
	"Ducted/internal/calc/air"
	"Ducted/internal/calc/duct"
	"Ducted/internal/calc/fitting"
)

type Kind string

const (
	KindStraight Kind = "straight"
	KindFitting  Kind = "fitting"
)

// Segment is one run of straight duct or one fitting. Airflow is supplied
// by the caller; continuity between segments is not enforced.
type Segment struct {
	ID         string          `json:"id" yaml:"id"`
	Kind       Kind            `json:"kind" yaml:"kind"`
	Shape      duct.Shape      `json:"shape" yaml:"shape"`
	DiameterIn float64         `json:"diameter_in,omitempty" yaml:"diameter_in,omitempty"`
	WidthIn    float64         `json:"width_in,omitempty" yaml:"width_in,omitempty"`
	HeightIn   float64         `json:"height_in,omitempty" yaml:"height_in,omitempty"`
	LengthFt   float64         `json:"length_ft,omitempty" yaml:"length_ft,omitempty"`
	Material   duct.Material   `json:"material,omitempty" yaml:"material,omitempty"`
	AirflowCFM float64         `json:"airflow_cfm" yaml:"airflow_cfm"`
	Location   duct.Location   `json:"location,omitempty" yaml:"location,omitempty"`
	Fitting    *fitting.Config `json:"fitting,omitempty" yaml:"fitting,omitempty"`
}

func (s Segment) Geometry() duct.Geometry {
	return duct.Geometry{Shape: s.Shape, DiameterIn: s.DiameterIn, WidthIn: s.WidthIn, HeightIn: s.HeightIn}
}

// Topology is an ordered list of segments sharing one system type and one
// set of design conditions.
type Topology struct {
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	SystemType duct.SystemType `json:"system_type,omitempty" yaml:"system_type,omitempty"`
	Conditions *air.Conditions `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Segments   []Segment       `json:"segments" yaml:"segments"`
}
