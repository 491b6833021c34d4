package air

import (
	"math"

	"Ducted/internal/calc/calcerr"
)

const (
	StandardDensity     = 0.075     // lb/ft³ at 70 °F, sea level, dry
	Viscosity           = 0.0000121 // lb/(ft·s), taken constant over HVAC temperatures
	StandardTempRankine = 530.0     // 70 °F
	SeaLevelInHg        = 29.921
	SeaLevelPsia        = 14.696
	AltitudeScaleFt     = 145442.0
	AltitudeExponent    = 5.256
	AbsoluteZeroF       = -459.67
)

// Conditions are the design air conditions. Callers that have none should
// use StandardConditions; a zero value means 0 °F.
type Conditions struct {
	TemperatureF     float64 `json:"temperature_f" yaml:"temperature_f"`
	AltitudeFt       float64 `json:"altitude_ft,omitempty" yaml:"altitude_ft,omitempty"`
	BarometricInHg   float64 `json:"barometric_in_hg,omitempty" yaml:"barometric_in_hg,omitempty"`
	RelativeHumidity float64 `json:"relative_humidity,omitempty" yaml:"relative_humidity,omitempty"` // percent
}

type Corrections struct {
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
	Combined    float64 `json:"combined"`
}

type Properties struct {
	Density        float64     `json:"density_lb_ft3"`
	Viscosity      float64     `json:"viscosity_lb_ft_s"`
	BarometricInHg float64     `json:"barometric_in_hg"`
	Corrections    Corrections `json:"corrections"`
}

// StandardConditions is 70 °F dry air at sea level.
func StandardConditions() Conditions {
	return Conditions{TemperatureF: 70}
}

// Standard returns the properties of standard air.
func Standard() Properties {
	p, _ := Resolve(StandardConditions())
	return p
}

// ResolveOrStandard resolves c, or standard air when c is nil.
func ResolveOrStandard(c *Conditions) (Properties, error) {
	if c == nil {
		return Standard(), nil
	}
	return Resolve(*c)
}

// Resolve computes density and viscosity from temperature, altitude (or a
// measured barometric pressure) and relative humidity.
//
//	ρ = 0.075 × 530/(T+460) × (1 − z/145442)^5.256 × humidity factor
func Resolve(c Conditions) (Properties, error) {
	if c.TemperatureF <= AbsoluteZeroF {
		return Properties{}, calcerr.InvalidInput("air.resolve", "temperature_f", c.TemperatureF, "temperature is below absolute zero")
	}
	if c.BarometricInHg < 0 {
		return Properties{}, calcerr.InvalidInput("air.resolve", "barometric_in_hg", c.BarometricInHg, "pressure must not be negative")
	}
	if c.BarometricInHg == 0 && c.AltitudeFt >= AltitudeScaleFt {
		return Properties{}, calcerr.InvalidInput("air.resolve", "altitude_ft", c.AltitudeFt, "altitude is above the standard atmosphere model")
	}
	if c.RelativeHumidity < 0 || c.RelativeHumidity > 100 {
		return Properties{}, calcerr.InvalidInput("air.resolve", "relative_humidity", c.RelativeHumidity, "relative humidity must be between 0 and 100 percent")
	}

	tempFactor := StandardTempRankine / (c.TemperatureF + 460.0)

	var pressureFactor float64
	if c.BarometricInHg > 0 {
		pressureFactor = c.BarometricInHg / SeaLevelInHg
	} else {
		pressureFactor = math.Pow(1.0-c.AltitudeFt/AltitudeScaleFt, AltitudeExponent)
	}

	humidityFactor := 1.0
	if c.RelativeHumidity > 0 {
		pv := c.RelativeHumidity / 100.0 * saturationPsia(c.TemperatureF)
		p := SeaLevelPsia * pressureFactor
		humidityFactor = 1.0 - 0.378*pv/p
	}

	combined := tempFactor * pressureFactor * humidityFactor
	return Properties{
		Density:        StandardDensity * combined,
		Viscosity:      Viscosity,
		BarometricInHg: SeaLevelInHg * pressureFactor,
		Corrections: Corrections{
			Temperature: tempFactor,
			Pressure:    pressureFactor,
			Humidity:    humidityFactor,
			Combined:    combined,
		},
	}, nil
}

// saturationPsia is the Magnus approximation of water vapour saturation
// pressure over liquid water.
func saturationPsia(tempF float64) float64 {
	tc := (tempF - 32.0) * 5.0 / 9.0
	hPa := 6.112 * math.Exp(17.62*tc/(243.12+tc))
	return hPa * 0.0145038
}
