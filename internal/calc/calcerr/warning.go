package calcerr

import "fmt"

type WarningCode string

const (
	WarnVelocityLimit      WarningCode = "velocity_limit"
	WarnOccupiedVelocity   WarningCode = "occupied_velocity"
	WarnAspectRatio        WarningCode = "aspect_ratio"
	WarnUnknownSystemType  WarningCode = "unknown_system_type"
	WarnUnresolvedFitting  WarningCode = "unresolved_fitting"
	WarnBeyondStandardSize WarningCode = "beyond_standard_size"
	WarnConstraintApplied  WarningCode = "constraint_applied"
	WarnLaminarFlow        WarningCode = "laminar_flow"
	WarnSizeCap            WarningCode = "size_cap"
)

// Warning is advisory output attached to an otherwise successful result.
type Warning struct {
	Code      WarningCode `json:"code"`
	Message   string      `json:"message"`
	SegmentID string      `json:"segment_id,omitempty"`
	Actual    float64     `json:"actual,omitempty"`
	Limit     float64     `json:"limit,omitempty"`
}

func Warn(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithSegment tags every warning with segmentID, returning a new slice.
func WithSegment(ws []Warning, segmentID string) []Warning {
	out := make([]Warning, len(ws))
	for i, w := range ws {
		w.SegmentID = segmentID
		out[i] = w
	}
	return out
}

func HasCode(ws []Warning, code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
