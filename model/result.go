package model

// Result is the measured outcome of a statement. Every field is optional;
// Success and Completion are tri-state (nil means unset, not false).
type Result struct {
	Score      *Score
	Success    *bool
	Completion *bool
	Response   *string
	// Duration is kept as received. It is validated as an ISO 8601 duration
	// after flooring fractional numbers, but the floored form is not stored.
	Duration   *string
	Extensions Extensions
}

// Score of a result. Scaled is in [-1, 1]; Raw lies between Min and Max when
// those are set.
type Score struct {
	Scaled *float64 `json:"scaled" validate:"omitempty,gte=-1,lte=1"`
	Raw    *float64 `json:"raw"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
}
