package opw

import (
	"encoding/json"
	"fmt"
)

// RotationDirection maps a manufacturer joint direction onto the solver's
// internal convention.
type RotationDirection int8

const (
	Positive RotationDirection = 1  // Same direction as the internal axis.
	Negative RotationDirection = -1 // Opposite to the internal axis.
)

// Compile-time interface checks.
var (
	_ fmt.Stringer     = RotationDirection(0)
	_ json.Marshaler   = RotationDirection(0)
	_ json.Unmarshaler = (*RotationDirection)(nil)
)

// String returns "+1" or "-1". For invalid values it returns
// "RotationDirection(n)".
func (d RotationDirection) String() string {
	switch d {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	}
	return fmt.Sprintf("RotationDirection(%d)", int(d))
}

// IsValid reports whether d is Positive or Negative.
func (d RotationDirection) IsValid() bool {
	return d == Positive || d == Negative
}

// float returns the multiplier applied to a joint angle.
func (d RotationDirection) float() float64 {
	return float64(d)
}

// MarshalJSON implements json.Marshaler. RotationDirection serializes as
// the JSON number 1 or -1.
func (d RotationDirection) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotationDirection, int(d))
	}
	return json.Marshal(int(d))
}

// UnmarshalJSON implements json.Unmarshaler. Expects the number 1 or -1.
func (d *RotationDirection) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRotationDirection, data)
	}
	v := RotationDirection(n)
	if int(v) != n || !v.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidRotationDirection, n)
	}
	*d = v
	return nil
}
