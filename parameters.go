package opw

import (
	"fmt"
	"math"
	"strings"
)

// Parameters describes the geometry of one OPW robot model.
//
// Distances are in meters and offsets in radians. Offsets and sign
// corrections map the manufacturer's joint convention onto the solver's:
// internal = joint*sign - offset.
type Parameters struct {
	A1 float64 `json:"a1" yaml:"a1"`
	A2 float64 `json:"a2" yaml:"a2"` // negative for a "Z" shaped arm
	B  float64 `json:"b" yaml:"b"`
	C1 float64 `json:"c1" yaml:"c1"`
	C2 float64 `json:"c2" yaml:"c2"`
	C3 float64 `json:"c3" yaml:"c3"`
	C4 float64 `json:"c4" yaml:"c4"`

	Offsets         [6]float64           `json:"offsets" yaml:"offsets"`
	SignCorrections [6]RotationDirection `json:"sign_corrections" yaml:"sign_corrections"`
}

// Validate checks that every distance and offset is finite and every sign
// correction is +1 or -1. The kinematics functions never call it; they
// trust the caller.
func (p Parameters) Validate() error {
	lengths := [...]struct {
		name string
		v    float64
	}{
		{"a1", p.A1}, {"a2", p.A2}, {"b", p.B},
		{"c1", p.C1}, {"c2", p.C2}, {"c3", p.C3}, {"c4", p.C4},
	}
	for _, l := range lengths {
		if !isFinite(l.v) {
			return fmt.Errorf("%w: %s = %v is not finite", ErrInvalidParameters, l.name, l.v)
		}
	}
	for i, o := range p.Offsets {
		if !isFinite(o) {
			return fmt.Errorf("%w: offsets[%d] = %v is not finite", ErrInvalidParameters, i, o)
		}
	}
	for i, s := range p.SignCorrections {
		if !s.IsValid() {
			return fmt.Errorf("%w: sign_corrections[%d] = %d, want +1 or -1",
				ErrInvalidParameters, i, int(s))
		}
	}
	return nil
}

// String renders the parameters on one line for diagnostics.
func (p Parameters) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "a1=%g a2=%g b=%g c1=%g c2=%g c3=%g c4=%g offsets=[",
		p.A1, p.A2, p.B, p.C1, p.C2, p.C3, p.C4)
	for i, o := range p.Offsets {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", o)
	}
	b.WriteString("] signs=[")
	for i, s := range p.SignCorrections {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
	}
	b.WriteByte(']')
	return b.String()
}

// toInternal converts manufacturer joint angles to the solver convention.
func (p *Parameters) toInternal(q JointState) JointState {
	var out JointState
	for i := range q {
		out[i] = q[i]*p.SignCorrections[i].float() - p.Offsets[i]
	}
	return out
}

// fromInternal converts solver joint angles back to the manufacturer
// convention.
func (p *Parameters) fromInternal(q JointState) JointState {
	var out JointState
	for i := range q {
		out[i] = (q[i] + p.Offsets[i]) * p.SignCorrections[i].float()
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
