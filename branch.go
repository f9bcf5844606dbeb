package opw

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Branch identifies one of the eight inverse kinematics solutions.
//
// Branches 0-3 are unflipped and 4-7 their wrist-flipped twins. Within a
// half, branches 0-1 share the first shoulder solution and 2-3 the second;
// even branches take the first elbow solution.
type Branch int

// NumBranches is the number of solutions Inverse always returns.
const NumBranches = 8

var branchNames = [NumBranches]string{
	"s0e0", "s0e1", "s1e0", "s1e1",
	"s0e0f", "s0e1f", "s1e0f", "s1e1f",
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Branch(0)
	_ json.Marshaler           = Branch(0)
	_ json.Unmarshaler         = (*Branch)(nil)
	_ encoding.TextMarshaler   = Branch(0)
	_ encoding.TextUnmarshaler = (*Branch)(nil)
)

// NewBranch returns the branch for the given shoulder and elbow solution
// (0 or 1) and wrist flip.
func NewBranch(shoulder, elbow int, flipped bool) (Branch, error) {
	if shoulder < 0 || shoulder > 1 || elbow < 0 || elbow > 1 {
		return 0, fmt.Errorf("%w: shoulder %d, elbow %d", ErrInvalidBranch, shoulder, elbow)
	}
	b := Branch(shoulder*2 + elbow)
	if flipped {
		b += 4
	}
	return b, nil
}

// IsValid reports whether b is in [0, NumBranches).
func (b Branch) IsValid() bool {
	return b >= 0 && b < NumBranches
}

// Shoulder returns 0 for the first axis-1 solution and 1 for the second.
func (b Branch) Shoulder() int { return int(b) / 2 % 2 }

// Elbow returns 0 or 1 for the two axis 2/3 solutions.
func (b Branch) Elbow() int { return int(b) % 2 }

// Flipped reports whether the wrist is flipped (axis 4 turned by π).
func (b Branch) Flipped() bool { return b >= 4 }

// String returns names like "s1e0f". For invalid values it returns
// "Branch(n)".
func (b Branch) String() string {
	if b.IsValid() {
		return branchNames[b]
	}
	return fmt.Sprintf("Branch(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBranch, int(b))
	}
	return []byte(branchNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Branch) UnmarshalText(text []byte) error {
	for i, name := range branchNames {
		if name == string(text) {
			*b = Branch(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidBranch, text)
}

// MarshalJSON implements json.Marshaler. Branch serializes as a JSON string.
func (b Branch) MarshalJSON() ([]byte, error) {
	text, err := b.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBranch, data)
	}
	return b.UnmarshalText([]byte(s))
}
