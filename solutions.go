package opw

// Solutions holds the eight inverse kinematics branches, indexed by Branch.
// Branches the arm cannot reach contain non-finite joints.
type Solutions [NumBranches]JointState

// Solution is one usable inverse kinematics result.
type Solution struct {
	Branch Branch     `json:"branch"`
	Joints JointState `json:"joints"`
}

// At returns the joints of branch b. It panics if b is out of range.
func (s Solutions) At(b Branch) JointState {
	return s[b]
}

// Valid returns the branches whose joints are all finite, in branch order.
func (s Solutions) Valid() []Solution {
	out := make([]Solution, 0, NumBranches)
	for i, q := range s {
		if q.IsValid() {
			out = append(out, Solution{Branch: Branch(i), Joints: q})
		}
	}
	return out
}

// Harmonized returns a copy with every branch passed through
// HarmonizeTowardZero.
func (s Solutions) Harmonized() Solutions {
	for i := range s {
		s[i] = HarmonizeTowardZero(s[i])
	}
	return s
}

// Nearest returns the valid branch closest to seed. Each joint is first
// moved by whole turns to lie within π of the seed, so the returned joints
// may differ from the raw branch by multiples of 2π. Ties go to the lower
// branch. seed must be finite. ok is false when no branch is valid.
func (s Solutions) Nearest(seed JointState) (sol Solution, ok bool) {
	best := 0.0
	for i, q := range s {
		if !q.IsValid() {
			continue
		}
		q = q.unwrapToward(seed)
		d := q.distanceSquared(seed)
		if !ok || d < best {
			sol, best, ok = Solution{Branch: Branch(i), Joints: q}, d, true
		}
	}
	return sol, ok
}
