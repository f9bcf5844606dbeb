// Package opw implements closed-form forward and inverse kinematics for
// six-axis robot arms with an ortho-parallel basis and a spherical wrist
// (OPW geometry).
//
// opw is pure Go with no hidden state: every call takes the robot's
// [Parameters] explicitly and works on fixed-size values. [Inverse] always
// returns all eight branches (shoulder x elbow x wrist flip); branches the
// arm cannot reach carry NaN components and are dropped by [Solutions.Valid].
//
// Basic usage:
//
//	s, err := opw.NewSolver(opw.SolverConfig{Parameters: params})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pose := s.Forward(opw.JointState{0.2, 0.2, 0.2, 0.2, 0.2, 0.2})
//	for _, sol := range s.Solve(pose) {
//	    fmt.Println(sol.Branch, sol.Joints)
//	}
package opw
