// Package model provides named OPW robot geometries and loads custom ones
// from YAML or JSON files.
//
// # Usage
//
//	m, err := model.Lookup("kuka-kr6-r700-sixx")
//	m, err := model.Load("robots/my-arm.yaml")
//	s, err := opw.NewSolver(opw.SolverConfig{Parameters: m.Parameters})
//
// # File format
//
// A model file lists the seven link lengths in meters, the joint offsets in
// radians and the per-joint sign corrections:
//
//	name: kuka-kr6-r700-sixx
//	a1: 0.025
//	a2: -0.035
//	b: 0
//	c1: 0.400
//	c2: 0.315
//	c3: 0.365
//	c4: 0.080
//	offsets: [0, -1.5707963267948966, 0, 0, 0, 0]
//	sign_corrections: [-1, 1, 1, -1, 1, -1]
//
// Omitted sign corrections default to +1. JSON files use the same keys.
package model
