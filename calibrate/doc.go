// Package calibrate fits OPW robot geometry to measured flange poses.
//
// A calibration starts from the nominal [opw.Parameters] of a robot and a
// set of [Sample] values, each pairing commanded joint angles with the pose
// an external tracker measured. [Calibrator.Fit] adjusts the seven link
// dimensions and the six joint zero offsets to minimize the mean squared
// pose error using mini-batch gradient descent with the [Adam] optimizer
// and a [CosineAnnealing] learning rate. Gradients are computed with
// central differences.
//
// # Usage
//
//	samples, err := calibrate.LoadSamples("measurements.yaml")
//	c := calibrate.New(calibrate.Config{})
//	result, err := c.Fit(ctx, nominal, samples)
//
// Each parameter stays within MaxDeviation of its nominal value, so the
// fit refines a known geometry rather than identifying one from scratch.
// Sign corrections are never changed.
package calibrate
