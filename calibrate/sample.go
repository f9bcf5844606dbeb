package calibrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sky-flux/opw"
	"github.com/sky-flux/opw/model"
)

// sampleRotationTolerance bounds how far a measured rotation may be from
// orthonormal. Trackers report rounded values, so this is looser than the
// check on user-entered poses.
const sampleRotationTolerance = 1e-4

// Sample records one measurement: the commanded joint angles and the
// flange pose observed for them.
type Sample struct {
	Joints opw.JointState `json:"joints" yaml:"joints"`
	Pose   opw.Pose       `json:"pose" yaml:"pose"`
}

// Validate reports whether s can be used for fitting.
func (s Sample) Validate() error {
	if !s.Joints.IsValid() {
		return fmt.Errorf("%w: joints %s are not finite", ErrInvalidSample, s.Joints)
	}
	t := s.Pose.Translation
	if !isFinite(t.X) || !isFinite(t.Y) || !isFinite(t.Z) {
		return fmt.Errorf("%w: translation %v is not finite", ErrInvalidSample, t)
	}
	if !s.Pose.Rotation.IsRotation(sampleRotationTolerance) {
		return fmt.Errorf("%w: rotation is not orthonormal", ErrInvalidSample)
	}
	return nil
}

// sampleFile is the on-disk layout of a measurement file.
type sampleFile struct {
	Samples []Sample `json:"samples" yaml:"samples"`
}

// LoadSamples reads measurements from a YAML or JSON file.
func LoadSamples(path string) ([]Sample, error) {
	format, err := model.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calibrate: read %s: %w", path, err)
	}
	return ParseSamples(data, format)
}

// ParseSamples decodes and validates measurements. Unknown fields are
// rejected.
func ParseSamples(data []byte, format model.Format) ([]Sample, error) {
	var f sampleFile
	switch format {
	case model.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("calibrate: decode yaml: %w", err)
		}
	case model.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("calibrate: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, format)
	}

	for i, s := range f.Samples {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return f.Samples, nil
}
