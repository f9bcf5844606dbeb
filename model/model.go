package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sky-flux/opw"
)

var (
	// ErrUnknownModel is returned by Lookup for a name with no preset.
	ErrUnknownModel = errors.New("model: unknown model")

	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("model: unsupported file format")
)

// Model is a named robot geometry.
type Model struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	opw.Parameters `yaml:",inline"`
}

// String returns the name followed by the parameters.
func (m Model) String() string {
	return m.Name + ": " + m.Parameters.String()
}

var (
	pos = opw.Positive
	neg = opw.Negative
)

// presets are published OPW geometries. Offsets and signs map each
// manufacturer's joint zero and direction onto the solver convention.
var presets = map[string]Model{
	"abb-irb2400": {
		Name:        "abb-irb2400",
		Description: "ABB IRB 2400/10",
		Parameters: opw.Parameters{
			A1: 0.100, A2: -0.135, B: 0,
			C1: 0.615, C2: 0.705, C3: 0.755, C4: 0.085,
			Offsets:         [6]float64{0, 0, -math.Pi / 2, 0, 0, 0},
			SignCorrections: [6]opw.RotationDirection{pos, pos, pos, pos, pos, pos},
		},
	},
	"abb-irb4600": {
		Name:        "abb-irb4600",
		Description: "ABB IRB 4600-60/2.05",
		Parameters: opw.Parameters{
			A1: 0.175, A2: -0.175, B: 0,
			C1: 0.495, C2: 0.900, C3: 0.960, C4: 0.135,
			Offsets:         [6]float64{0, 0, -math.Pi / 2, 0, 0, 0},
			SignCorrections: [6]opw.RotationDirection{pos, pos, pos, pos, pos, pos},
		},
	},
	"fanuc-r2000ib": {
		Name:        "fanuc-r2000ib",
		Description: "FANUC R-2000iB/200R",
		Parameters: opw.Parameters{
			A1: 0.720, A2: -0.225, B: 0,
			C1: 0.600, C2: 1.075, C3: 1.280, C4: 0.235,
			Offsets:         [6]float64{0, 0, -math.Pi / 2, 0, 0, 0},
			SignCorrections: [6]opw.RotationDirection{pos, pos, neg, neg, neg, neg},
		},
	},
	"kuka-kr6-r700-sixx": {
		Name:        "kuka-kr6-r700-sixx",
		Description: "KUKA KR 6 R700 sixx",
		Parameters: opw.Parameters{
			A1: 0.025, A2: -0.035, B: 0,
			C1: 0.400, C2: 0.315, C3: 0.365, C4: 0.080,
			Offsets:         [6]float64{0, -math.Pi / 2, 0, 0, 0, 0},
			SignCorrections: [6]opw.RotationDirection{neg, pos, pos, neg, pos, neg},
		},
	},
	"staubli-tx40": {
		Name:        "staubli-tx40",
		Description: "Stäubli TX40",
		Parameters: opw.Parameters{
			A1: 0, A2: 0, B: 0.035,
			C1: 0.320, C2: 0.225, C3: 0.225, C4: 0.065,
			Offsets:         [6]float64{0, 0, -math.Pi / 2, 0, 0, 0},
			SignCorrections: [6]opw.RotationDirection{pos, pos, pos, pos, pos, pos},
		},
	},
}

// Default is the model used when none is named.
const Default = "kuka-kr6-r700-sixx"

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the preset with the given name.
func Lookup(name string) (Model, error) {
	m, ok := presets[name]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownModel, name, Names())
	}
	return m, nil
}
