package opw

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestValidateParametersValid(t *testing.T) {
	for name, p := range testRobots() {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v, want nil", name, err)
		}
	}
}

func TestValidateParametersNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
	}{
		{"a1 NaN", func(p *Parameters) { p.A1 = math.NaN() }},
		{"a2 +Inf", func(p *Parameters) { p.A2 = math.Inf(1) }},
		{"b -Inf", func(p *Parameters) { p.B = math.Inf(-1) }},
		{"c1 NaN", func(p *Parameters) { p.C1 = math.NaN() }},
		{"c2 NaN", func(p *Parameters) { p.C2 = math.NaN() }},
		{"c3 NaN", func(p *Parameters) { p.C3 = math.NaN() }},
		{"c4 NaN", func(p *Parameters) { p.C4 = math.NaN() }},
		{"offset NaN", func(p *Parameters) { p.Offsets[3] = math.NaN() }},
		{"offset Inf", func(p *Parameters) { p.Offsets[0] = math.Inf(1) }},
	}
	for _, tt := range tests {
		p := kukaKR6()
		tt.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: Validate() should fail", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: error should wrap ErrInvalidParameters, got %v", tt.name, err)
		}
	}
}

func TestValidateParametersBadSign(t *testing.T) {
	for _, s := range []RotationDirection{0, 2, -2} {
		p := kukaKR6()
		p.SignCorrections[4] = s
		err := p.Validate()
		if err == nil {
			t.Errorf("sign %d: Validate() should fail", int(s))
			continue
		}
		if !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("sign %d: error should wrap ErrInvalidParameters, got %v", int(s), err)
		}
	}
}

func TestValidateParametersZeroValue(t *testing.T) {
	// Zero sign corrections are not a valid direction.
	if err := (Parameters{}).Validate(); err == nil {
		t.Error("Validate() on zero Parameters should fail")
	}
}

func TestParametersString(t *testing.T) {
	p := kukaKR6()
	want := "a1=0.025 a2=-0.035 b=0 c1=0.4 c2=0.315 c3=0.365 c4=0.08 " +
		"offsets=[0 -1.5707963267948966 0 0 0 0] signs=[-1 +1 +1 -1 +1 -1]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q\nwant        %q", got, want)
	}
}

func TestParametersJSON(t *testing.T) {
	p := kukaKR6()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Parameters
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != p {
		t.Errorf("JSON round trip = %v, want %v", got, p)
	}
}

func TestParametersJSONRejectsBadSign(t *testing.T) {
	data := []byte(`{"a1":0,"a2":0,"b":0,"c1":0,"c2":1,"c3":1,"c4":0,
		"offsets":[0,0,0,0,0,0],"sign_corrections":[1,1,0,1,1,1]}`)
	var p Parameters
	err := json.Unmarshal(data, &p)
	if !errors.Is(err, ErrInvalidRotationDirection) {
		t.Errorf("Unmarshal error = %v, want ErrInvalidRotationDirection", err)
	}
}

func TestConventionRoundTrip(t *testing.T) {
	p := kukaKR6()
	q := JointState{0.1, -0.2, 0.3, -0.4, 0.5, -0.6}
	got := p.fromInternal(p.toInternal(q))
	for i := range q {
		assertFloat(t, "joint", got[i], q[i])
	}
}

func TestToInternal(t *testing.T) {
	p := kukaKR6()
	got := p.toInternal(JointState{0.2, 0.2, 0.2, 0.2, 0.2, 0.2})
	want := JointState{-0.2, 0.2 + math.Pi/2, 0.2, -0.2, 0.2, -0.2}
	for i := range want {
		assertFloat(t, "internal", got[i], want[i])
	}
}
