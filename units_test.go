package draft

import (
	"math"
	"testing"
)

func TestParseUnitFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    UnitFamily
		wantErr bool
	}{
		{"decimal-inch", UnitDecimalInch, false},
		{"IN", UnitDecimalInch, false},
		{"fractional-inch", UnitFractionalInch, false},
		{" metric ", UnitMetric, false},
		{"mm", UnitMetric, false},
		{"furlong", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnitFamily(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnitFamily(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseUnitFamily(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitFamilyTextRoundTrip(t *testing.T) {
	for _, f := range []UnitFamily{UnitDecimalInch, UnitFractionalInch, UnitMetric} {
		text, _ := f.MarshalText()
		var got UnitFamily
		if err := got.UnmarshalText(text); err != nil || got != f {
			t.Errorf("text round trip of %v = %v, %v", f, got, err)
		}
	}
}

func TestStepsAscending(t *testing.T) {
	for _, f := range []UnitFamily{UnitDecimalInch, UnitFractionalInch, UnitMetric} {
		steps := f.Steps()
		for i := 1; i < len(steps); i++ {
			if steps[i] <= steps[i-1] {
				t.Errorf("%v steps not ascending at %d: %g <= %g", f, i, steps[i], steps[i-1])
			}
		}
	}
	if got := UnitFractionalInch.Steps()[0]; got != 1.0/64 {
		t.Errorf("finest fractional step = %g, want 1/64", got)
	}
}

func TestConvert(t *testing.T) {
	if got := Convert(1, UnitDecimalInch, UnitMetric); got != 25.4 {
		t.Errorf("1in -> %g mm, want 25.4", got)
	}
	if got := Convert(50.8, UnitMetric, UnitFractionalInch); math.Abs(got-2) > 1e-12 {
		t.Errorf("50.8mm -> %g in, want 2", got)
	}
	if got := Convert(3, UnitDecimalInch, UnitFractionalInch); got != 3 {
		t.Errorf("inch families should not convert, got %g", got)
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		v    float64
		f    UnitFamily
		want string
	}{
		{1.25, UnitDecimalInch, `1.250"`},
		{1.25, UnitFractionalInch, `1 1/4"`},
		{0.5, UnitFractionalInch, `1/2"`},
		{-0.015625, UnitFractionalInch, `-1/64"`},
		{2, UnitFractionalInch, `2"`},
		{-0.001, UnitFractionalInch, `0"`},
		{12.5, UnitMetric, "12.5 mm"},
	}
	for _, tt := range tests {
		if got := FormatLength(tt.v, tt.f); got != tt.want {
			t.Errorf("FormatLength(%g, %v) = %q, want %q", tt.v, tt.f, got, tt.want)
		}
	}
}
