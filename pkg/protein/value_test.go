package protein

import (
	"math"
	"testing"
)

func TestValueValid(t *testing.T) {

	tests := []struct {
		name  string
		value Value
		valid bool
	}{
		{"RealValue", "50000", true},
		{"TextValue", "Homo sapiens", true},
		{"Empty", "", false},
		{"Whitespace", "   ", false},
		{"Sentinel", Missing, false},
		{"SentinelLowercase", "no value found", false},
		{"NaN", "NaN", false},
		{"None", "None", false},
		{"NA", "n/a", false},
		{"Unknown", "UNKNOWN", false},
		{"Null", "null", false},
		{"PaddedSentinel", "  NO VALUE FOUND  ", false},
		{"ZeroIsData", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Valid(); got != tt.valid {
				t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestValueFloat(t *testing.T) {

	tests := []struct {
		name     string
		value    Value
		expected float64
		ok       bool
	}{
		{"Integer", "50000", 50000, true},
		{"Decimal", "7.25", 7.25, true},
		{"Negative", "-0.5", -0.5, true},
		{"Padded", " 42 ", 42, true},
		{"Sentinel", Missing, 0, false},
		{"Text", "heavy", 0, false},
		{"Empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Float()
			if ok != tt.ok {
				t.Fatalf("Float(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Float(%q) = %f, want %f", tt.value, got, tt.expected)
			}
		})
	}
}

func TestValuePercentage(t *testing.T) {

	tests := []struct {
		name     string
		value    Value
		expected float64
		ok       bool
	}{
		{"Combined", "20_12.3%", 12.3, true},
		{"ZeroPercent", "0_0.0%", 0.0, true},
		{"NoUnderscore", "12.3%", 0, false},
		{"NoPercentSign", "20_12.3", 0, false},
		{"Garbage", "garbage", 0, false},
		{"Sentinel", Missing, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Percentage()
			if ok != tt.ok {
				t.Fatalf("Percentage(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Percentage(%q) = %f, want %f", tt.value, got, tt.expected)
			}
		})
	}
}
