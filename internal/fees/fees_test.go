package fees

import (
	"math"
	"testing"
)

func TestKalshiTaker_Endpoints(t *testing.T) {
	if fee := KalshiTaker(0); fee != 0 {
		t.Errorf("KalshiTaker(0) = %v, want 0", fee)
	}
	if fee := KalshiTaker(100); fee != 0 {
		t.Errorf("KalshiTaker(100) = %v, want 0", fee)
	}
}

func TestKalshiTaker_Symmetry(t *testing.T) {
	for _, p := range []float64{5, 17.5, 30, 42, 50, 63, 88} {
		low := KalshiTaker(p)
		high := KalshiTaker(100 - p)
		if math.Abs(low-high) > 1e-9 {
			t.Errorf("KalshiTaker(%v) = %v, KalshiTaker(%v) = %v, want equal", p, low, 100-p, high)
		}
	}
}

func TestKalshiTaker_PeakAtMidpoint(t *testing.T) {
	peak := KalshiTaker(50)
	want := 0.07 * 0.5 * 0.5 * 100 // 1.75 cents
	if math.Abs(peak-want) > 1e-9 {
		t.Errorf("KalshiTaker(50) = %v, want %v", peak, want)
	}

	for _, p := range []float64{10, 25, 40, 49, 51, 75, 90} {
		if fee := KalshiTaker(p); fee > peak {
			t.Errorf("KalshiTaker(%v) = %v exceeds midpoint fee %v", p, fee, peak)
		}
	}
}

func TestKalshiTaker_KnownValue(t *testing.T) {
	// 40 cents: 0.07 * 0.4 * 0.6 * 100 = 1.68 cents
	fee := KalshiTaker(40)
	if math.Abs(fee-1.68) > 1e-9 {
		t.Errorf("KalshiTaker(40) = %v, want 1.68", fee)
	}
}

func TestKalshiTaker_ClampsOutOfRange(t *testing.T) {
	if fee := KalshiTaker(-10); fee != 0 {
		t.Errorf("KalshiTaker(-10) = %v, want 0", fee)
	}
	if fee := KalshiTaker(150); fee != 0 {
		t.Errorf("KalshiTaker(150) = %v, want 0", fee)
	}
}

func TestPolymarketTaker_Modes(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		mode  PolymarketMode
		want  float64
	}{
		{"reduced at 55", 55, PolymarketReduced, 0.055},
		{"standard at 55", 55, PolymarketStandard, 1.1},
		{"reduced at 0", 0, PolymarketReduced, 0},
		{"standard at 0", 0, PolymarketStandard, 0},
		{"reduced at 100", 100, PolymarketReduced, 0.1},
		{"standard at 100", 100, PolymarketStandard, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolymarketTaker(tt.price, tt.mode)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PolymarketTaker(%v, %s) = %v, want %v", tt.price, tt.mode, got, tt.want)
			}
		})
	}
}

func TestPolymarketTaker_ClampsOutOfRange(t *testing.T) {
	if fee := PolymarketTaker(-5, PolymarketStandard); fee != 0 {
		t.Errorf("PolymarketTaker(-5) = %v, want 0", fee)
	}
	got := PolymarketTaker(250, PolymarketStandard)
	want := PolymarketTaker(100, PolymarketStandard)
	if got != want {
		t.Errorf("PolymarketTaker(250) = %v, want clamped %v", got, want)
	}
}

func TestParsePolymarketMode(t *testing.T) {
	tests := []struct {
		input   string
		want    PolymarketMode
		wantErr bool
	}{
		{"reduced", PolymarketReduced, false},
		{"standard", PolymarketStandard, false},
		{"", "", true},
		{"premium", "", true},
		{"Reduced", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolymarketMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePolymarketMode(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePolymarketMode(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolymarketMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
