package quant

import (
	"testing"
)

func TestUnitRoundTrip(t *testing.T) {
	golden := []struct {
		w float32
		n uint32
	}{
		{0, 6}, {1, 6}, {0.5, 6}, {0.1, 8}, {0.999, 12}, {1.0 / 3.0, 16},
	}
	for _, g := range golden {
		code := Unit(g.w, g.n)
		maxCode := (uint32(1) << g.n) - 1
		if code > maxCode {
			t.Errorf("Unit(%v, %d) = %d exceeds max code %d", g.w, g.n, code, maxCode)
		}
		got := DequantizeUnit(code, g.n)
		step := 1.0 / float32(maxCode)
		if diff := got - g.w; diff > step || diff < -step {
			t.Errorf("Unit/DequantizeUnit(%v, %d) round-trip error %v exceeds step %v", g.w, g.n, diff, step)
		}
	}
}

func TestHalfRoundTrip(t *testing.T) {
	golden := []struct {
		w float32
		n uint32
	}{
		{0, 6}, {0.5, 6}, {0.25, 8}, {0.49, 10},
	}
	for _, g := range golden {
		code := Half(g.w, g.n)
		maxCode := (uint32(1) << g.n) - 1
		if code > maxCode {
			t.Errorf("Half(%v, %d) = %d exceeds max code %d", g.w, g.n, code, maxCode)
		}
		got := DequantizeHalf(code, g.n)
		step := 0.5 / float32((uint32(1)<<g.n)-1)
		if diff := got - g.w; diff > step || diff < -step {
			t.Errorf("Half/DequantizeHalf(%v, %d) round-trip error %v exceeds step %v", g.w, g.n, diff, step)
		}
	}
}

func TestUnitClampsOutOfRangeInput(t *testing.T) {
	if got := Unit(-1, 8); got != 0 {
		t.Errorf("Unit(-1, 8) = %d, want 0", got)
	}
	maxCode := (uint32(1) << 8) - 1
	if got := Unit(2, 8); got != maxCode {
		t.Errorf("Unit(2, 8) = %d, want %d", got, maxCode)
	}
}

func TestHalfClampsOutOfRangeInput(t *testing.T) {
	if got := Half(-1, 8); got != 0 {
		t.Errorf("Half(-1, 8) = %d, want 0", got)
	}
	maxCode := (uint32(1) << 8) - 1
	if got := Half(1, 8); got != maxCode {
		t.Errorf("Half(1, 8) = %d, want %d", got, maxCode)
	}
}

func TestUnitZeroStaysZero(t *testing.T) {
	if got := Unit(0, 10); got != 0 {
		t.Errorf("Unit(0, 10) = %d, want 0", got)
	}
}
