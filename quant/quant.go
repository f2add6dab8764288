// Package quant implements the scalar weight quantizers shared by the
// unit-cube and power-of-two-AABB vertex codecs: rounding a weight in [0,1]
// (or [0, 1/2]) to an n-bit integer, and back.
package quant

import (
	"github.com/chewxy/math32"
)

// MaxBitCount is the largest bit width these quantizers support; beyond it
// 1<<n no longer fits the float32 mantissa exactly.
const MaxBitCount = 24

// Unit maps w, clamped to [0, 1], to round(w * (2^n - 1)).
func Unit(w float32, n uint32) uint32 {
	w = clamp01(w)
	maxValue := float32((uint32(1) << n) - 1)
	return uint32(math32.Round(w * maxValue))
}

// DequantizeUnit is the inverse of Unit: it maps an n-bit code back to a
// weight in [0, 1].
func DequantizeUnit(code uint32, n uint32) float32 {
	maxValue := float32((uint32(1) << n) - 1)
	return float32(code) / maxValue
}

// Half maps w, clamped to [0, 1/2], to round(w * 2 * (2^n - 1)). It is used
// by power-of-two AABB, where the sorted weight at rank r never exceeds
// 1/(k-r) and the grid is chosen so that w=1/2 is still representable
// exactly.
func Half(w float32, n uint32) uint32 {
	w = clampHalf(w)
	maxValue := float32(2 * ((uint32(1) << n) - 1))
	return uint32(math32.Round(w * maxValue))
}

// DequantizeHalf is the inverse of Half.
func DequantizeHalf(code uint32, n uint32) float32 {
	maxValue := float32(2 * ((uint32(1) << n) - 1))
	return float32(code) / maxValue
}

// clamp01 clamps w to [0, 1], rejecting NaN by mapping it to 0. Negative or
// out-of-range weights are a caller bug; clamping rather than failing keeps
// the per-vertex quantize call branch-free on the hot path.
func clamp01(w float32) float32 {
	if math32.IsNaN(w) {
		return 0
	}
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

func clampHalf(w float32) float32 {
	if math32.IsNaN(w) {
		return 0
	}
	if w < 0 {
		return 0
	}
	if w > 0.5 {
		return 0.5
	}
	return w
}
