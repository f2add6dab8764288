package vbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceBoneCountPreservesWeightSum(t *testing.T) {
	src := Attributes{
		Indices:      []uint16{10, 11, 12, 13},
		IndexStride:  4,
		Weights:      []float32{0.1, 0.2, 0.3}, // last implicit: 0.4
		WeightStride: 3,
	}
	dst := Attributes{
		Indices:      make([]uint16, 2),
		IndexStride:  2,
		Weights:      make([]float32, 2),
		WeightStride: 2,
	}
	require.NoError(t, ReduceBoneCount(dst, src, 2, 4, true))
	assert.Equal(t, []uint16{12, 13}, dst.Indices, "the two largest-weight influences survive")

	sum := dst.Weights[0] + dst.Weights[1]
	assert.InDelta(t, 1.0, sum, 0.01, "renormalized weights should sum to ~1")
}

func TestReduceBoneCountOmitsLastWeightWhenNotRequested(t *testing.T) {
	src := Attributes{
		Indices:      []uint16{10, 11, 12, 13},
		IndexStride:  4,
		Weights:      []float32{0.1, 0.2, 0.3},
		WeightStride: 3,
	}
	dst := Attributes{
		Indices:      make([]uint16, 2),
		IndexStride:  2,
		Weights:      make([]float32, 1),
		WeightStride: 1,
	}
	require.NoError(t, ReduceBoneCount(dst, src, 2, 4, false))

	// Only rank 0 (the smaller of the two kept weights) is written; rank 1
	// (the largest) stays implicit for the caller to recover.
	assert.Greater(t, dst.Weights[0], float32(0))
}

func TestReduceBoneCountSortsUnsortedInput(t *testing.T) {
	// Raw storage order need not be ascending by weight: position 0 here
	// holds the largest weight, not the smallest. ReduceBoneCount must sort
	// by weight itself before keeping the kOut largest, rather than trusting
	// storage position.
	src := Attributes{
		Indices:      []uint16{20, 21, 22, 23},
		IndexStride:  4,
		Weights:      []float32{0.5, 0.05, 0.3}, // last implicit: 0.15
		WeightStride: 3,
	}
	dst := Attributes{
		Indices:      make([]uint16, 2),
		IndexStride:  2,
		Weights:      make([]float32, 2),
		WeightStride: 2,
	}
	require.NoError(t, ReduceBoneCount(dst, src, 2, 4, true))

	// The two largest weights are 0.5 (bone 20) and 0.3 (bone 22); sorted
	// ascending, bone 22 (rank 2) comes before bone 20 (rank 3).
	assert.Equal(t, []uint16{22, 20}, dst.Indices)

	sum := dst.Weights[0] + dst.Weights[1]
	assert.InDelta(t, 1.0, sum, 0.01)
	assert.InDelta(t, 0.375, dst.Weights[0], 0.01, "0.3/(0.3+0.5)")
	assert.InDelta(t, 0.625, dst.Weights[1], 0.01, "0.5/(0.3+0.5)")
}

func TestReduceBoneCountRejectsInvalidParams(t *testing.T) {
	var dst, src Attributes
	assert.Error(t, ReduceBoneCount(dst, src, 5, 4, true), "kOut > kIn")
	assert.Error(t, ReduceBoneCount(dst, src, 1, 4, true), "kOut < 2")
	assert.Error(t, ReduceBoneCount(dst, src, 2, 14, true), "kIn > supported bone count")
}
