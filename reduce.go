package vbac

import "fmt"

// ReduceBoneCount copies src into dst with fewer influences per vertex,
// dropping the kIn-kOut smallest-weight influences of each vertex and
// renormalizing the survivors so their weights still sum to one. Each
// vertex's influences are sorted ascending by weight first, so the
// survivors are always its kOut largest-weight influences regardless of the
// order src stores them in; src need not already be sorted.
//
// kOut must be in [2, kIn] and kIn must be at most the package's supported
// bone count, or ReduceBoneCount returns a wrapped ErrInvalidParams. dst's
// Indices and Weights must already be sized for kOut influences per vertex;
// ReduceBoneCount does not allocate.
//
// writeLastWeight controls whether the largest (implicit) weight is written
// to dst.Weights: when false, only kOut-1 weights are written per vertex and
// the caller is expected to recover the last one via the sum-to-one
// convention, matching the wire format most compressors target.
func ReduceBoneCount(dst, src Attributes, kOut, kIn uint32, writeLastWeight bool) error {
	if kOut > kIn || kOut < 2 || kIn > supportedBoneCount {
		return fmt.Errorf("vbac.ReduceBoneCount: %w: kOut=%d kIn=%d", ErrInvalidParams, kOut, kIn)
	}

	vertexCount := len(src.Indices) / int(src.IndexStride)
	newBegin := kIn - kOut

	for v := 0; v < vertexCount; v++ {
		srcIndices := src.Indices[uint32(v)*src.IndexStride : uint32(v)*src.IndexStride+kIn]
		srcWeights := src.Weights[uint32(v)*src.WeightStride : uint32(v)*src.WeightStride+(kIn-1)]
		dstIndices := dst.Indices[uint32(v)*dst.IndexStride:]
		dstWeights := dst.Weights[uint32(v)*dst.WeightStride:]

		pairs := sortedInfluences(srcIndices, srcWeights, kIn)

		sum := float32(0)
		for j := uint32(0); j < kOut; j++ {
			sum += pairs[newBegin+j].Weight
		}
		inv := float32(1)
		if sum > 0 {
			inv = 1 / sum
		}

		for j := uint32(0); j < kOut; j++ {
			dstIndices[j] = pairs[newBegin+j].BoneID
		}
		limit := kOut
		if !writeLastWeight {
			limit = kOut - 1
		}
		for j := uint32(0); j < limit; j++ {
			dstWeights[j] = pairs[newBegin+j].Weight * inv
		}
	}
	return nil
}
