package vbac

import "sort"

// sortedInfluences reads one vertex's k bone indices and k-1 explicit
// weights from raw, caller-owned slices (see Attributes), computes the
// implicit k-th weight, and returns all k influences sorted ascending by
// weight. Neither indices nor weights is assumed to already be ordered that
// way: the caller's raw layout only guarantees that weights holds the first
// k-1 positions and the implicit weight belongs at the k-th, exactly the
// precondition the source's get_sorted_pairs resolves before anything else
// touches a vertex.
//
// indices must have length k; weights must have length k-1.
func sortedInfluences(indices []uint16, weights []float32, k uint32) []Influence {
	pairs := make([]Influence, k)
	for i := uint32(0); i < k-1; i++ {
		pairs[i] = Influence{BoneID: indices[i], Weight: weights[i]}
	}
	pairs[k-1] = Influence{BoneID: indices[k-1], Weight: lastWeight(weights)}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Weight < pairs[b].Weight
	})
	return pairs
}

// splitSorted separates a sorted influence list back into parallel index and
// explicit-weight slices, the shape compressVertex/flagZeroCompressedWeights
// expect: all k bone ids, and the k-1 smallest weights (the largest stays
// implicit).
func splitSorted(pairs []Influence) (indices []uint16, weights []float32) {
	indices = make([]uint16, len(pairs))
	weights = make([]float32, len(pairs)-1)
	for i, p := range pairs {
		indices[i] = p.BoneID
		if i < len(weights) {
			weights[i] = p.Weight
		}
	}
	return indices, weights
}
