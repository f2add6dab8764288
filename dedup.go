package vbac

import (
	"fmt"
	"sort"
)

// irrelevantBoneID marks a tuple slot whose bone id doesn't matter for
// matching purposes: either the vertex has fewer than MaxBoneCount non-zero
// influences, or the representative row hasn't committed to a value there
// yet.
const irrelevantBoneID = 0xffff

// dedupRow is one vertex's bone-index tuple together with the vertex it came
// from, the unit this package sorts and sweeps to find representative rows.
type dedupRow struct {
	vertexID uint32
	tuple    [supportedBoneCount]uint16
	k        uint32
}

// lessSuffixFirst orders two rows by comparing tuple entries from the last
// (largest-weight) position backward to the first, so the bone id most
// likely to matter for visual fidelity dominates the sort. irrelevantBoneID
// (0xffff) compares greater than every other id, so within a run the most
// specific tuple comes first.
func lessSuffixFirst(a, b dedupRow) bool {
	for i := int(a.k) - 1; i >= 0; i-- {
		if a.tuple[i] != b.tuple[i] {
			return a.tuple[i] < b.tuple[i]
		}
	}
	return false
}

// matchesRepresentative reports whether row can be served by representative
// without changing it: every position where row names a real bone (not
// irrelevantBoneID) must either agree with representative or find
// representative still unset (irrelevantBoneID) there.
func matchesRepresentative(representative, row [supportedBoneCount]uint16, k uint32) bool {
	for i := uint32(0); i < k; i++ {
		if row[i] == irrelevantBoneID {
			continue
		}
		if representative[i] != irrelevantBoneID && representative[i] != row[i] {
			return false
		}
	}
	return true
}

// mergeInto writes row's real bone ids into representative wherever
// representative is still unset.
func mergeInto(representative *[supportedBoneCount]uint16, row [supportedBoneCount]uint16, k uint32) {
	for i := uint32(0); i < k; i++ {
		if row[i] != irrelevantBoneID && representative[i] == irrelevantBoneID {
			representative[i] = row[i]
		}
	}
}

// CompressBuffers compresses every vertex in src into a fixed-size payload
// in dst.Compressed, alongside a shared table of representative bone-index
// tuples in dst.Table. Vertices whose explicit influences are a subset of a
// previously seen tuple are assigned that tuple's table row instead of a new
// one, so the table stays far smaller than the vertex count whenever meshes
// reuse the same few bone combinations.
//
// maxTableSize bounds the number of representative rows CompressBuffers will
// commit to dst.Table; once exceeded, compression still completes (every
// vertex still gets a tuple index and a compressed payload) but
// CompressBuffers returns a wrapped ErrTableOverflow, and dst.TableSize holds
// the row count actually needed so the caller can retry with a larger table.
func CompressBuffers(dst *CompressedBuffers, src Attributes, params Params, maxTableSize uint64) error {
	k := params.MaxBoneCount
	if params.Method == MethodNone || k < 2 || k > supportedBoneCount {
		return fmt.Errorf("vbac.CompressBuffers: %w: method=%v MaxBoneCount=%d", ErrInvalidParams, params.Method, k)
	}
	vertexCount := len(src.Indices) / int(src.IndexStride)

	rows := make([]dedupRow, vertexCount)
	for v := 0; v < vertexCount; v++ {
		srcIndices := src.Indices[uint32(v)*src.IndexStride : uint32(v)*src.IndexStride+k]
		srcWeights := src.Weights[uint32(v)*src.WeightStride : uint32(v)*src.WeightStride+(k-1)]

		// Every vertex is sorted ascending by weight before anything else
		// touches it, the same way the source's get_sorted_pairs does; src
		// is not required to arrive pre-sorted.
		pairs := sortedInfluences(srcIndices, srcWeights, k)
		sortedIndices, sortedWeights := splitSorted(pairs)

		// The row this vertex contributes to the table is its *effective*
		// tuple: positions whose weight degenerates to zero under the
		// chosen codec don't constrain which representative can serve the
		// vertex, so they're replaced by the wildcard sentinel.
		mask, err := flagZeroCompressedWeights(sortedIndices, sortedWeights, params)
		if err != nil {
			return fmt.Errorf("vbac.CompressBuffers: vertex %d: %w", v, err)
		}

		row := dedupRow{vertexID: uint32(v), k: k}
		for i := uint32(0); i < k-1; i++ {
			if mask&(1<<i) != 0 {
				row.tuple[i] = irrelevantBoneID
			} else {
				row.tuple[i] = sortedIndices[i]
			}
		}
		row.tuple[k-1] = sortedIndices[k-1]
		rows[v] = row
	}

	order := make([]int, vertexCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessSuffixFirst(rows[order[a]], rows[order[b]])
	})

	tupleOf := make([]uint64, vertexCount)
	var representatives [][supportedBoneCount]uint16
	var haveRep bool
	var repIdx int

	for _, oi := range order {
		row := rows[oi]

		singleton := true
		for i := uint32(0); i < k-1; i++ {
			if row.tuple[i] != irrelevantBoneID {
				singleton = false
				break
			}
		}
		if singleton {
			// A vertex with only one real influence names its own bone id
			// directly; it never needs a shared representative row.
			tupleOf[row.vertexID] = uint64(row.tuple[k-1])
			continue
		}

		if haveRep && matchesRepresentative(representatives[repIdx], row.tuple, k) {
			mergeInto(&representatives[repIdx], row.tuple, k)
		} else {
			representatives = append(representatives, row.tuple)
			repIdx = len(representatives) - 1
			haveRep = true
		}
		tupleOf[row.vertexID] = uint64(repIdx)
	}

	tableSize := uint64(len(representatives))
	dst.TableSize = tableSize
	rowsToWrite := tableSize
	var overflow error
	if tableSize > maxTableSize {
		rowsToWrite = maxTableSize
		overflow = fmt.Errorf("vbac.CompressBuffers: %w: need %d rows, have %d", ErrTableOverflow, tableSize, maxTableSize)
	}
	for r := uint64(0); r < rowsToWrite; r++ {
		for i := uint32(0); i < k; i++ {
			dst.Table[r*uint64(k)+uint64(i)] = representatives[r][i]
		}
	}

	dst.Compressed = dst.Compressed[:0]
	if cap(dst.Compressed) < vertexCount*int(params.VertexSize) {
		dst.Compressed = make([]byte, vertexCount*int(params.VertexSize))
	} else {
		dst.Compressed = dst.Compressed[:vertexCount*int(params.VertexSize)]
		// A reused buffer is cleared so payload bits no codec writes are zero.
		for i := range dst.Compressed {
			dst.Compressed[i] = 0
		}
	}

	for v := 0; v < vertexCount; v++ {
		srcIndices := src.Indices[uint32(v)*src.IndexStride : uint32(v)*src.IndexStride+k]
		srcWeights := src.Weights[uint32(v)*src.WeightStride : uint32(v)*src.WeightStride+(k-1)]
		pairs := sortedInfluences(srcIndices, srcWeights, k)
		sortedIndices, sortedWeights := splitSorted(pairs)
		buf := dst.Compressed[uint32(v)*params.VertexSize : uint32(v+1)*params.VertexSize]
		if err := compressVertex(buf, sortedIndices, sortedWeights, tupleOf[v], params); err != nil {
			return fmt.Errorf("vbac.CompressBuffers: vertex %d: %w", v, err)
		}
	}
	return overflow
}
