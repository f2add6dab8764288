// Package vbac compresses per-vertex skinning blend attributes — a sorted
// tuple of bone weights plus a small set of bone indices — into a compact
// fixed-size payload plus a shared bone-index table.
//
// The package is a pure, allocation-bounded numeric library: it never
// touches a file, never retains a caller's slice beyond a call, and every
// operation is a function of its arguments and the immutable parameter
// bundle a run completes once up front. See internal/container and the
// cmd/vbac-pack, cmd/vbac-digest tools for the ambient layer that drives
// this package from the command line.
package vbac

import (
	"fmt"

	"github.com/vtxcompress/vbac/permcode"
)

// Method selects one of the weight codecs a vertex's payload is built with.
type Method int

const (
	// MethodNone stores weights and indices uncompressed: one uint16 index
	// and one float32 weight per bone.
	MethodNone Method = iota
	// MethodUnitCube quantizes each weight independently onto [0,1].
	MethodUnitCube
	// MethodPo2AABB quantizes each weight onto [0, 1/2] with a per-rank bit
	// budget that shrinks for smaller weights.
	MethodPo2AABB
	// MethodOSS19 is optimal simplex sampling at a 19-bit weight budget.
	MethodOSS19
	// MethodOSS22 is optimal simplex sampling at a 22-bit weight budget.
	MethodOSS22
	// MethodOSS35 is optimal simplex sampling at a 35-bit weight budget.
	MethodOSS35
	// MethodPermutation is the mixed-radix permutation codec.
	MethodPermutation
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodUnitCube:
		return "unit_cube"
	case MethodPo2AABB:
		return "po2_aabb"
	case MethodOSS19:
		return "oss_19"
	case MethodOSS22:
		return "oss_22"
	case MethodOSS35:
		return "oss_35"
	case MethodPermutation:
		return "permutation"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ossBitCount returns the weight-code bit count for the OSS methods, or 0
// for any other method.
func (m Method) ossBitCount() uint32 {
	switch m {
	case MethodOSS19:
		return 19
	case MethodOSS22:
		return 22
	case MethodOSS35:
		return 35
	default:
		return 0
	}
}

// Params is a codec parameter bundle. A caller fills in Method, MaxBoneCount,
// VertexSize and MaxTupleCount and passes the result to CompleteParams
// before using it with CompressBuffers.
type Params struct {
	Method Method
	// MaxBoneCount is the number of influences (k) carried per vertex, in
	// [2, 13].
	MaxBoneCount uint32
	// VertexSize is the fixed payload size of a compressed vertex, in
	// bytes.
	VertexSize uint32
	// WeightBaseBitCount is the per-weight bit width for unit_cube and
	// po2_aabb; unused by other methods.
	WeightBaseBitCount uint32
	// TupleIndexBitCount is the number of payload bits given to the tuple
	// index.
	TupleIndexBitCount uint32
	// MaxTupleCount upper-bounds the number of distinct index tuples the
	// payload's tuple-index field can name.
	MaxTupleCount uint64
	// PermutationCodec is the table row selected for MethodPermutation;
	// the zero value for every other method.
	PermutationCodec permcode.Codec
}

// po2Savings is the per-rank bit count power-of-two AABB quantization saves
// relative to weightBaseBitCount, because the r-th largest sorted weight
// (0-indexed from the second-largest; the largest is implicit) is bounded
// above by 1/(r+2).
var po2Savings = [12]uint32{0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2}

// Influence is a single (bone, weight) pair contributing to a vertex.
type Influence struct {
	BoneID uint16
	Weight float32
}

// Attributes is a strided view over a buffer's per-vertex bone indices and
// weights: vertex i's k bone indices start at Indices[i*IndexStride:], and
// its k-1 explicit weights start at Weights[i*WeightStride:]; the k-th
// weight is always implicit, computed as 1 minus the sum of the others.
// Neither array is required to already be sorted by weight; ReduceBoneCount
// and CompressBuffers each derive the ascending sorted-influence list for a
// vertex internally before using it.
type Attributes struct {
	Indices      []uint16
	IndexStride  uint32
	Weights      []float32
	WeightStride uint32
}

// CompressedBuffers receives the output of CompressBuffers: a table of
// representative bone-index tuples and a flat byte buffer of fixed-size
// compressed vertices.
type CompressedBuffers struct {
	// Table holds TableSize rows of MaxBoneCount uint16 bone ids each.
	Table []uint16
	// TableSize is the number of representative rows the run needs, which
	// may be less than len(Table)/MaxBoneCount if the caller over-allocated.
	// When CompressBuffers reports ErrTableOverflow it exceeds the number of
	// rows actually written to Table.
	TableSize uint64
	// Compressed holds VertexCount*params.VertexSize bytes.
	Compressed []byte
}

// Sentinel errors, matched with errors.Is against the wrapped error
// ReduceBoneCount and CompressBuffers return.
var (
	// ErrInvalidParams reports a bone count or reduction request outside
	// the supported range.
	ErrInvalidParams = fmt.Errorf("vbac: invalid params")
	// ErrUnsupportedParams reports a permutation-codec table lookup with no
	// populated row; only reachable if CompleteParams was bypassed.
	ErrUnsupportedParams = fmt.Errorf("vbac: unsupported params")
	// ErrUnsupportedBitCount reports an OSS bit count outside its lookup
	// table.
	ErrUnsupportedBitCount = fmt.Errorf("vbac: unsupported bit count")
	// ErrTableOverflow reports that deduplication produced more
	// representatives than the caller's table could hold; the compressed
	// bytes remain valid, the table was truncated.
	ErrTableOverflow = fmt.Errorf("vbac: table overflow")
)

// supportedBoneCount is the largest max bone count this package's stack
// arrays and the permutation codec table support.
const supportedBoneCount = 13
