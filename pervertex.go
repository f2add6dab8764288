package vbac

import (
	"fmt"
	"math"

	"github.com/vtxcompress/vbac/bitpack"
	"github.com/vtxcompress/vbac/oss"
	"github.com/vtxcompress/vbac/permcode"
	"github.com/vtxcompress/vbac/quant"
)

// compressVertex writes one vertex's fixed-size compressed payload into buf,
// which must be exactly p.VertexSize bytes. weights holds the k-1 explicit,
// ascending sorted weights (the largest is implicit, recovered from the
// sum-to-one constraint); indices holds all k bone indices, same order.
func compressVertex(buf []byte, indices []uint16, weights []float32, tupleIndex uint64, p Params) error {
	switch p.Method {
	case MethodNone:
		compressNone(buf, indices, weights)
		return nil
	case MethodUnitCube:
		compressUnitCube(buf, weights, tupleIndex, p)
		return nil
	case MethodPo2AABB:
		compressPo2AABB(buf, weights, tupleIndex, p)
		return nil
	case MethodOSS19, MethodOSS22, MethodOSS35:
		return compressOSS(buf, weights, tupleIndex, p)
	case MethodPermutation:
		return compressPermutation(buf, weights, tupleIndex, p)
	default:
		return fmt.Errorf("vbac.compressVertex: %w: method=%v", ErrInvalidParams, p.Method)
	}
}

// decompressVertex inverts compressVertex, returning the k-1 explicit
// ascending weights (the implicit largest is not included) and the tuple
// index.
func decompressVertex(buf []byte, p Params) (weights []float32, tupleIndex uint64, err error) {
	switch p.Method {
	case MethodNone:
		return decompressNone(buf, p)
	case MethodUnitCube:
		return decompressUnitCube(buf, p)
	case MethodPo2AABB:
		return decompressPo2AABB(buf, p)
	case MethodOSS19, MethodOSS22, MethodOSS35:
		return decompressOSS(buf, p)
	case MethodPermutation:
		return decompressPermutation(buf, p)
	default:
		return nil, 0, fmt.Errorf("vbac.decompressVertex: %w: method=%v", ErrInvalidParams, p.Method)
	}
}

func lastWeight(weights []float32) float32 {
	sum := float32(0)
	for _, w := range weights {
		sum += w
	}
	last := 1 - sum
	if last < 0 {
		last = 0
	}
	return last
}

func compressNone(buf []byte, indices []uint16, weights []float32) {
	offset := uint32(0)
	for _, idx := range indices {
		bitpack.Insert(buf, uint32(idx), offset, 16)
		offset += 16
	}
	for _, w := range weights {
		bitpack.Insert(buf, math.Float32bits(w), offset, 32)
		offset += 32
	}
	bitpack.Insert(buf, math.Float32bits(lastWeight(weights)), offset, 32)
}

func decompressNone(buf []byte, p Params) ([]float32, uint64, error) {
	offset := uint32(16 * p.MaxBoneCount)
	weights := make([]float32, p.MaxBoneCount-1)
	for r := range weights {
		weights[r] = math.Float32frombits(bitpack.Extract(buf, offset, 32))
		offset += 32
	}
	return weights, 0, nil
}

func compressUnitCube(buf []byte, weights []float32, tupleIndex uint64, p Params) {
	offset := uint32(0)
	for _, w := range weights {
		q := quant.Unit(w, p.WeightBaseBitCount)
		bitpack.Insert(buf, q, offset, p.WeightBaseBitCount)
		offset += p.WeightBaseBitCount
	}
	insertWide(buf, tupleIndex, offset, p.TupleIndexBitCount)
}

func decompressUnitCube(buf []byte, p Params) ([]float32, uint64, error) {
	offset := uint32(0)
	weights := make([]float32, p.MaxBoneCount-1)
	for r := range weights {
		q := bitpack.Extract(buf, offset, p.WeightBaseBitCount)
		weights[r] = quant.DequantizeUnit(q, p.WeightBaseBitCount)
		offset += p.WeightBaseBitCount
	}
	tupleIndex := extractWide(buf, offset, p.TupleIndexBitCount)
	return weights, tupleIndex, nil
}

// po2RankBits returns the bit width power-of-two AABB quantization gives the
// explicit weight at rank r (0 = largest explicit, counting down from the
// implicit largest), matching permcode's rank numbering.
func po2RankBits(p Params, r int) uint32 {
	bits := p.WeightBaseBitCount
	if r < len(po2Savings) {
		bits -= po2Savings[r]
	}
	return bits
}

func compressPo2AABB(buf []byte, weights []float32, tupleIndex uint64, p Params) {
	k := int(p.MaxBoneCount)
	offset := uint32(0)
	for r := 0; r < k-1; r++ {
		bits := po2RankBits(p, r)
		w := weights[k-2-r]
		q := quant.Half(w, bits)
		bitpack.Insert(buf, q, offset, bits)
		offset += bits
	}
	insertWide(buf, tupleIndex, offset, p.TupleIndexBitCount)
}

func decompressPo2AABB(buf []byte, p Params) ([]float32, uint64, error) {
	k := int(p.MaxBoneCount)
	weights := make([]float32, k-1)
	offset := uint32(0)
	for r := 0; r < k-1; r++ {
		bits := po2RankBits(p, r)
		q := bitpack.Extract(buf, offset, bits)
		weights[k-2-r] = quant.DequantizeHalf(q, bits)
		offset += bits
	}
	tupleIndex := extractWide(buf, offset, p.TupleIndexBitCount)
	return weights, tupleIndex, nil
}

func compressOSS(buf []byte, weights []float32, tupleIndex uint64, p Params) error {
	bitCount := p.Method.ossBitCount()
	reversed := [4]float64{
		float64(lastWeight(weights)),
		float64(weights[2]),
		float64(weights[1]),
		float64(weights[0]),
	}
	code, _, err := oss.Compress(reversed, bitCount)
	if err != nil {
		return fmt.Errorf("vbac.compressOSS: %w", ErrUnsupportedBitCount)
	}
	insertWide(buf, code, 0, bitCount)
	insertWide(buf, tupleIndex, bitCount, p.TupleIndexBitCount)
	return nil
}

func decompressOSS(buf []byte, p Params) ([]float32, uint64, error) {
	bitCount := p.Method.ossBitCount()
	code := extractWide(buf, 0, bitCount)
	info, err := ossInfoFor(bitCount)
	if err != nil {
		return nil, 0, fmt.Errorf("vbac.decompressOSS: %w", ErrUnsupportedBitCount)
	}
	reversed := oss.Decompress(code, info)
	weights := []float32{
		float32(reversed[3]),
		float32(reversed[2]),
		float32(reversed[1]),
	}
	tupleIndex := extractWide(buf, bitCount, p.TupleIndexBitCount)
	return weights, tupleIndex, nil
}

// ossInfoFor recomputes the oss.Info a bit count implies by round-tripping a
// throwaway compress call; oss.Compress is the package's only exported path
// to a populated Info, since Info bundles precomputed constants the decoder
// alone has no cheap way to rebuild.
func ossInfoFor(bitCount uint32) (oss.Info, error) {
	_, info, err := oss.Compress([4]float64{1, 0, 0, 0}, bitCount)
	return info, err
}

func compressPermutation(buf []byte, weights []float32, tupleIndex uint64, p Params) error {
	if !p.PermutationCodec.Valid() {
		return fmt.Errorf("vbac.compressPermutation: %w", ErrUnsupportedParams)
	}
	weights64 := make([]float64, len(weights))
	for i, w := range weights {
		weights64[i] = float64(w)
	}
	code := permcode.Encode(weights64, tupleIndex, p.PermutationCodec)
	insertWide(buf, code, 0, p.VertexSize*8)
	return nil
}

func decompressPermutation(buf []byte, p Params) ([]float32, uint64, error) {
	if !p.PermutationCodec.Valid() {
		return nil, 0, fmt.Errorf("vbac.decompressPermutation: %w", ErrUnsupportedParams)
	}
	code := extractWide(buf, 0, p.VertexSize*8)
	weights64, tupleIndex := permcode.Decode(code, p.PermutationCodec)
	weights := make([]float32, len(weights64)-1)
	for i := range weights {
		weights[i] = float32(weights64[i])
	}
	return weights, tupleIndex, nil
}

// insertWide writes a value wider than bitpack.MaxBitCount by splitting it
// into two chunks; no codec in this package needs more than 2*MaxBitCount
// bits for a single field.
func insertWide(buf []byte, value uint64, offset, bitCount uint32) {
	if bitCount == 0 {
		return
	}
	low := bitCount
	if low > bitpack.MaxBitCount {
		low = bitpack.MaxBitCount
	}
	bitpack.Insert(buf, uint32(value), offset, low)
	if bitCount > low {
		bitpack.Insert(buf, uint32(value>>low), offset+low, bitCount-low)
	}
}

func extractWide(buf []byte, offset, bitCount uint32) uint64 {
	if bitCount == 0 {
		return 0
	}
	low := bitCount
	if low > bitpack.MaxBitCount {
		low = bitpack.MaxBitCount
	}
	result := uint64(bitpack.Extract(buf, offset, low))
	if bitCount > low {
		result |= uint64(bitpack.Extract(buf, offset+low, bitCount-low)) << low
	}
	return result
}

// flagZeroCompressedWeights reports, as a bitmask over the k ascending
// weight ranks (bit r set if rank r's reconstructed weight is zero after a
// compress/decompress round trip), which influences this method's
// quantization collapses to zero. Rank k-1 (the implicit largest) is never
// flagged: it only reaches zero if every explicit weight alone already sums
// to at least one, a degenerate input no caller is expected to pass.
func flagZeroCompressedWeights(indices []uint16, weights []float32, p Params) (uint32, error) {
	buf := make([]byte, p.VertexSize)
	if err := compressVertex(buf, indices, weights, 0, p); err != nil {
		return 0, err
	}
	got, _, err := decompressVertex(buf, p)
	if err != nil {
		return 0, err
	}
	var mask uint32
	for r, w := range got {
		if w <= 0 {
			mask |= 1 << uint(r)
		}
	}
	return mask, nil
}
