package vbac

import "github.com/vtxcompress/vbac/permcode"

// CompleteParams fills in the derived fields of a partially specified
// parameter bundle: the tuple-index bit width, the per-weight bit width (or
// permutation-codec row), and the realized vertex size. It never fails; an
// unrealizable request (most commonly, a MaxTupleCount no permutation-codec
// tuple-count class can cover) downgrades Method to MethodNone rather than
// returning an error, since this is the policy layer, not a validator.
//
// CompleteParams is idempotent: completing an already-completed bundle
// yields the same bundle field-for-field.
func CompleteParams(p Params) Params {
	if p.MaxBoneCount < 2 {
		p.MaxBoneCount = 2
	}
	if p.MaxBoneCount > supportedBoneCount {
		p.MaxBoneCount = supportedBoneCount
	}

	tupleIndexBitCount := uint32(0)
	for (uint64(1) << tupleIndexBitCount) < p.MaxTupleCount {
		tupleIndexBitCount++
	}

	switch p.Method {
	case MethodUnitCube:
		completeUnitCube(&p, tupleIndexBitCount)
	case MethodPo2AABB:
		completePo2AABB(&p, tupleIndexBitCount)
	case MethodOSS19, MethodOSS22, MethodOSS35:
		completeOSS(&p, tupleIndexBitCount)
	case MethodPermutation:
		completePermutation(&p)
	case MethodNone:
		p.VertexSize = p.MaxBoneCount * (4 + 2)
	default:
		p.Method = MethodNone
		p.VertexSize = p.MaxBoneCount * (4 + 2)
	}
	return p
}

func completeUnitCube(p *Params, tupleIndexBitCount uint32) {
	if p.VertexSize*8 <= tupleIndexBitCount {
		p.VertexSize = (tupleIndexBitCount + 15) / 8
	}
	totalWeightBitCount := p.VertexSize*8 - tupleIndexBitCount
	weightBaseBitCount := totalWeightBitCount / (p.MaxBoneCount - 1)
	if weightBaseBitCount < 2 {
		weightBaseBitCount = 2
	}
	if weightBaseBitCount > 23 {
		weightBaseBitCount = 23
	}
	totalBitCount := weightBaseBitCount*(p.MaxBoneCount-1) + tupleIndexBitCount
	p.WeightBaseBitCount = weightBaseBitCount
	p.VertexSize = (totalBitCount + 7) / 8
	p.TupleIndexBitCount = tupleIndexBitCount
	p.MaxTupleCount = uint64(1) << tupleIndexBitCount
}

func completePo2AABB(p *Params, tupleIndexBitCount uint32) {
	if p.VertexSize*8 <= tupleIndexBitCount {
		p.VertexSize = (tupleIndexBitCount + 15) / 8
	}
	totalWeightBitCount := p.VertexSize*8 - tupleIndexBitCount
	savedBitCount := uint32(0)
	for i := uint32(0); i != p.MaxBoneCount-1; i++ {
		savedBitCount += po2Savings[i]
	}
	weightBaseBitCount := (totalWeightBitCount + savedBitCount) / (p.MaxBoneCount - 1)
	if weightBaseBitCount < 2 {
		weightBaseBitCount = 2
	}
	if weightBaseBitCount > 22 {
		weightBaseBitCount = 22
	}
	totalBitCount := weightBaseBitCount*(p.MaxBoneCount-1) - savedBitCount + tupleIndexBitCount
	p.WeightBaseBitCount = weightBaseBitCount
	p.VertexSize = (totalBitCount + 7) / 8
	p.TupleIndexBitCount = tupleIndexBitCount
	p.MaxTupleCount = uint64(1) << tupleIndexBitCount
}

func completeOSS(p *Params, tupleIndexBitCount uint32) {
	p.MaxBoneCount = 4
	bitCount := p.Method.ossBitCount()
	p.VertexSize = (bitCount + tupleIndexBitCount + 7) / 8
	p.TupleIndexBitCount = tupleIndexBitCount
	p.MaxTupleCount = uint64(1) << tupleIndexBitCount
}

func completePermutation(p *Params) {
	if p.VertexSize > 8 {
		p.VertexSize = 8
	}
	tupleCountIndex := -1
	for i, count := range permcode.TupleCounts {
		if count >= p.MaxTupleCount {
			p.MaxTupleCount = count
			tupleCountIndex = i
			break
		}
	}
	if tupleCountIndex == -1 {
		// No supported tuple-count class covers this request; fall back to
		// the uncompressed representation rather than fail.
		p.Method = MethodNone
		p.VertexSize = p.MaxBoneCount * (4 + 2)
		return
	}
	if p.VertexSize == 0 {
		p.VertexSize = 1
	}
	for permcode.Codecs[tupleCountIndex][p.MaxBoneCount-2][p.VertexSize-1].K == 0 && p.VertexSize < 8 {
		p.VertexSize++
	}
	for permcode.Codecs[tupleCountIndex][p.MaxBoneCount-2][p.VertexSize-1].K == 0 && p.VertexSize > 1 {
		p.VertexSize--
	}
	p.PermutationCodec = permcode.Codecs[tupleCountIndex][p.MaxBoneCount-2][p.VertexSize-1]
}
