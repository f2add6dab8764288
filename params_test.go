package vbac

import "testing"

func TestCompleteParamsUnitCubeFitsVertexSize(t *testing.T) {
	p := CompleteParams(Params{
		Method:        MethodUnitCube,
		MaxBoneCount:  4,
		MaxTupleCount: 1000,
	})
	total := p.WeightBaseBitCount*(p.MaxBoneCount-1) + p.TupleIndexBitCount
	if total > p.VertexSize*8 {
		t.Fatalf("unit_cube: %d bits don't fit in %d-byte vertex", total, p.VertexSize)
	}
	if p.WeightBaseBitCount < 2 || p.WeightBaseBitCount > 23 {
		t.Fatalf("unit_cube: weight base bit count %d out of range", p.WeightBaseBitCount)
	}
}

func TestCompleteParamsIsIdempotent(t *testing.T) {
	for _, method := range []Method{MethodUnitCube, MethodPo2AABB, MethodOSS22, MethodPermutation} {
		once := CompleteParams(Params{Method: method, MaxBoneCount: 4, MaxTupleCount: 500})
		twice := CompleteParams(once)
		if !paramsEqual(once, twice) {
			t.Fatalf("method %v: CompleteParams not idempotent: %+v vs %+v", method, once, twice)
		}
	}
}

// paramsEqual compares the fields CompleteParams is expected to fix at a
// stable point; Params itself can't be compared with == since
// PermutationCodec carries a slice.
func paramsEqual(a, b Params) bool {
	return a.Method == b.Method &&
		a.MaxBoneCount == b.MaxBoneCount &&
		a.VertexSize == b.VertexSize &&
		a.WeightBaseBitCount == b.WeightBaseBitCount &&
		a.TupleIndexBitCount == b.TupleIndexBitCount &&
		a.MaxTupleCount == b.MaxTupleCount &&
		a.PermutationCodec.K == b.PermutationCodec.K &&
		a.PermutationCodec.W == b.PermutationCodec.W &&
		a.PermutationCodec.P == b.PermutationCodec.P
}

func TestCompleteParamsOSSForcesFourBones(t *testing.T) {
	p := CompleteParams(Params{Method: MethodOSS19, MaxBoneCount: 8, MaxTupleCount: 64})
	if p.MaxBoneCount != 4 {
		t.Fatalf("oss_19: MaxBoneCount = %d, want 4", p.MaxBoneCount)
	}
}

func TestCompleteParamsPermutationSelectsValidRow(t *testing.T) {
	p := CompleteParams(Params{Method: MethodPermutation, MaxBoneCount: 4, MaxTupleCount: 100, VertexSize: 2})
	if !p.PermutationCodec.Valid() {
		t.Fatalf("permutation: no codec row selected for %+v", p)
	}
}

func TestCompleteParamsClampsMaxBoneCount(t *testing.T) {
	p := CompleteParams(Params{Method: MethodNone, MaxBoneCount: 100})
	if p.MaxBoneCount != supportedBoneCount {
		t.Fatalf("MaxBoneCount = %d, want %d", p.MaxBoneCount, supportedBoneCount)
	}
	p = CompleteParams(Params{Method: MethodNone, MaxBoneCount: 1})
	if p.MaxBoneCount != 2 {
		t.Fatalf("MaxBoneCount = %d, want 2", p.MaxBoneCount)
	}
}
