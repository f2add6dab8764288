package vbac

import "testing"

func TestCompressDecompressUnitCubeRoundTrip(t *testing.T) {
	p := CompleteParams(Params{Method: MethodUnitCube, MaxBoneCount: 4, MaxTupleCount: 100, VertexSize: 4})
	indices := []uint16{1, 2, 3, 4}
	weights := []float32{0.1, 0.2, 0.3} // last implicit: 0.4
	buf := make([]byte, p.VertexSize)
	if err := compressVertex(buf, indices, weights, 7, p); err != nil {
		t.Fatalf("compressVertex: %v", err)
	}
	got, tupleIndex, err := decompressVertex(buf, p)
	if err != nil {
		t.Fatalf("decompressVertex: %v", err)
	}
	if tupleIndex != 7 {
		t.Fatalf("tupleIndex = %d, want 7", tupleIndex)
	}
	for i, w := range weights {
		if diff := got[i] - w; diff > 0.05 || diff < -0.05 {
			t.Fatalf("weights[%d] = %v, want ~%v", i, got[i], w)
		}
	}
}

func TestCompressDecompressPo2AABBRoundTrip(t *testing.T) {
	p := CompleteParams(Params{Method: MethodPo2AABB, MaxBoneCount: 4, MaxTupleCount: 100})
	indices := []uint16{1, 2, 3, 4}
	weights := []float32{0.1, 0.15, 0.25} // last implicit: 0.5
	buf := make([]byte, p.VertexSize)
	if err := compressVertex(buf, indices, weights, 3, p); err != nil {
		t.Fatalf("compressVertex: %v", err)
	}
	got, tupleIndex, err := decompressVertex(buf, p)
	if err != nil {
		t.Fatalf("decompressVertex: %v", err)
	}
	if tupleIndex != 3 {
		t.Fatalf("tupleIndex = %d, want 3", tupleIndex)
	}
	sum := got[0] + got[1] + got[2]
	if sum < 0 || sum > 0.6 {
		t.Fatalf("decoded explicit weights sum = %v, outside plausible range", sum)
	}
}

func TestCompressDecompressOSSIsExact(t *testing.T) {
	p := CompleteParams(Params{Method: MethodOSS19, MaxBoneCount: 4, MaxTupleCount: 16})
	indices := []uint16{1, 2, 3, 4}
	weights := []float32{0, 0, 0} // trivial singleton: last implicit = 1
	buf := make([]byte, p.VertexSize)
	if err := compressVertex(buf, indices, weights, 5, p); err != nil {
		t.Fatalf("compressVertex: %v", err)
	}
	got, tupleIndex, err := decompressVertex(buf, p)
	if err != nil {
		t.Fatalf("decompressVertex: %v", err)
	}
	if tupleIndex != 5 {
		t.Fatalf("tupleIndex = %d, want 5", tupleIndex)
	}
	for i, w := range got {
		if w != 0 {
			t.Fatalf("weights[%d] = %v, want exactly 0", i, w)
		}
	}
}

func TestCompressDecompressPermutationRoundTrip(t *testing.T) {
	p := CompleteParams(Params{Method: MethodPermutation, MaxBoneCount: 4, MaxTupleCount: 100, VertexSize: 3})
	if !p.PermutationCodec.Valid() {
		t.Fatal("no permutation codec row selected")
	}
	indices := []uint16{1, 2, 3, 4}
	weights := []float32{0, 0, 0} // singleton: last implicit = 1
	buf := make([]byte, p.VertexSize)
	extra := p.PermutationCodec.P // code for tuple index 1 with an all-zero weight digit
	_ = extra
	if err := compressVertex(buf, indices, weights, 1, p); err != nil {
		t.Fatalf("compressVertex: %v", err)
	}
	got, tupleIndex, err := decompressVertex(buf, p)
	if err != nil {
		t.Fatalf("decompressVertex: %v", err)
	}
	if tupleIndex != 1 {
		t.Fatalf("tupleIndex = %d, want 1", tupleIndex)
	}
	sum := float32(0)
	for _, w := range got {
		sum += w
	}
	if sum != 0 {
		t.Fatalf("explicit weights sum = %v, want 0", sum)
	}
}

func TestFlagZeroCompressedWeightsDetectsCollapse(t *testing.T) {
	p := CompleteParams(Params{Method: MethodUnitCube, MaxBoneCount: 4, MaxTupleCount: 16})
	indices := []uint16{1, 2, 3, 4}
	weights := []float32{0.0001, 0.2, 0.3} // rank 0 likely quantizes to zero
	mask, err := flagZeroCompressedWeights(indices, weights, p)
	if err != nil {
		t.Fatalf("flagZeroCompressedWeights: %v", err)
	}
	if mask&(1<<0) == 0 {
		t.Fatalf("mask = %b, want bit 0 set for the near-zero weight", mask)
	}
}
