package vbac

import (
	"errors"
	"testing"
)

func TestCompressBuffersCollapsesDuplicateTuples(t *testing.T) {
	p := CompleteParams(Params{Method: MethodUnitCube, MaxBoneCount: 3, MaxTupleCount: 16})

	// Three vertices, all sharing the same bone-index tuple {1,2,3}.
	src := Attributes{
		Indices:      []uint16{1, 2, 3, 1, 2, 3, 1, 2, 3},
		IndexStride:  3,
		Weights:      []float32{0.2, 0.3, 0.2, 0.3, 0.2, 0.3},
		WeightStride: 2,
	}

	var dst CompressedBuffers
	dst.Table = make([]uint16, 8*3)
	if err := CompressBuffers(&dst, src, p, 8); err != nil {
		t.Fatalf("CompressBuffers: %v", err)
	}
	if dst.TableSize != 1 {
		t.Fatalf("TableSize = %d, want 1 (all three vertices share one tuple)", dst.TableSize)
	}
	if len(dst.Compressed) != 3*int(p.VertexSize) {
		t.Fatalf("len(Compressed) = %d, want %d", len(dst.Compressed), 3*int(p.VertexSize))
	}
}

func TestCompressBuffersMergesByCoverage(t *testing.T) {
	p := CompleteParams(Params{Method: MethodUnitCube, MaxBoneCount: 3, MaxTupleCount: 16})

	// Vertex A's smallest-weight influence quantizes to exactly zero, so its
	// bone id there is irrelevant (⊥) and it can be served by any
	// representative agreeing on the other two positions. Vertex B supplies
	// a full, non-degenerate tuple covering that position.
	src := Attributes{
		Indices:      []uint16{99, 6, 7, 5, 6, 7},
		IndexStride:  3,
		Weights:      []float32{0, 0.9, 0.05, 0.9},
		WeightStride: 2,
	}

	var dst CompressedBuffers
	dst.Table = make([]uint16, 4*3)
	if err := CompressBuffers(&dst, src, p, 4); err != nil {
		t.Fatalf("CompressBuffers: %v", err)
	}
	if dst.TableSize != 1 {
		t.Fatalf("TableSize = %d, want 1 (A's degenerate position is covered by B)", dst.TableSize)
	}
}

func TestCompressBuffersRejectsMethodNone(t *testing.T) {
	p := CompleteParams(Params{Method: MethodNone, MaxBoneCount: 3})

	src := Attributes{
		Indices:      []uint16{1, 2, 3},
		IndexStride:  3,
		Weights:      []float32{0.2, 0.3},
		WeightStride: 2,
	}

	var dst CompressedBuffers
	dst.Table = make([]uint16, 3)
	err := CompressBuffers(&dst, src, p, 1)
	if !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("CompressBuffers with MethodNone: err = %v, want ErrInvalidParams", err)
	}
}

func TestCompressBuffersReportsTableOverflow(t *testing.T) {
	p := CompleteParams(Params{Method: MethodUnitCube, MaxBoneCount: 3, MaxTupleCount: 16})

	// Three vertices, each with a distinct bone tuple: three table rows
	// needed, but the caller only allows one.
	src := Attributes{
		Indices:      []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9},
		IndexStride:  3,
		Weights:      []float32{0.2, 0.3, 0.2, 0.3, 0.2, 0.3},
		WeightStride: 2,
	}

	var dst CompressedBuffers
	dst.Table = make([]uint16, 1*3)
	err := CompressBuffers(&dst, src, p, 1)
	if err == nil {
		t.Fatal("CompressBuffers: want ErrTableOverflow, got nil")
	}
	if dst.TableSize != 3 {
		t.Fatalf("TableSize = %d, want 3 (the true row count, even though truncated)", dst.TableSize)
	}
}
