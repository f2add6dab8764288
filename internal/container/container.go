// Package container frames a compression run's output into a single binary
// artifact: a small header naming the codec parameters used, the shared
// bone-index table, and the flat compressed-vertex byte buffer. It is
// ambient tooling for the cmd/vbac-pack and cmd/vbac-digest binaries, not
// part of the vbac package's pure in-memory contract.
package container

import (
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"

	"github.com/vtxcompress/vbac"
)

// magic identifies a vbac container file.
var magic = [4]byte{'V', 'B', 'A', 'C'}

// Artifact is the full contents of a container file: the codec parameters a
// run completed, and the table/compressed buffers CompressBuffers produced
// under them.
type Artifact struct {
	Params      vbac.Params
	VertexCount uint64
	Buffers     vbac.CompressedBuffers
}

// Write encodes art to w in the container's on-disk layout: header, then
// table, then compressed vertex bytes.
func Write(w io.Writer, art Artifact) error {
	bw := bitio.NewWriter(w)

	if _, err := bw.Write(magic[:]); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteByte(byte(art.Params.Method)); err != nil {
		return errutil.Err(err)
	}
	fields := []uint64{
		uint64(art.Params.MaxBoneCount),
		uint64(art.Params.VertexSize),
		uint64(art.Params.WeightBaseBitCount),
		uint64(art.Params.TupleIndexBitCount),
		art.Params.MaxTupleCount,
		art.VertexCount,
		art.Buffers.TableSize,
	}
	for _, f := range fields {
		if err := bw.WriteBits(f, 64); err != nil {
			return errutil.Err(err)
		}
	}
	if err := writePermutationCodec(bw, art.Params); err != nil {
		return err
	}

	tableWords := art.Buffers.TableSize * uint64(art.Params.MaxBoneCount)
	for i := uint64(0); i < tableWords; i++ {
		if err := bw.WriteBits(uint64(art.Buffers.Table[i]), 16); err != nil {
			return errutil.Err(err)
		}
	}

	if _, err := bw.Write(art.Buffers.Compressed); err != nil {
		return errutil.Err(err)
	}

	if err := bw.Close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// Read decodes a container previously produced by Write.
func Read(r io.Reader) (Artifact, error) {
	br := bitio.NewReader(r)

	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return Artifact{}, errors.Wrap(err, "container: read magic")
	}
	if got != magic {
		return Artifact{}, errors.Errorf("container: bad magic %q, want %q", got, magic)
	}

	methodByte, err := br.ReadByte()
	if err != nil {
		return Artifact{}, errutil.Err(err)
	}

	var art Artifact
	art.Params.Method = vbac.Method(methodByte)

	read64 := func() (uint64, error) {
		v, err := br.ReadBits(64)
		if err != nil {
			return 0, errutil.Err(err)
		}
		return v, nil
	}

	maxBoneCount, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	vertexSize, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	weightBaseBitCount, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	tupleIndexBitCount, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	maxTupleCount, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	vertexCount, err := read64()
	if err != nil {
		return Artifact{}, err
	}
	tableSize, err := read64()
	if err != nil {
		return Artifact{}, err
	}

	art.Params.MaxBoneCount = uint32(maxBoneCount)
	art.Params.VertexSize = uint32(vertexSize)
	art.Params.WeightBaseBitCount = uint32(weightBaseBitCount)
	art.Params.TupleIndexBitCount = uint32(tupleIndexBitCount)
	art.Params.MaxTupleCount = maxTupleCount
	art.VertexCount = vertexCount
	art.Buffers.TableSize = tableSize

	if err := readPermutationCodec(br, &art.Params); err != nil {
		return Artifact{}, err
	}

	tableWords := tableSize * maxBoneCount
	art.Buffers.Table = make([]uint16, tableWords)
	for i := range art.Buffers.Table {
		v, err := br.ReadBits(16)
		if err != nil {
			return Artifact{}, errutil.Err(err)
		}
		art.Buffers.Table[i] = uint16(v)
	}

	compressedLen := vertexCount * vertexSize
	art.Buffers.Compressed = make([]byte, compressedLen)
	if _, err := io.ReadFull(br, art.Buffers.Compressed); err != nil {
		return Artifact{}, errors.Wrap(err, "container: read compressed vertices")
	}

	return art, nil
}

// writePermutationCodec persists the permutation-codec row only for
// MethodPermutation; every other method writes nothing, since their
// PermutationCodec is the zero value and Read leaves it so.
func writePermutationCodec(bw bitio.Writer, p vbac.Params) error {
	if p.Method != vbac.MethodPermutation {
		return nil
	}
	c := p.PermutationCodec
	if err := bw.WriteBits(uint64(c.K), 32); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(c.W), 32); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteBits(c.P, 64); err != nil {
		return errutil.Err(err)
	}
	if err := bw.WriteBits(uint64(len(c.E)), 32); err != nil {
		return errutil.Err(err)
	}
	for _, e := range c.E {
		if err := bw.WriteBits(uint64(e), 32); err != nil {
			return errutil.Err(err)
		}
	}
	return nil
}

func readPermutationCodec(br bitio.Reader, p *vbac.Params) error {
	if p.Method != vbac.MethodPermutation {
		return nil
	}
	k, err := br.ReadBits(32)
	if err != nil {
		return errutil.Err(err)
	}
	w, err := br.ReadBits(32)
	if err != nil {
		return errutil.Err(err)
	}
	pv, err := br.ReadBits(64)
	if err != nil {
		return errutil.Err(err)
	}
	n, err := br.ReadBits(32)
	if err != nil {
		return errutil.Err(err)
	}
	e := make([]uint32, n)
	for i := range e {
		v, err := br.ReadBits(32)
		if err != nil {
			return errutil.Err(err)
		}
		e[i] = uint32(v)
	}
	p.PermutationCodec.K = uint32(k)
	p.PermutationCodec.W = uint32(w)
	p.PermutationCodec.P = pv
	p.PermutationCodec.E = e
	return nil
}
