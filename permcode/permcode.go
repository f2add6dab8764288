// Package permcode implements permutation coding: encoding a sorted
// k-weight tuple plus a bounded extra integer (the tuple-table index) into a
// single mixed-radix code, driven by a fixed per-(tuple-count class, bone
// count, vertex size) codec row.
//
// Weights are passed in ascending order, the convention used throughout
// this codebase's sorted influence lists: weights[0] is the smallest,
// weights[K-1] the largest. As with the OSS codec, the largest weight is
// never explicitly coded — it is recovered on decode from the constraint
// that all K weights sum to one. W is the bin count for the largest of the
// K-1 explicitly coded weights (weights[K-2], immediately below the
// implicit one); E holds the bin count for every explicit weight below
// that, from weights[K-3] down to weights[0]. A codec row's E slice carries
// one more entry than there are remaining ranks to cover (entry_count ==
// K-1 == len(E), but only K-2 explicit ranks remain once W accounts for
// one) — the last entry of E goes unused by this scheme.
//
// The per-rank bin counts a codec row declares are tuned offline for bit
// efficiency; this package only needs a quantizer that is monotonic and
// bijective within each rank's declared range, and a mixed-radix fold/unfold
// that keeps the weight digit strictly below the row's P so adding
// extra*P never collides.
package permcode

import "math"

// Codec is one row of the permutation-codec table: a fixed quantization and
// folding scheme for k-weight tuples.
//
// K is the tuple length. W is the bin count for the largest of the K-1
// explicitly-coded weights (the largest of all K is always implicit,
// recovered from the sum-to-one constraint). E holds the bin count for every
// following rank, so len(E) == K-1. P bounds the combined weight digit: Encode never
// returns a weight digit >= P, so the caller may safely compute
// weightDigit + extra*P without collision.
type Codec struct {
	K uint32
	W uint32
	E []uint32
	P uint64
}

// Valid reports whether the row is populated; zero-value rows (K == 0) mark
// (tuple-count class, bone count, vertex size) combinations that have no
// workable codec.
func (c Codec) Valid() bool {
	return c.K != 0
}

// TupleCounts lists the supported tuple-count classes, indexed the same way
// as the first dimension of Codecs.
var TupleCounts = [5]uint64{128, 512, 2048, 4096, 7000}

// Codecs[tupleCountClass][k-2][vertexSize-1] is the codec row for that
// combination, or the zero Codec if unsupported.
var Codecs = [5][12][8]Codec{
	{
		{{K: 2, W: 2, E: []uint32{1}, P: 128}, {K: 2, W: 512, E: []uint32{1}, P: 128}, {}, {}, {}, {}, {}, {}},
		{{}, {K: 3, W: 32, E: []uint32{1, 1}, P: 64}, {K: 3, W: 362, E: []uint32{1, 2}, P: 128}, {K: 3, W: 5792, E: []uint32{1, 2}, P: 128}, {}, {}, {}, {}},
		{{}, {K: 4, W: 11, E: []uint32{1, 1, 2}, P: 43}, {K: 4, W: 73, E: []uint32{1, 1, 2}, P: 43}, {K: 4, W: 463, E: []uint32{1, 1, 2}, P: 43}, {K: 4, W: 812, E: []uint32{3, 4, 8}, P: 2048}, {K: 4, W: 5160, E: []uint32{3, 4, 8}, P: 2048}, {K: 4, W: 32767, E: []uint32{3, 4, 8}, P: 2048}, {}},
		{{}, {K: 5, W: 8, E: []uint32{1, 1, 1, 3}, P: 16}, {K: 5, W: 32, E: []uint32{1, 1, 1, 3}, P: 16}, {K: 5, W: 107, E: []uint32{1, 1, 2, 3}, P: 32}, {K: 5, W: 256, E: []uint32{2, 2, 3, 4}, P: 256}, {K: 5, W: 1024, E: []uint32{2, 2, 3, 4}, P: 256}, {K: 5, W: 2048, E: []uint32{4, 4, 6, 8}, P: 4096}, {K: 5, W: 16384, E: []uint32{2, 2, 3, 4}, P: 256}},
		{{}, {K: 6, W: 8, E: []uint32{1, 1, 1, 1, 1}, P: 2}, {K: 6, W: 20, E: []uint32{1, 1, 1, 2, 2}, P: 5}, {K: 6, W: 57, E: []uint32{1, 1, 1, 2, 3}, P: 7}, {K: 6, W: 128, E: []uint32{1, 1, 2, 3, 5}, P: 32}, {K: 6, W: 128, E: []uint32{4, 4, 5, 8, 12}, P: 8192}, {K: 6, W: 1024, E: []uint32{1, 2, 2, 3, 5}, P: 64}, {K: 6, W: 1024, E: []uint32{4, 5, 6, 8, 16}, P: 16384}},
		{{}, {}, {K: 7, W: 14, E: []uint32{1, 1, 1, 1, 2, 5}, P: 2}, {K: 7, W: 33, E: []uint32{1, 1, 1, 2, 2, 4}, P: 3}, {K: 7, W: 64, E: []uint32{1, 1, 2, 2, 3, 7}, P: 15}, {K: 7, W: 128, E: []uint32{1, 2, 2, 2, 4, 11}, P: 63}, {K: 7, W: 128, E: []uint32{4, 4, 5, 7, 10, 16}, P: 15929}, {K: 7, W: 256, E: []uint32{4, 8, 8, 8, 11, 16}, P: 64080}},
		{{}, {}, {K: 8, W: 10, E: []uint32{1, 1, 1, 2, 2, 2, 4}, P: 1}, {K: 8, W: 23, E: []uint32{1, 1, 1, 2, 2, 2, 4}, P: 1}, {K: 8, W: 52, E: []uint32{1, 1, 1, 2, 2, 2, 4}, P: 1}, {K: 8, W: 64, E: []uint32{2, 2, 2, 3, 3, 4, 8}, P: 59}, {K: 8, W: 128, E: []uint32{2, 2, 2, 3, 4, 5, 10}, P: 122}, {K: 8, W: 256, E: []uint32{2, 2, 2, 4, 4, 7, 11}, P: 251}},
		{{}, {}, {}, {K: 9, W: 16, E: []uint32{1, 1, 1, 2, 2, 3, 4, 6}, P: 1}, {K: 9, W: 32, E: []uint32{1, 1, 1, 2, 2, 3, 4, 6}, P: 1}, {K: 9, W: 64, E: []uint32{1, 1, 1, 2, 2, 3, 4, 6}, P: 1}, {K: 9, W: 128, E: []uint32{1, 1, 1, 2, 2, 3, 4, 6}, P: 1}, {K: 9, W: 256, E: []uint32{1, 1, 1, 2, 2, 3, 4, 6}, P: 1}},
		{{}, {}, {}, {K: 10, W: 11, E: []uint32{1, 1, 2, 2, 2, 2, 4, 5, 8}, P: 1}, {K: 10, W: 21, E: []uint32{1, 1, 2, 2, 2, 2, 4, 5, 8}, P: 1}, {K: 10, W: 32, E: []uint32{2, 2, 2, 2, 2, 3, 4, 5, 10}, P: 7}, {K: 10, W: 74, E: []uint32{1, 1, 2, 2, 2, 2, 4, 5, 8}, P: 1}, {K: 10, W: 64, E: []uint32{2, 3, 4, 4, 4, 5, 8, 11, 16}, P: 954}},
		{{}, {}, {}, {}, {K: 11, W: 16, E: []uint32{1, 2, 2, 2, 2, 2, 4, 4, 5, 11}, P: 1}, {K: 11, W: 27, E: []uint32{1, 2, 2, 2, 2, 2, 4, 4, 5, 11}, P: 1}, {K: 11, W: 32, E: []uint32{2, 2, 3, 3, 4, 4, 4, 6, 8, 16}, P: 63}, {K: 11, W: 64, E: []uint32{2, 2, 2, 2, 3, 4, 4, 6, 8, 12}, P: 16}},
		{{}, {}, {}, {}, {K: 12, W: 12, E: []uint32{2, 2, 2, 2, 2, 2, 3, 4, 4, 8, 12}, P: 1}, {K: 12, W: 20, E: []uint32{2, 2, 2, 2, 2, 2, 3, 4, 4, 8, 12}, P: 1}, {K: 12, W: 32, E: []uint32{2, 2, 2, 2, 2, 3, 4, 4, 4, 8, 12}, P: 2}, {K: 12, W: 56, E: []uint32{2, 2, 2, 2, 2, 2, 3, 4, 4, 8, 12}, P: 1}},
		{{}, {}, {}, {}, {}, {K: 13, W: 15, E: []uint32{2, 2, 2, 2, 2, 4, 4, 4, 4, 7, 8, 16}, P: 2}, {K: 13, W: 25, E: []uint32{2, 2, 2, 2, 2, 2, 4, 4, 4, 7, 8, 16}, P: 1}, {K: 13, W: 40, E: []uint32{2, 2, 2, 2, 2, 2, 4, 4, 4, 7, 8, 16}, P: 1}},
	},
	{
		{{}, {K: 2, W: 128, E: []uint32{1}, P: 512}, {K: 2, W: 32768, E: []uint32{1}, P: 512}, {}, {}, {}, {}, {}},
		{{}, {K: 3, W: 16, E: []uint32{1, 1}, P: 256}, {K: 3, W: 181, E: []uint32{1, 2}, P: 512}, {K: 3, W: 2896, E: []uint32{1, 2}, P: 512}, {K: 3, W: 46340, E: []uint32{1, 2}, P: 512}, {}, {}, {}},
		{{}, {K: 4, W: 9, E: []uint32{1, 1, 1}, P: 86}, {K: 4, W: 46, E: []uint32{1, 1, 2}, P: 171}, {K: 4, W: 292, E: []uint32{1, 1, 2}, P: 171}, {K: 4, W: 511, E: []uint32{3, 4, 8}, P: 8192}, {K: 4, W: 3250, E: []uint32{3, 4, 8}, P: 8192}, {K: 4, W: 20642, E: []uint32{3, 4, 8}, P: 8192}, {}},
		{{}, {K: 5, W: 7, E: []uint32{1, 1, 1, 1}, P: 22}, {K: 5, W: 21, E: []uint32{1, 1, 2, 2}, P: 86}, {K: 5, W: 64, E: []uint32{1, 2, 2, 3}, P: 256}, {K: 5, W: 128, E: []uint32{2, 3, 4, 8}, P: 4096}, {K: 5, W: 512, E: []uint32{2, 3, 4, 8}, P: 4096}, {K: 5, W: 2048, E: []uint32{2, 3, 4, 8}, P: 4096}, {K: 5, W: 8192, E: []uint32{2, 3, 4, 8}, P: 4096}},
		{{}, {K: 6, W: 6, E: []uint32{1, 1, 1, 1, 1}, P: 5}, {K: 6, W: 16, E: []uint32{1, 1, 1, 1, 3}, P: 13}, {K: 6, W: 44, E: []uint32{1, 1, 1, 2, 3}, P: 26}, {K: 6, W: 64, E: []uint32{2, 2, 3, 4, 5}, P: 1024}, {K: 6, W: 256, E: []uint32{1, 2, 2, 3, 5}, P: 256}, {K: 6, W: 512, E: []uint32{2, 2, 3, 5, 8}, P: 2048}, {K: 6, W: 1024, E: []uint32{3, 4, 4, 8, 10}, P: 16384}},
		{{}, {}, {K: 7, W: 13, E: []uint32{1, 1, 1, 1, 2, 2}, P: 3}, {K: 7, W: 33, E: []uint32{1, 1, 1, 1, 2, 2}, P: 3}, {K: 7, W: 64, E: []uint32{1, 1, 1, 2, 2, 5}, P: 15}, {K: 7, W: 64, E: []uint32{2, 3, 3, 4, 7, 11}, P: 3943}, {K: 7, W: 128, E: []uint32{3, 3, 4, 6, 8, 13}, P: 15975}, {K: 7, W: 256, E: []uint32{4, 4, 4, 8, 11, 16}, P: 64080}},
		{{}, {}, {K: 8, W: 10, E: []uint32{1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 8, W: 23, E: []uint32{1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 8, W: 32, E: []uint32{1, 1, 2, 2, 3, 4, 6}, P: 30}, {K: 8, W: 64, E: []uint32{1, 2, 2, 2, 3, 4, 6}, P: 59}, {K: 8, W: 128, E: []uint32{1, 2, 2, 2, 3, 5, 10}, P: 122}, {K: 8, W: 128, E: []uint32{3, 4, 4, 5, 8, 10, 16}, P: 31208}},
		{{}, {}, {}, {K: 9, W: 16, E: []uint32{1, 1, 1, 1, 2, 2, 3, 6}, P: 1}, {K: 9, W: 32, E: []uint32{1, 1, 1, 1, 2, 2, 3, 6}, P: 1}, {K: 9, W: 64, E: []uint32{1, 1, 1, 1, 2, 2, 3, 6}, P: 1}, {K: 9, W: 128, E: []uint32{1, 1, 1, 1, 2, 2, 3, 6}, P: 1}, {K: 9, W: 256, E: []uint32{1, 1, 1, 1, 2, 2, 3, 6}, P: 1}},
		{{}, {}, {}, {K: 10, W: 11, E: []uint32{1, 1, 1, 2, 2, 2, 3, 4, 7}, P: 1}, {K: 10, W: 21, E: []uint32{1, 1, 1, 2, 2, 2, 3, 4, 7}, P: 1}, {K: 10, W: 32, E: []uint32{1, 2, 2, 2, 2, 3, 3, 4, 8}, P: 7}, {K: 10, W: 74, E: []uint32{1, 1, 1, 2, 2, 2, 3, 4, 7}, P: 1}, {K: 10, W: 64, E: []uint32{2, 2, 3, 4, 4, 4, 7, 8, 16}, P: 971}},
		{{}, {}, {}, {}, {K: 11, W: 16, E: []uint32{1, 1, 2, 2, 2, 2, 3, 4, 4, 9}, P: 1}, {K: 11, W: 27, E: []uint32{1, 1, 2, 2, 2, 2, 3, 4, 4, 9}, P: 1}, {K: 11, W: 32, E: []uint32{2, 2, 2, 2, 3, 4, 4, 6, 8, 12}, P: 63}, {K: 11, W: 64, E: []uint32{2, 2, 2, 2, 2, 3, 4, 4, 6, 12}, P: 16}},
		{{}, {}, {}, {}, {K: 12, W: 12, E: []uint32{1, 2, 2, 2, 2, 2, 3, 4, 4, 5, 10}, P: 1}, {K: 12, W: 20, E: []uint32{1, 2, 2, 2, 2, 2, 3, 4, 4, 5, 10}, P: 1}, {K: 12, W: 32, E: []uint32{1, 2, 2, 2, 2, 2, 3, 4, 4, 8, 12}, P: 2}, {K: 12, W: 56, E: []uint32{1, 2, 2, 2, 2, 2, 3, 4, 4, 5, 10}, P: 1}},
		{{}, {}, {}, {}, {}, {K: 13, W: 15, E: []uint32{2, 2, 2, 2, 2, 2, 3, 4, 4, 5, 8, 15}, P: 2}, {K: 13, W: 25, E: []uint32{2, 2, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 1}, {K: 13, W: 40, E: []uint32{2, 2, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 1}},
	},
	{
		{{}, {K: 2, W: 32, E: []uint32{1}, P: 2048}, {K: 2, W: 8192, E: []uint32{1}, P: 2048}, {}, {}, {}, {}, {}},
		{{}, {K: 3, W: 8, E: []uint32{1, 1}, P: 1024}, {K: 3, W: 90, E: []uint32{1, 2}, P: 2048}, {K: 3, W: 1448, E: []uint32{1, 2}, P: 2048}, {K: 3, W: 23170, E: []uint32{1, 2}, P: 2048}, {}, {}, {}},
		{{}, {K: 4, W: 5, E: []uint32{1, 1, 1}, P: 342}, {K: 4, W: 29, E: []uint32{1, 1, 2}, P: 683}, {K: 4, W: 184, E: []uint32{1, 1, 2}, P: 683}, {K: 4, W: 322, E: []uint32{3, 4, 8}, P: 32768}, {K: 4, W: 2047, E: []uint32{3, 4, 8}, P: 32768}, {K: 4, W: 13003, E: []uint32{3, 4, 8}, P: 32768}, {}},
		{{}, {K: 5, W: 5, E: []uint32{1, 1, 1, 1}, P: 86}, {K: 5, W: 16, E: []uint32{1, 1, 1, 3}, P: 256}, {K: 5, W: 64, E: []uint32{1, 1, 1, 3}, P: 256}, {K: 5, W: 128, E: []uint32{2, 2, 3, 4}, P: 4096}, {K: 5, W: 512, E: []uint32{2, 2, 3, 4}, P: 4096}, {K: 5, W: 2048, E: []uint32{2, 2, 3, 4}, P: 4096}, {K: 5, W: 8192, E: []uint32{2, 2, 3, 4}, P: 4096}},
		{{}, {}, {K: 6, W: 13, E: []uint32{1, 1, 1, 1, 2}, P: 35}, {K: 6, W: 33, E: []uint32{1, 1, 1, 2, 3}, P: 103}, {K: 6, W: 64, E: []uint32{1, 2, 2, 3, 5}, P: 1024}, {K: 6, W: 128, E: []uint32{2, 2, 3, 5, 8}, P: 8192}, {K: 6, W: 256, E: []uint32{3, 4, 4, 8, 10}, P: 65536}, {K: 6, W: 1024, E: []uint32{2, 3, 4, 5, 8}, P: 16384}},
		{{}, {}, {K: 7, W: 11, E: []uint32{1, 1, 1, 1, 1, 3}, P: 9}, {K: 7, W: 23, E: []uint32{1, 1, 1, 1, 2, 5}, P: 29}, {K: 7, W: 60, E: []uint32{1, 1, 1, 1, 2, 4}, P: 23}, {K: 7, W: 64, E: []uint32{2, 2, 3, 4, 4, 7}, P: 3823}, {K: 7, W: 128, E: []uint32{2, 3, 3, 4, 7, 11}, P: 15770}, {K: 7, W: 256, E: []uint32{3, 3, 4, 6, 7, 15}, P: 64512}},
		{{}, {}, {K: 8, W: 10, E: []uint32{1, 1, 1, 1, 1, 1, 2}, P: 1}, {K: 8, W: 18, E: []uint32{1, 1, 1, 1, 2, 2, 4}, P: 7}, {K: 8, W: 32, E: []uint32{1, 1, 1, 2, 2, 3, 6}, P: 30}, {K: 8, W: 64, E: []uint32{1, 1, 2, 2, 2, 3, 6}, P: 59}, {K: 8, W: 128, E: []uint32{1, 1, 2, 2, 3, 5, 5}, P: 122}, {K: 8, W: 128, E: []uint32{2, 4, 4, 4, 6, 8, 13}, P: 32456}},
		{{}, {}, {}, {K: 9, W: 16, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4}, P: 1}, {K: 9, W: 32, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4}, P: 1}, {K: 9, W: 64, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4}, P: 1}, {K: 9, W: 128, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4}, P: 1}, {K: 9, W: 256, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4}, P: 1}},
		{{}, {}, {}, {K: 10, W: 11, E: []uint32{1, 1, 1, 1, 2, 2, 2, 4, 5}, P: 1}, {K: 10, W: 21, E: []uint32{1, 1, 1, 1, 2, 2, 2, 4, 5}, P: 1}, {K: 10, W: 32, E: []uint32{1, 1, 2, 2, 2, 2, 3, 4, 6}, P: 7}, {K: 10, W: 74, E: []uint32{1, 1, 1, 1, 2, 2, 2, 4, 5}, P: 1}, {K: 10, W: 64, E: []uint32{2, 2, 2, 3, 3, 4, 6, 8, 13}, P: 1015}},
		{{}, {}, {}, {}, {K: 11, W: 16, E: []uint32{1, 1, 1, 2, 2, 2, 2, 3, 4, 9}, P: 1}, {K: 11, W: 27, E: []uint32{1, 1, 1, 2, 2, 2, 2, 3, 4, 9}, P: 1}, {K: 11, W: 32, E: []uint32{2, 2, 2, 2, 2, 3, 4, 4, 6, 12}, P: 63}, {K: 11, W: 64, E: []uint32{1, 2, 2, 2, 2, 2, 4, 4, 5, 11}, P: 16}},
		{{}, {}, {}, {}, {K: 12, W: 12, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}, {K: 12, W: 20, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}, {K: 12, W: 32, E: []uint32{1, 1, 2, 2, 2, 2, 3, 4, 4, 6, 8}, P: 2}, {K: 12, W: 56, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}},
		{{}, {}, {}, {}, {}, {K: 13, W: 15, E: []uint32{1, 2, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 2}, {K: 13, W: 25, E: []uint32{1, 1, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 1}, {K: 13, W: 40, E: []uint32{1, 1, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 1}},
	},
	{
		{{}, {K: 2, W: 16, E: []uint32{1}, P: 4096}, {K: 2, W: 4096, E: []uint32{1}, P: 4096}, {}, {}, {}, {}, {}},
		{{}, {K: 3, W: 4, E: []uint32{1, 2}, P: 4096}, {K: 3, W: 64, E: []uint32{1, 2}, P: 4096}, {K: 3, W: 1024, E: []uint32{1, 2}, P: 4096}, {K: 3, W: 16384, E: []uint32{1, 2}, P: 4096}, {K: 3, W: 32768, E: []uint32{8, 16}, P: 262144}, {}, {}},
		{{}, {K: 4, W: 4, E: []uint32{1, 1, 1}, P: 683}, {K: 4, W: 23, E: []uint32{1, 1, 2}, P: 1366}, {K: 4, W: 146, E: []uint32{1, 1, 2}, P: 1366}, {K: 4, W: 128, E: []uint32{6, 9, 14}, P: 516096}, {K: 4, W: 1625, E: []uint32{3, 4, 8}, P: 65536}, {K: 4, W: 10321, E: []uint32{3, 4, 8}, P: 65536}, {K: 4, W: 65535, E: []uint32{3, 4, 8}, P: 65536}},
		{{}, {}, {K: 5, W: 14, E: []uint32{1, 1, 1, 2}, P: 342}, {K: 5, W: 45, E: []uint32{1, 1, 2, 3}, P: 1024}, {K: 5, W: 128, E: []uint32{1, 2, 3, 4}, P: 4096}, {K: 5, W: 256, E: []uint32{3, 4, 4, 8}, P: 65536}, {K: 5, W: 1024, E: []uint32{3, 4, 4, 8}, P: 65536}, {K: 5, W: 4096, E: []uint32{3, 4, 4, 8}, P: 65536}},
		{{}, {}, {K: 6, W: 11, E: []uint32{1, 1, 1, 1, 3}, P: 103}, {K: 6, W: 29, E: []uint32{1, 1, 1, 2, 3}, P: 205}, {K: 6, W: 64, E: []uint32{1, 1, 2, 3, 5}, P: 1024}, {K: 6, W: 128, E: []uint32{2, 2, 3, 4, 5}, P: 8192}, {K: 6, W: 512, E: []uint32{1, 2, 2, 3, 5}, P: 2048}, {K: 6, W: 512, E: []uint32{4, 5, 6, 8, 16}, P: 524288}},
		{{}, {}, {K: 7, W: 10, E: []uint32{1, 1, 1, 1, 1, 2}, P: 12}, {K: 7, W: 22, E: []uint32{1, 1, 1, 1, 2, 3}, P: 35}, {K: 7, W: 56, E: []uint32{1, 1, 1, 1, 2, 3}, P: 35}, {K: 7, W: 64, E: []uint32{2, 2, 2, 3, 4, 7}, P: 3823}, {K: 7, W: 128, E: []uint32{2, 2, 4, 4, 4, 11}, P: 16020}, {K: 7, W: 256, E: []uint32{2, 4, 4, 4, 8, 11}, P: 64080}},
		{{}, {}, {K: 8, W: 10, E: []uint32{1, 1, 1, 1, 1, 1, 1}, P: 1}, {K: 8, W: 18, E: []uint32{1, 1, 1, 1, 1, 2, 4}, P: 7}, {K: 8, W: 32, E: []uint32{1, 1, 1, 2, 2, 2, 4}, P: 27}, {K: 8, W: 64, E: []uint32{1, 1, 1, 2, 2, 3, 6}, P: 59}, {K: 8, W: 128, E: []uint32{1, 1, 1, 2, 3, 5, 5}, P: 122}, {K: 8, W: 128, E: []uint32{2, 3, 4, 4, 4, 8, 13}, P: 32456}},
		{{}, {}, {}, {K: 9, W: 16, E: []uint32{1, 1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 9, W: 32, E: []uint32{1, 1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 9, W: 64, E: []uint32{1, 1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 9, W: 128, E: []uint32{1, 1, 1, 1, 1, 1, 2, 4}, P: 1}, {K: 9, W: 128, E: []uint32{1, 2, 2, 2, 3, 3, 5, 7}, P: 256}},
		{{}, {}, {}, {K: 10, W: 11, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4, 5}, P: 1}, {K: 10, W: 21, E: []uint32{1, 1, 1, 1, 1, 2, 2, 4, 5}, P: 1}, {K: 10, W: 32, E: []uint32{1, 1, 1, 2, 2, 2, 3, 4, 6}, P: 7}, {K: 10, W: 66, E: []uint32{1, 1, 1, 1, 2, 2, 2, 4, 8}, P: 3}, {K: 10, W: 64, E: []uint32{2, 2, 2, 2, 4, 4, 4, 8, 11}, P: 1018}},
		{{}, {}, {}, {}, {K: 11, W: 16, E: []uint32{1, 1, 1, 1, 2, 2, 2, 3, 4, 9}, P: 1}, {K: 11, W: 27, E: []uint32{1, 1, 1, 1, 2, 2, 2, 3, 4, 9}, P: 1}, {K: 11, W: 48, E: []uint32{1, 1, 1, 1, 2, 2, 2, 3, 4, 9}, P: 1}, {K: 11, W: 64, E: []uint32{1, 2, 2, 2, 2, 2, 3, 4, 4, 9}, P: 16}},
		{{}, {}, {}, {}, {K: 12, W: 12, E: []uint32{1, 1, 1, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}, {K: 12, W: 20, E: []uint32{1, 1, 1, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}, {K: 12, W: 32, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 6, 8}, P: 2}, {K: 12, W: 56, E: []uint32{1, 1, 1, 2, 2, 2, 2, 3, 4, 6, 8}, P: 1}},
		{{}, {}, {}, {}, {}, {K: 13, W: 15, E: []uint32{1, 1, 2, 2, 2, 2, 2, 4, 4, 4, 8, 14}, P: 2}, {K: 13, W: 25, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 4, 8, 9}, P: 1}, {K: 13, W: 40, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 4, 8, 9}, P: 1}},
	},
	{
		{{}, {K: 2, W: 9, E: []uint32{1}, P: 7000}, {K: 2, W: 2396, E: []uint32{1}, P: 7000}, {}, {}, {}, {}, {}},
		{{}, {K: 3, W: 4, E: []uint32{1, 1}, P: 3500}, {K: 3, W: 48, E: []uint32{1, 2}, P: 7000}, {K: 3, W: 783, E: []uint32{1, 2}, P: 7000}, {K: 3, W: 12532, E: []uint32{1, 2}, P: 7000}, {}, {}, {}},
		{{}, {}, {K: 4, W: 19, E: []uint32{1, 1, 2}, P: 2334}, {K: 4, W: 122, E: []uint32{1, 1, 2}, P: 2334}, {K: 4, W: 128, E: []uint32{5, 8, 11}, P: 513334}, {K: 4, W: 512, E: []uint32{8, 14, 16}, P: 2090667}, {K: 4, W: 8632, E: []uint32{3, 4, 8}, P: 112000}, {K: 4, W: 54815, E: []uint32{3, 4, 8}, P: 112000}},
		{{}, {}, {K: 5, W: 13, E: []uint32{1, 1, 1, 2}, P: 584}, {K: 5, W: 52, E: []uint32{1, 1, 1, 2}, P: 584}, {K: 5, W: 64, E: []uint32{2, 4, 4, 7}, P: 65334}, {K: 5, W: 128, E: []uint32{4, 7, 8, 16}, P: 1045334}, {K: 5, W: 512, E: []uint32{4, 7, 8, 16}, P: 1045334}, {K: 5, W: 4260, E: []uint32{2, 3, 4, 8}, P: 56000}},
		{{}, {}, {K: 6, W: 12, E: []uint32{1, 1, 1, 1, 1}, P: 59}, {K: 6, W: 32, E: []uint32{1, 1, 1, 1, 2}, P: 117}, {K: 6, W: 79, E: []uint32{1, 1, 1, 2, 3}, P: 350}, {K: 6, W: 64, E: []uint32{3, 4, 4, 7, 13}, P: 254800}, {K: 6, W: 128, E: []uint32{4, 7, 8, 10, 16}, P: 2090667}, {K: 6, W: 512, E: []uint32{4, 4, 5, 8, 14}, P: 522667}},
		{{}, {}, {K: 7, W: 9, E: []uint32{1, 1, 1, 1, 1, 3}, P: 30}, {K: 7, W: 24, E: []uint32{1, 1, 1, 1, 1, 2}, P: 20}, {K: 7, W: 49, E: []uint32{1, 1, 1, 1, 2, 4}, P: 78}, {K: 7, W: 64, E: []uint32{2, 2, 2, 2, 4, 6}, P: 3734}, {K: 7, W: 128, E: []uint32{2, 2, 3, 4, 5, 7}, P: 16334}, {K: 7, W: 256, E: []uint32{2, 3, 4, 4, 7, 10}, P: 65334}},
		{{}, {}, {K: 8, W: 9, E: []uint32{1, 1, 1, 1, 1, 1, 2}, P: 3}, {K: 8, W: 20, E: []uint32{1, 1, 1, 1, 1, 1, 2}, P: 3}, {K: 8, W: 32, E: []uint32{1, 1, 1, 1, 2, 2, 5}, P: 28}, {K: 8, W: 64, E: []uint32{1, 1, 1, 1, 2, 3, 7}, P: 59}, {K: 8, W: 128, E: []uint32{1, 1, 1, 2, 3, 3, 5}, P: 125}, {K: 8, W: 128, E: []uint32{2, 2, 3, 4, 5, 8, 12}, P: 32000}},
		{{}, {}, {}, {K: 9, W: 16, E: []uint32{1, 1, 1, 1, 1, 1, 2, 2}, P: 1}, {K: 9, W: 32, E: []uint32{1, 1, 1, 1, 1, 1, 2, 2}, P: 1}, {K: 9, W: 64, E: []uint32{1, 1, 1, 1, 1, 1, 2, 2}, P: 1}, {K: 9, W: 64, E: []uint32{1, 2, 2, 2, 2, 3, 4, 7}, P: 234}, {K: 9, W: 128, E: []uint32{1, 2, 2, 2, 2, 3, 5, 6}, P: 250}},
		{{}, {}, {}, {K: 10, W: 11, E: []uint32{1, 1, 1, 1, 1, 2, 2, 3, 4}, P: 1}, {K: 10, W: 21, E: []uint32{1, 1, 1, 1, 1, 2, 2, 3, 4}, P: 1}, {K: 10, W: 32, E: []uint32{1, 1, 1, 1, 2, 2, 3, 4, 7}, P: 7}, {K: 10, W: 74, E: []uint32{1, 1, 1, 1, 1, 2, 2, 3, 4}, P: 1}, {K: 10, W: 64, E: []uint32{2, 2, 2, 2, 3, 4, 4, 6, 11}, P: 978}},
		{{}, {}, {}, {}, {K: 11, W: 16, E: []uint32{1, 1, 1, 1, 2, 2, 2, 2, 4, 8}, P: 1}, {K: 11, W: 27, E: []uint32{1, 1, 1, 1, 2, 2, 2, 2, 4, 8}, P: 1}, {K: 11, W: 48, E: []uint32{1, 1, 1, 1, 2, 2, 2, 2, 4, 8}, P: 1}, {K: 11, W: 64, E: []uint32{1, 1, 2, 2, 2, 2, 4, 4, 4, 8}, P: 16}},
		{{}, {}, {}, {}, {K: 12, W: 12, E: []uint32{1, 1, 1, 2, 2, 2, 2, 2, 4, 5, 8}, P: 1}, {K: 12, W: 20, E: []uint32{1, 1, 1, 2, 2, 2, 2, 2, 4, 5, 8}, P: 1}, {K: 12, W: 32, E: []uint32{1, 1, 1, 2, 2, 2, 2, 4, 4, 5, 8}, P: 2}, {K: 12, W: 56, E: []uint32{1, 1, 1, 2, 2, 2, 2, 2, 4, 5, 8}, P: 1}},
		{{}, {}, {}, {}, {}, {K: 13, W: 15, E: []uint32{1, 1, 2, 2, 2, 2, 2, 3, 4, 4, 8, 11}, P: 2}, {K: 13, W: 25, E: []uint32{1, 1, 2, 2, 2, 2, 2, 2, 4, 4, 6, 11}, P: 1}, {K: 13, W: 40, E: []uint32{1, 1, 2, 2, 2, 2, 2, 2, 4, 4, 6, 11}, P: 1}},
	},
}

// Row looks up the codec for tupleCountClass (an index into TupleCounts),
// k (tuple length, 2..13), and vertexSize (1..8 bytes).
func Row(tupleCountClass int, k uint32, vertexSize uint32) Codec {
	return Codecs[tupleCountClass][k-2][vertexSize-1]
}

// binCount returns the number of quantization levels for explicit rank r,
// 0-based counting down from the implicit largest weight: r=0 is
// weights[K-2] (the largest explicitly coded weight, bin count W), r=K-2 is
// weights[0] (the smallest, bin count E[K-3]).
func (c Codec) binCount(r int) uint32 {
	if r == 0 {
		return c.W
	}
	return c.E[r-1]
}

// rankMax returns the greatest value the explicit weight at rank r can
// take. Counting the implicit largest weight as rank -1, explicit rank r is
// the (r+2)-th largest of the K weights, so it is bounded above by
// 1/(r+2) — the same bound power-of-two AABB quantization relies on for
// its own per-rank savings table.
func rankMax(r int) float64 {
	return 1.0 / float64(r+2)
}

// Encode quantizes the K-1 smallest of an ascending sorted weight tuple
// (weights[K-1], the largest, is implicit) and folds them with extra into a
// single code. extra must be less than the row's max_tuple_count; Encode
// does not itself validate that bound.
func Encode(weights []float64, extra uint64, c Codec) uint64 {
	var digit uint64
	for r := int(c.K) - 2; r >= 0; r-- {
		bins := c.binCount(r)
		w := weights[int(c.K)-2-r]
		q := quantizeRank(w, r, bins)
		digit = digit*uint64(bins) + uint64(q)
	}
	return digit + extra*c.P
}

// Decode inverts Encode, returning the reconstructed ascending weight tuple
// (length K, with the implicit largest weight filled in via the
// sum-to-one constraint) and the extra integer.
func Decode(code uint64, c Codec) (weights []float64, extra uint64) {
	extra = code / c.P
	digit := code % c.P

	bins := make([]uint32, c.K-1)
	for r := 0; r < int(c.K)-1; r++ {
		bins[r] = c.binCount(r)
	}
	digits := make([]uint32, c.K-1)
	for r := 0; r < int(c.K)-1; r++ {
		digits[r] = uint32(digit % uint64(bins[r]))
		digit /= uint64(bins[r])
	}

	weights = make([]float64, c.K)
	sum := 0.0
	for r := 0; r < int(c.K)-1; r++ {
		w := dequantizeRank(digits[r], r, bins[r])
		weights[int(c.K)-2-r] = w
		sum += w
	}
	largest := 1 - sum
	if largest < 0 {
		largest = 0
	}
	weights[c.K-1] = largest
	return weights, extra
}

func quantizeRank(w float64, r int, bins uint32) uint32 {
	if bins <= 1 {
		return 0
	}
	maxV := rankMax(r)
	if w < 0 {
		w = 0
	}
	if w > maxV {
		w = maxV
	}
	q := math.Round(w / maxV * float64(bins-1))
	return uint32(q)
}

func dequantizeRank(q uint32, r int, bins uint32) float64 {
	if bins <= 1 {
		return 0
	}
	maxV := rankMax(r)
	return float64(q) / float64(bins-1) * maxV
}
