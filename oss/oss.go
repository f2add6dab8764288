// Package oss implements optimal simplex sampling: a bijection between
// sorted 4-tuples of non-negative weights summing to one, living on a
// quantization grid of N points per axis, and the integers [0, N(N)) for a
// chosen bit budget. It is the k=4 codec used by the oss_19/oss_22/oss_35
// compression methods.
//
// The encoding and decoding steps below follow the "shear-alias-delta"
// construction: the largest weight is recovered implicitly from the sum
// constraint, and the remaining three are ranked by closed-form cubic and
// triangular base-index arithmetic rather than by building a lookup table
// of grid points (which would be infeasible at these bit counts).
package oss

import "math"

// LutN tabulates the number of grid points per axis, N(B), for every
// supported weight bit count B in [0, 64].
var LutN = [65]uint64{
	0, 1, 2, 3, 5, 6, 9, 11,
	15, 19, 24, 31, 40, 51, 65, 82,
	104, 131, 166, 209, 264, 333, 421, 531,
	669, 843, 1063, 1340, 1689, 2128, 2682, 3379,
	4258, 5365, 6760, 8518, 10733, 13523, 17038, 21467,
	27047, 34078, 42936, 54097, 68158, 85874, 108196, 136318,
	171751, 216393, 272639, 343504, 432788, 545279, 687010, 865578,
	1090561, 1374021, 1731159, 2181124, 2748045, 3462320, 4362253, 5496091,
	6924641,
}

// Info bundles the grid size and precomputed constants for one choice of
// bit count. It is returned by Compress and must be passed back to
// Decompress (N alone is not sufficient to decode; MI4 would otherwise be
// recomputed every call).
type Info struct {
	N     uint64
	MI4   uint64
	Scale float64
}

// UnsupportedBitCountError reports a bit count outside [0, 64], the domain
// of LutN.
type UnsupportedBitCountError struct {
	BitCount uint32
}

func (e *UnsupportedBitCountError) Error() string {
	return "oss: unsupported bit count"
}

func infoFor(bitCount uint32) (Info, error) {
	if bitCount > 64 {
		return Info{}, &UnsupportedBitCountError{BitCount: bitCount}
	}
	n := LutN[bitCount]
	return Info{
		N:     n,
		MI4:   baseIdx4(0, n),
		Scale: 0.5 / float64(n-1),
	}, nil
}

// Compress encodes a sorted 4-tuple given in reversed order — that is,
// weightsReversed = [largest, 2nd-largest, 3rd-largest, smallest] of the
// four sorted, non-negative weights that sum to one — into a single integer
// in [0, LutN[bitCount]-derived range) using exactly bitCount bits.
//
// weightsReversed[0] (the largest weight) is not used by the encoder: it is
// always recoverable on decode from the constraint that all four weights
// sum to one.
func Compress(weightsReversed [4]float64, bitCount uint32) (code uint64, info Info, err error) {
	info, err = infoFor(bitCount)
	if err != nil {
		return 0, Info{}, err
	}
	n := info.N
	scale := info.Scale

	v4 := weightsReversed[3]
	v3 := weightsReversed[2]
	v2 := weightsReversed[1]

	k := minU64(uint64(v4/scale+0.5), halfFloor(n))
	v4 = float64(k) * scale
	tok := info.MI4 - baseIdx4(k, n)
	n -= 2 * k

	j := minU64(uint64((v3-v4)/scale+0.5), thirdBound(n))
	v3 = float64(j) * scale
	toj := baseIdx3Delta(n, j)
	n -= (3 * j) / 2

	i := minU64(uint64((v2-v3-v4)/scale+0.5), n-1)

	return i + toj + tok, info, nil
}

// Decompress inverts Compress, returning the weights in the same reversed
// order that Compress accepts: [largest, 2nd-largest, 3rd-largest, smallest].
func Decompress(code uint64, info Info) (weightsReversed [4]float64) {
	n := info.N
	scale := info.Scale

	k := solveForI4(code, n, info.MI4)
	code -= info.MI4 - baseIdx4(k, n)
	n -= 2 * k

	j := solveForI3(code, n)
	code -= (n*n + n + 1) / 3 - baseIdx3(j, n)
	i := code

	// shear-alias-delta reconstruction
	j += k
	i += j

	// The largest weight is counted in grid steps as well (the whole simplex
	// spans 2*(N-1) steps), so a tie with w[1] decodes as an exact tie.
	var w [4]float64
	w[1] = float64(i) * scale
	w[2] = float64(j) * scale
	w[3] = float64(k) * scale
	w[0] = float64(int64(2*(info.N-1))-int64(i+j+k)) * scale
	return w
}

func baseIdx3(ic, n uint64) uint64 {
	a := 2*n - 3*ic + 1
	a2 := a * a
	r := a2 % 12
	extra := uint64(0)
	if r >= 6 {
		extra = 1
	}
	return a2/12 + extra
}

// baseIdx3Delta computes baseIdx3(0, n) - baseIdx3(j, n), as the closed form
// the encoder folds in directly rather than two baseIdx3 calls. The
// arithmetic must run in float64 and truncate only once at the end: j/2 and
// 1/4 are not meant to floor independently.
func baseIdx3Delta(n, j uint64) uint64 {
	nf, jf := float64(n), float64(j)
	return uint64(nf*jf - jf*jf*3/4 + jf/2 + 1.0/4)
}

func solveForI3(I, n uint64) uint64 {
	base0 := baseIdx3(0, n)
	x := base0 - I
	a := uint64(2*float64(n) + 1 - math.Sqrt(float64(12*x)))
	ic := a / 3

	lower := baseIdx3(ic, n)
	upper := baseIdx3(ic+1, n)

	result := ic
	if x > lower {
		result--
	}
	if x <= upper {
		result++
	}
	return result
}

func baseIdx4(id, n uint64) uint64 {
	a := 2*id - n - 1
	a2 := (a * a) / 36
	a2r := (a * a) % 36
	b := 3 - 2*a
	return a2*b + (a2r*b+18)/36
}

func solveForI4(I, n, mi4 uint64) uint64 {
	x := mi4 - I
	b := float64(x) * 144
	// math.Pow, not math.Cbrt: the cubic fixup below corrects for the
	// precision this loses, and must see the same cr the reference does.
	cr := math.Pow(b, 1.0/3.0)
	f := cr + 1/cr
	id := (n*2 + 3 - uint64(int64(f))) / 4
	lower := baseIdx4(id, n)
	if x > lower {
		id--
	}
	return id
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// halfFloor returns floor(n/2 - 1/2) for the unsigned grid size n, matching
// the reference clamp on the largest-magnitude shear coordinate.
func halfFloor(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (n - 1) / 2
}

// thirdBound returns floor((2n+1)/3) - 1, the clamp used for the
// second shear coordinate.
func thirdBound(n uint64) uint64 {
	v := (2*n + 1) / 3
	if v == 0 {
		return 0
	}
	return v - 1
}
