package permcode

import "testing"

func TestEncodeDecodeRoundTripAcrossTable(t *testing.T) {
	for tc := 0; tc < len(Codecs); tc++ {
		for ki := 0; ki < len(Codecs[tc]); ki++ {
			for vs := 0; vs < len(Codecs[tc][ki]); vs++ {
				c := Codecs[tc][ki][vs]
				if !c.Valid() {
					continue
				}
				extra := TupleCounts[tc] - 1
				weights := make([]float64, c.K)
				weights[c.K-1] = 1
				code := Encode(weights, extra, c)
				got, gotExtra := Decode(code, c)
				if gotExtra != extra {
					t.Fatalf("tc=%d k=%d vs=%d: extra round-trip = %d, want %d", tc, ki+2, vs+1, gotExtra, extra)
				}
				sum := 0.0
				for _, w := range got {
					sum += w
				}
				if sum < 0.99 || sum > 1.01 {
					t.Fatalf("tc=%d k=%d vs=%d: decoded weights %v sum to %v, want ~1", tc, ki+2, vs+1, got, sum)
				}
			}
		}
	}
}

func TestEncodeSingletonWeightIsExtraOnly(t *testing.T) {
	c := Codecs[0][2][1] // k=4, vertexSize=2
	weights := []float64{0, 0, 0, 1}
	for extra := uint64(0); extra < 3; extra++ {
		code := Encode(weights, extra, c)
		_, gotExtra := Decode(code, c)
		if gotExtra != extra {
			t.Fatalf("extra=%d: Decode(Encode(...)) extra = %d", extra, gotExtra)
		}
	}
}

func TestRowLooksUpSameCellAsDirectIndex(t *testing.T) {
	c := Row(1, 5, 3)
	want := Codecs[1][3][2]
	if c.K != want.K || c.W != want.W || c.P != want.P || len(c.E) != len(want.E) {
		t.Fatalf("Row(1, 5, 3) = %+v, want %+v", c, want)
	}
}

func TestInvalidRowIsZeroValue(t *testing.T) {
	c := Codecs[0][0][7] // k=2, vertexSize=8: no row populated at this size
	if c.Valid() {
		t.Fatalf("Codecs[0][0][7] = %+v, want invalid (zero value)", c)
	}
}
