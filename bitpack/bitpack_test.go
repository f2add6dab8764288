package bitpack

import (
	"math/rand"
	"testing"
)

func TestInsertExtractRoundTrip(t *testing.T) {
	golden := []struct {
		bitOffset uint32
		bitCount  uint32
		value     uint32
	}{
		{bitOffset: 0, bitCount: 1, value: 1},
		{bitOffset: 0, bitCount: 8, value: 0xab},
		{bitOffset: 3, bitCount: 5, value: 0x1f},
		{bitOffset: 7, bitCount: 9, value: 0x1a5},
		{bitOffset: 16, bitCount: 19, value: 0x6badc},
		{bitOffset: 0, bitCount: 32, value: 0xdeadbeef},
		{bitOffset: 5, bitCount: 32, value: 0xcafef00d},
	}
	for _, g := range golden {
		buf := make([]byte, ByteLen(g.bitOffset, g.bitCount))
		Insert(buf, g.value, g.bitOffset, g.bitCount)
		var mask uint32 = 0xffffffff
		if g.bitCount < 32 {
			mask = (1 << g.bitCount) - 1
		}
		got := Extract(buf, g.bitOffset, g.bitCount)
		if want := g.value & mask; got != want {
			t.Errorf("result mismatch of Extract(Insert(value=%#x, offset=%d, count=%d)); expected %#x, got %#x", g.value, g.bitOffset, g.bitCount, want, got)
		}
	}
}

func TestInsertLeavesNeighboringBitsUntouched(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0xff}
	Insert(buf, 0, 8, 8)
	want := []byte{0xff, 0x00, 0xff, 0xff}
	for i, b := range buf {
		if b != want[i] {
			t.Errorf("byte %d mismatch; expected %#x, got %#x", i, want[i], b)
		}
	}
}

func TestInsertExtractFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		bitCount := uint32(1 + rng.Intn(32))
		bitOffset := uint32(rng.Intn(200))
		value := rng.Uint32()
		buf := make([]byte, ByteLen(bitOffset, bitCount))
		before := make([]byte, len(buf))
		rng.Read(before)
		copy(buf, before)
		Insert(buf, value, bitOffset, bitCount)
		got := Extract(buf, bitOffset, bitCount)
		var mask uint32 = 0xffffffff
		if bitCount < 32 {
			mask = (1 << bitCount) - 1
		}
		if want := value & mask; got != want {
			t.Fatalf("iteration %d: Extract(Insert(value=%#x, offset=%d, count=%d)) = %#x, want %#x", i, value, bitOffset, bitCount, got, want)
		}
	}
}

func TestByteLen(t *testing.T) {
	golden := []struct {
		bitOffset, bitCount uint32
		want                uint32
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 8, 1},
		{1, 8, 2},
		{7, 1, 1},
		{8, 8, 2},
	}
	for _, g := range golden {
		if got := ByteLen(g.bitOffset, g.bitCount); got != g.want {
			t.Errorf("ByteLen(%d, %d) = %d, want %d", g.bitOffset, g.bitCount, got, g.want)
		}
	}
}
