package prng

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestLCG_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("sequences diverged at %d: %f != %f", i, x, y)
		}
	}
}

func TestLCG_DifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	if a.Uint64() == b.Uint64() {
		t.Error("expected different seeds to produce different first values")
	}
}

func TestLCG_Recurrence(t *testing.T) {
	seed := uint64(7)
	g := New(seed)
	want := seed*multiplier + increment
	if got := g.Uint64(); got != want {
		t.Errorf("expected state %d, got %d", want, got)
	}
}

func TestLCG_Float64InUnitInterval(t *testing.T) {
	g := New(FallbackSeed)
	for i := 0; i < 10000; i++ {
		f := g.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f out of [0,1)", f)
		}
	}
}

func TestLCG_Range(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"symmetric", -5, 5},
		{"positive", 10, 20},
		{"narrow", 0.25, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(99)
			for i := 0; i < 10000; i++ {
				v := g.Range(tt.min, tt.max)
				if v < tt.min || v >= tt.max {
					t.Fatalf("Range(%f, %f) = %f out of bounds", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestLCG_Bool(t *testing.T) {
	g := New(123)
	for i := 0; i < 100; i++ {
		if g.Bool(0) {
			t.Fatal("Bool(0) must never be true")
		}
		if !g.Bool(1) {
			t.Fatal("Bool(1) must always be true")
		}
	}

	trues := 0
	for i := 0; i < 10000; i++ {
		if g.Bool(0.5) {
			trues++
		}
	}
	if trues < 4500 || trues > 5500 {
		t.Errorf("expected roughly half true, got %d of 10000", trues)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unavailable")
}

func TestReadSeed(t *testing.T) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 0xdeadbeef)

	seed, err := ReadSeed(bytes.NewReader(buf[:]))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != 0xdeadbeef {
		t.Errorf("expected seed 0xdeadbeef, got %#x", seed)
	}
}

func TestReadSeed_Fallback(t *testing.T) {
	tests := []struct {
		name string
		src  *bytes.Reader
		fail bool
	}{
		{"short read", bytes.NewReader([]byte{1, 2, 3}), false},
		{"zero seed", bytes.NewReader(make([]byte, 8)), false},
		{"failing device", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seed uint64
			var err error
			if tt.fail {
				seed, err = ReadSeed(failingReader{})
			} else {
				seed, err = ReadSeed(tt.src)
			}
			if err == nil {
				t.Error("expected an error describing the degradation")
			}
			if seed != FallbackSeed {
				t.Errorf("expected fallback seed, got %d", seed)
			}
		})
	}

	seed, err := ReadSeed(nil)
	if err == nil || seed != FallbackSeed {
		t.Errorf("nil reader: expected fallback with error, got %d, %v", seed, err)
	}
}
