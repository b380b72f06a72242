package crypto

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"math/big"
	"testing"
)

func TestLEToInt(t *testing.T) {
	t.Parallel()

	if got := leToInt([]byte{0x02, 0x01}); got.Cmp(big.NewInt(0x0102)) != 0 {
		t.Fatalf("leToInt=%s, want 258", got)
	}
	if got := leToInt([]byte{0x01, 0x00, 0x00}); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("trailing zeros must be high-order: got %s", got)
	}

	in := []byte{0xde, 0xad}
	_ = leToInt(in)
	if !bytes.Equal(in, []byte{0xde, 0xad}) {
		t.Fatalf("leToInt mutated its input: %x", in)
	}
}

func TestIntToLE(t *testing.T) {
	t.Parallel()

	got, err := intToLE(big.NewInt(0x0102), 32)
	if err != nil {
		t.Fatalf("intToLE: %v", err)
	}
	want := make([]byte, 32)
	want[0], want[1] = 0x02, 0x01
	if !bytes.Equal(got, want) {
		t.Fatalf("intToLE=%x, want=%x", got, want)
	}

	zero, err := intToLE(new(big.Int), 4)
	if err != nil || !bytes.Equal(zero, make([]byte, 4)) {
		t.Fatalf("zero: %x err=%v", zero, err)
	}
}

func TestIntToLE_Overflow(t *testing.T) {
	t.Parallel()

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := intToLE(tooBig, 32); !errors.Is(err, errOverflow) {
		t.Fatalf("want errOverflow, got %v", err)
	}
	if _, err := intToLE(big.NewInt(-1), 32); !errors.Is(err, errOverflow) {
		t.Fatalf("want errOverflow for negative, got %v", err)
	}
}

// A digest must survive exactly one reversal in each direction.
func TestEndian_RoundTripSingleReversal(t *testing.T) {
	t.Parallel()

	d := sha1.Sum([]byte("round trip"))
	n := leToInt(d[:])

	back, err := intToLE(n, len(d))
	if err != nil {
		t.Fatalf("intToLE: %v", err)
	}
	if !bytes.Equal(back, d[:]) {
		t.Fatalf("round trip changed bytes\n got=%x\nwant=%x", back, d[:])
	}

	if n.Cmp(new(big.Int).SetBytes(d[:])) == 0 {
		t.Fatalf("leToInt parsed the digest big-endian")
	}
}

func TestGroupParameters(t *testing.T) {
	t.Parallel()

	if groupN == nil || groupN.BitLen() != 256 {
		t.Fatalf("N must be a 256-bit value")
	}
	if !groupN.ProbablyPrime(20) {
		t.Fatalf("N is not prime")
	}
	if groupG.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("g=%s, want 7", groupG)
	}
}
