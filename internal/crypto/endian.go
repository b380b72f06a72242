package crypto

import (
	"math/big"
	"slices"
)

// leToInt parses b as an unsigned little-endian integer.
func leToInt(b []byte) *big.Int {
	be := slices.Clone(b)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

// intToLE encodes n as exactly size little-endian bytes, zero padded.
func intToLE(n *big.Int, size int) ([]byte, error) {
	if n.Sign() < 0 || (n.BitLen()+7)/8 > size {
		return nil, errOverflow
	}
	b := n.FillBytes(make([]byte, size))
	slices.Reverse(b)
	return b, nil
}
