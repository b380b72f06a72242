// Package crypto implements the SRP-6 verifier scheme shared with the realm
// authentication server: salt generation, verifier derivation and checks.
package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Record layout of the realm account table.
const (
	SaltLen     = 32
	VerifierLen = 32
)

// Group parameters compiled into the realm server. Read-only.
var (
	groupN, _ = new(big.Int).SetString("894B645E89E1535BBDAD5B8B290650530801B18EBFBF5E8FAB3C82872A3E9BB7", 16)
	groupG    = big.NewInt(7)
)

var (
	// ErrRandomnessUnavailable is returned when the secure random source fails.
	ErrRandomnessUnavailable = errors.New("crypto: secure random source unavailable")

	// ErrMalformedInput reports a salt or verifier of the wrong length.
	ErrMalformedInput = errors.New("crypto: malformed salt or verifier")

	errOverflow = errors.New("crypto: integer does not fit buffer")
)

// Credentials is the salt/verifier pair persisted for an account.
type Credentials struct {
	Salt     []byte // SaltLen random bytes
	Verifier []byte // VerifierLen bytes, little-endian g^x mod N
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	return randBytes(rand.Reader, n)
}

func randBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return b, nil
}

// DeriveCredentials generates a fresh salt and the matching verifier.
func DeriveCredentials(username, password string) (Credentials, error) {
	return deriveCredentials(rand.Reader, username, password)
}

func deriveCredentials(r io.Reader, username, password string) (Credentials, error) {
	salt, err := randBytes(r, SaltLen)
	if err != nil {
		return Credentials{}, err
	}
	v, err := ComputeVerifier(username, password, salt)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Salt: salt, Verifier: v}, nil
}

// ComputeVerifier derives the verifier for username/password under salt.
func ComputeVerifier(username, password string, salt []byte) ([]byte, error) {
	if len(salt) != SaltLen {
		return nil, fmt.Errorf("%w: salt is %d bytes", ErrMalformedInput, len(salt))
	}
	x := leToInt(secretHash(username, password, salt))
	v := new(big.Int).Exp(groupG, x, groupN)
	return intToLE(v, VerifierLen)
}

// CheckRecord reports whether salt and verifier have the stored layout.
func CheckRecord(salt, verifier []byte) error {
	if len(salt) != SaltLen {
		return fmt.Errorf("%w: salt is %d bytes", ErrMalformedInput, len(salt))
	}
	if len(verifier) != VerifierLen {
		return fmt.Errorf("%w: verifier is %d bytes", ErrMalformedInput, len(verifier))
	}
	return nil
}

// ValidateCredentials recomputes the verifier from username/password and salt
// and compares it with verifier in constant time. Any malformed input yields
// false.
func ValidateCredentials(username, password string, salt, verifier []byte) bool {
	if CheckRecord(salt, verifier) != nil {
		return false
	}
	got, err := ComputeVerifier(username, password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, verifier) == 1
}

// secretHash returns SHA1(salt || SHA1(USER ":" PASS)).
func secretHash(username, password string, salt []byte) []byte {
	h := sha1.New()
	h.Write([]byte(upperASCII(username)))
	h.Write([]byte{':'})
	h.Write([]byte(upperASCII(password)))
	inner := h.Sum(nil)

	h.Reset()
	h.Write(salt)
	h.Write(inner)
	return h.Sum(nil)
}

// upperASCII folds a-z only; other bytes pass through unchanged.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
