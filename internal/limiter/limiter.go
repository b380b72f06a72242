// Package limiter throttles login attempts per (account name, peer) pair.
package limiter

import (
	"context"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, username string, peerHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, username string, peerHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, username string, peerHash []byte) (bool, time.Duration, error)
}

// Policy configures the sliding window and lockout.
type Policy struct {
	Window   time.Duration // failures older than Window restart the count
	MaxFails int           // failures within Window that trigger a block
	BlockFor time.Duration
}

// DefaultPolicy allows five failures per 15 minutes.
var DefaultPolicy = Policy{Window: 15 * time.Minute, MaxFails: 5, BlockFor: 15 * time.Minute}

// HashPeer returns a BLAKE2b-256 digest of a peer address so raw IPs are never stored.
func HashPeer(addr string) []byte {
	h := blake2b.Sum256([]byte(addr))
	return h[:]
}
