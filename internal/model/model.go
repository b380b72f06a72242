// Package model defines domain entities used by services and repositories.
package model

import "time"

// Tokens collects an issued access token.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Account is a row of the realm account table. The password itself is never
// stored; Salt and Verifier are the SRP-6 record read by the realm server.
type Account struct {
	ID        int64
	Username  string // stored upper-cased
	Email     string
	Salt      []byte // 32 bytes
	Verifier  []byte // 32 bytes, little-endian
	Expansion int
	JoinDate  time.Time
	LastLogin *time.Time
}

// Character is a playable character owned by an account.
type Character struct {
	GUID      int64
	AccountID int64
	Name      string
	Race      int
	Class     int
	Gender    int
	Level     int
	Zone      int
	Map       int
	TotalTime int64 // seconds played
	Online    bool
}

// AccountStats summarises the characters of one account.
type AccountStats struct {
	CharacterCount int
	MaxLevel       int
	TotalPlaytime  int64
}

// Profile is the account dashboard view.
type Profile struct {
	Account    Account
	Characters []Character
	Stats      AccountStats
}
