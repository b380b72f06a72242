// Package apiv1 defines the realm.v1.Accounts gRPC service: its messages,
// service descriptor, server registration and client.
package apiv1

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	AccountID int64 `json:"account_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Account     AccountInfo `json:"account"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ChangePasswordResponse struct{}

type ChangeEmailRequest struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

type ChangeEmailResponse struct{}

type ProfileRequest struct{}

type ProfileResponse struct {
	Account    AccountInfo `json:"account"`
	Characters []Character `json:"characters"`
	Stats      Stats       `json:"stats"`
}

// AccountInfo is the public part of an account; credentials never leave the server.
type AccountInfo struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Expansion int        `json:"expansion"`
	JoinDate  time.Time  `json:"join_date"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type Character struct {
	GUID      int64  `json:"guid"`
	Name      string `json:"name"`
	Race      int    `json:"race"`
	Class     int    `json:"class"`
	Gender    int    `json:"gender"`
	Level     int    `json:"level"`
	Zone      int    `json:"zone"`
	Map       int    `json:"map"`
	TotalTime int64  `json:"total_time"`
	Online    bool   `json:"online"`
}

type Stats struct {
	CharacterCount int   `json:"character_count"`
	MaxLevel       int   `json:"max_level"`
	TotalPlaytime  int64 `json:"total_playtime"`
}
