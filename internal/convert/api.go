package convert

import (
	apiv1 "github.com/and161185/realm-accounts/internal/api/v1"
	"github.com/and161185/realm-accounts/internal/model"
)

// ToAccountInfo strips credentials from a domain account.
func ToAccountInfo(a model.Account) apiv1.AccountInfo {
	return apiv1.AccountInfo{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Expansion: a.Expansion,
		JoinDate:  a.JoinDate,
		LastLogin: a.LastLogin,
	}
}

// ToCharacter converts a domain character; the owning account id is implied.
func ToCharacter(c model.Character) apiv1.Character {
	return apiv1.Character{
		GUID:      c.GUID,
		Name:      c.Name,
		Race:      c.Race,
		Class:     c.Class,
		Gender:    c.Gender,
		Level:     c.Level,
		Zone:      c.Zone,
		Map:       c.Map,
		TotalTime: c.TotalTime,
		Online:    c.Online,
	}
}

// ToCharacters converts a slice of characters. Never returns nil.
func ToCharacters(cs []model.Character) []apiv1.Character {
	out := make([]apiv1.Character, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCharacter(c))
	}
	return out
}

func ToStats(s model.AccountStats) apiv1.Stats {
	return apiv1.Stats{
		CharacterCount: s.CharacterCount,
		MaxLevel:       s.MaxLevel,
		TotalPlaytime:  s.TotalPlaytime,
	}
}

// ToLoginResponse builds the Login reply from issued tokens and the account.
func ToLoginResponse(t model.Tokens, a model.Account) *apiv1.LoginResponse {
	return &apiv1.LoginResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt,
		Account:     ToAccountInfo(a),
	}
}

// ToProfileResponse builds the Profile reply.
func ToProfileResponse(p model.Profile) *apiv1.ProfileResponse {
	return &apiv1.ProfileResponse{
		Account:    ToAccountInfo(p.Account),
		Characters: ToCharacters(p.Characters),
		Stats:      ToStats(p.Stats),
	}
}
