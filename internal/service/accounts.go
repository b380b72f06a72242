// Package service contains application services for realm accounts.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgcrypto "github.com/and161185/realm-accounts/internal/crypto"
	"github.com/and161185/realm-accounts/internal/errs"
	"github.com/and161185/realm-accounts/internal/limiter"
	"github.com/and161185/realm-accounts/internal/model"
	"github.com/and161185/realm-accounts/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AccountService defines registration, login and account maintenance.
type AccountService interface {
	// Register creates an account with a fresh SRP-6 salt/verifier pair.
	Register(ctx context.Context, username, password, email string) (accountID int64, err error)
	// Login applies rate-limiting, checks the password and issues an access token.
	Login(ctx context.Context, username, password, ip string) (model.Tokens, model.Account, error)
	// ChangePassword replaces the credential pair after checking the current password.
	ChangePassword(ctx context.Context, accountID int64, current, next string) error
	// ChangeEmail sets a new email after checking the password.
	ChangeEmail(ctx context.Context, accountID int64, password, email string) error
	// Profile returns the account with its characters and stats.
	Profile(ctx context.Context, accountID int64) (model.Profile, error)
}

// Options configures AccountServiceImpl.
type Options struct {
	SignKey             []byte
	AccessTTL           time.Duration
	RegistrationEnabled bool
	Expansion           int // expansion flag written on new accounts
}

type AccountServiceImpl struct {
	accounts   repository.AccountRepository
	characters repository.CharacterRepository
	lim        limiter.Limiter
	opts       Options
	log        *zap.Logger
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(
	accounts repository.AccountRepository,
	characters repository.CharacterRepository,
	lim limiter.Limiter,
	opts Options,
	log *zap.Logger,
) *AccountServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountServiceImpl{accounts: accounts, characters: characters, lim: lim, opts: opts, log: log}
}

// Register validates input, rejects duplicates and stores the derived credentials.
func (s *AccountServiceImpl) Register(ctx context.Context, username, password, email string) (int64, error) {
	if !s.opts.RegistrationEnabled {
		return 0, errs.ErrRegistrationDisabled
	}
	if err := checkUsername(username); err != nil {
		return 0, err
	}
	if err := checkPassword(password, minPasswordLen); err != nil {
		return 0, err
	}
	if err := checkEmail(email); err != nil {
		return 0, err
	}

	name := strings.ToUpper(username)
	_, err := s.accounts.GetByUsername(ctx, name)
	switch {
	case err == nil:
		return 0, errs.ErrAlreadyExists
	case !errors.Is(err, errs.ErrNotFound):
		return 0, err
	}

	taken, err := s.accounts.EmailTaken(ctx, email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, errs.ErrEmailTaken
	}

	creds, err := pkgcrypto.DeriveCredentials(username, password)
	if err != nil {
		return 0, fmt.Errorf("derive credentials: %w", err)
	}

	id, err := s.accounts.Create(ctx, &model.Account{
		Username:  name,
		Email:     email,
		Salt:      creds.Salt,
		Verifier:  creds.Verifier,
		Expansion: s.opts.Expansion,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("account registered", zap.Int64("account_id", id), zap.String("username", name))
	return id, nil
}

// Login authenticates with rate limiting by (account name, peer).
func (s *AccountServiceImpl) Login(ctx context.Context, username, password, ip string) (model.Tokens, model.Account, error) {
	if err := checkUsername(username); err != nil {
		return model.Tokens{}, model.Account{}, err
	}
	if err := checkPassword(password, minLoginPasswordLen); err != nil {
		return model.Tokens{}, model.Account{}, err
	}

	name := strings.ToUpper(username)
	peer := limiter.HashPeer(ip)

	allowed, _, err := s.lim.Allow(ctx, name, peer)
	if err != nil {
		return model.Tokens{}, model.Account{}, err
	}
	if !allowed {
		return model.Tokens{}, model.Account{}, errs.ErrRateLimited
	}

	a, err := s.accounts.GetByUsername(ctx, name)
	a, err = s.authenticate(a, err, username, password)
	if err != nil {
		if blocked, _, ferr := s.lim.Failure(ctx, name, peer); ferr == nil && blocked {
			return model.Tokens{}, model.Account{}, errs.ErrRateLimited
		}
		return model.Tokens{}, model.Account{}, err
	}

	// Success: reset counters and stamp last login (best-effort).
	_ = s.lim.Success(ctx, name, peer)
	if err := s.accounts.TouchLastLogin(ctx, a.ID); err != nil {
		s.log.Warn("touch last login", zap.Int64("account_id", a.ID), zap.Error(err))
	}

	access, exp, err := s.issueAccessToken(a.ID)
	if err != nil {
		return model.Tokens{}, model.Account{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, *a, nil
}

// ChangePassword checks current and overwrites salt/verifier with a fresh pair.
func (s *AccountServiceImpl) ChangePassword(ctx context.Context, accountID int64, current, next string) error {
	if err := checkPassword(next, minPasswordLen); err != nil {
		return err
	}
	a, err := s.accounts.GetByID(ctx, accountID)
	a, err = s.authenticate(a, err, "", current)
	if err != nil {
		return err
	}
	creds, err := pkgcrypto.DeriveCredentials(a.Username, next)
	if err != nil {
		return fmt.Errorf("derive credentials: %w", err)
	}
	if err := s.accounts.UpdateCredentials(ctx, a.ID, creds.Salt, creds.Verifier); err != nil {
		return err
	}
	s.log.Info("password changed", zap.Int64("account_id", a.ID))
	return nil
}

// ChangeEmail checks the password and assigns an unused email.
func (s *AccountServiceImpl) ChangeEmail(ctx context.Context, accountID int64, password, email string) error {
	if err := checkEmail(email); err != nil {
		return err
	}
	a, err := s.accounts.GetByID(ctx, accountID)
	a, err = s.authenticate(a, err, "", password)
	if err != nil {
		return err
	}
	taken, err := s.accounts.EmailTaken(ctx, email, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return errs.ErrEmailTaken
	}
	return s.accounts.UpdateEmail(ctx, a.ID, email)
}

// Profile loads the dashboard view of an account.
func (s *AccountServiceImpl) Profile(ctx context.Context, accountID int64) (model.Profile, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return model.Profile{}, err
	}
	chars, err := s.characters.ListByAccount(ctx, accountID)
	if err != nil {
		return model.Profile{}, err
	}
	stats, err := s.characters.StatsByAccount(ctx, accountID)
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{Account: *a, Characters: chars, Stats: stats}, nil
}

// authenticate checks username/password against a record returned by a
// lookup that failed with loadErr or succeeded. Every failure collapses to
// ErrUnauthorized; the cause is only logged. An empty username means the
// stored one.
func (s *AccountServiceImpl) authenticate(a *model.Account, loadErr error, username, password string) (*model.Account, error) {
	if loadErr != nil {
		if errors.Is(loadErr, context.Canceled) {
			return nil, loadErr
		}
		if !errors.Is(loadErr, errs.ErrNotFound) {
			s.log.Error("load account", zap.Error(loadErr))
		}
		return nil, errs.ErrUnauthorized
	}
	if err := pkgcrypto.CheckRecord(a.Salt, a.Verifier); err != nil {
		s.log.Warn("corrupt credential record", zap.Int64("account_id", a.ID), zap.Error(err))
	}
	if username == "" {
		username = a.Username
	}
	if !pkgcrypto.ValidateCredentials(username, password, a.Salt, a.Verifier) {
		return nil, errs.ErrUnauthorized
	}
	return a, nil
}

// issueAccessToken creates a signed HS256 JWT for the given account.
func (s *AccountServiceImpl) issueAccessToken(accountID int64) (string, time.Time, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	exp := now.Add(s.opts.AccessTTL)
	claims := jwt.RegisteredClaims{
		ID:        jti.String(),
		Subject:   strconv.FormatInt(accountID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.opts.SignKey)
	return signed, exp, err
}
