// Package grpcserver exposes the realm account gRPC API handlers.
package grpcserver

import (
	"context"
	"errors"
	"net"

	apiv1 "github.com/and161185/realm-accounts/internal/api/v1"
	"github.com/and161185/realm-accounts/internal/convert"
	"github.com/and161185/realm-accounts/internal/errs"
	"github.com/and161185/realm-accounts/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// PublicMethods need no access token.
var PublicMethods = []string{apiv1.MethodRegister, apiv1.MethodLogin}

// Server wires the account service into gRPC handlers.
type Server struct {
	apiv1.UnimplementedAccountsServer
	accounts service.AccountService
}

// New constructs a gRPC server with injected services.
func New(accounts service.AccountService) *Server {
	return &Server{accounts: accounts}
}

// Interceptors returns the unary chain the handlers expect. Rejected
// tokens are still logged.
func Interceptors(log *zap.Logger, signKey []byte) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		RecoverUnary(log),
		LoggingUnary(log),
		AuthUnary(signKey, PublicMethods...),
	)
}

// Register creates a new game account.
func (s *Server) Register(ctx context.Context, req *apiv1.RegisterRequest) (*apiv1.RegisterResponse, error) {
	id, err := s.accounts.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		return nil, toStatus("register", err)
	}
	return &apiv1.RegisterResponse{AccountID: id}, nil
}

// Login authenticates an account and returns an access token.
func (s *Server) Login(ctx context.Context, req *apiv1.LoginRequest) (*apiv1.LoginResponse, error) {
	tok, a, err := s.accounts.Login(ctx, req.Username, req.Password, remoteIP(ctx))
	if err != nil {
		return nil, toStatus("login", err)
	}
	return convert.ToLoginResponse(tok, a), nil
}

// ChangePassword replaces the credentials of the calling account.
func (s *Server) ChangePassword(ctx context.Context, req *apiv1.ChangePasswordRequest) (*apiv1.ChangePasswordResponse, error) {
	id, ok := AccountIDFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no auth")
	}
	if err := s.accounts.ChangePassword(ctx, id, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, toStatus("change password", err)
	}
	return &apiv1.ChangePasswordResponse{}, nil
}

// ChangeEmail updates the email of the calling account.
func (s *Server) ChangeEmail(ctx context.Context, req *apiv1.ChangeEmailRequest) (*apiv1.ChangeEmailResponse, error) {
	id, ok := AccountIDFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no auth")
	}
	if err := s.accounts.ChangeEmail(ctx, id, req.Password, req.Email); err != nil {
		return nil, toStatus("change email", err)
	}
	return &apiv1.ChangeEmailResponse{}, nil
}

// Profile returns the calling account with its characters.
func (s *Server) Profile(ctx context.Context, _ *apiv1.ProfileRequest) (*apiv1.ProfileResponse, error) {
	id, ok := AccountIDFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no auth")
	}
	p, err := s.accounts.Profile(ctx, id)
	if err != nil {
		return nil, toStatus("profile", err)
	}
	return convert.ToProfileResponse(p), nil
}

// toStatus maps service sentinels to gRPC codes.
func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, errs.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "username is already taken")
	case errors.Is(err, errs.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, "email is already in use")
	case errors.Is(err, errs.ErrRegistrationDisabled):
		return status.Error(codes.FailedPrecondition, "registration is disabled")
	case errors.Is(err, errs.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "invalid username or password")
	case errors.Is(err, errs.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "too many failed attempts, try again later")
	case errors.Is(err, errs.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, op+": canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op+": deadline exceeded")
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// remoteIP returns the peer host without port, so that reconnects from the
// same address share one limiter bucket.
func remoteIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
