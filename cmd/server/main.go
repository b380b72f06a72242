// Command realm-server starts the realm account gRPC server.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	apiv1 "github.com/and161185/realm-accounts/internal/api/v1"
	"github.com/and161185/realm-accounts/internal/config"
	"github.com/and161185/realm-accounts/internal/limiter"
	"github.com/and161185/realm-accounts/internal/migrate"
	"github.com/and161185/realm-accounts/internal/repository/postgres"
	grpcserver "github.com/and161185/realm-accounts/internal/server/grpc"
	"github.com/and161185/realm-accounts/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts a TLS-enabled gRPC server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.Bool("registration", cfg.RegistrationEnabled),
	)

	creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
	if err != nil {
		logger.Fatal("failed to load TLS cert/key", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN, int32(cfg.MaxConns))
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepo(db)
	characterRepo := postgres.NewCharacterRepo(db)

	lim := limiter.NewPG(db.Pool, limiter.Policy{
		Window:   cfg.LimiterWindow,
		MaxFails: cfg.LimiterMaxFails,
		BlockFor: cfg.LimiterBlockFor,
	})

	signKey := []byte(cfg.JWTKey)
	accountSvc := service.NewAccountService(accountRepo, characterRepo, lim, service.Options{
		SignKey:             signKey,
		AccessTTL:           cfg.AccessTTL,
		RegistrationEnabled: cfg.RegistrationEnabled,
		Expansion:           cfg.Expansion,
	}, logger.Named("accounts"))

	s := grpc.NewServer(
		grpc.Creds(creds),
		grpcserver.Interceptors(logger, signKey),
	)
	apiv1.RegisterAccountsServer(s, grpcserver.New(accountSvc))

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(apiv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	if cfg.Dev {
		reflection.Register(s)
	}

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening (TLS)", zap.String("addr", cfg.Addr))
		errCh <- s.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		hs.Shutdown()
		done := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			s.Stop()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
