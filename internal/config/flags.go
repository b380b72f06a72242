package config

import (
	"flag"
)

// newFlagSet binds every server flag to cfg, using the current cfg values
// as defaults. The returned string receives the -config path.
//
// Supported flags:
//
//	-addr string          gRPC bind address
//	-dsn string           PostgreSQL DSN
//	-max-conns int        pool size
//	-jwt-key string       HS256 signing key (required)
//	-access-ttl duration  access token lifetime
//	-tls-cert / -tls-key  PEM files
//	-dev                  enable server reflection
//	-registration         accept new accounts
//	-expansion int        expansion flag for new accounts (0-2)
//	-limit-window, -limit-fails, -limit-block  login lockout policy
//	-config, -c string    JSON config file
func newFlagSet(cfg *Config) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("realm-server", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "max pool connections")
	fs.StringVar(&cfg.JWTKey, "jwt-key", cfg.JWTKey, "HS256 signing key (required)")
	fs.DurationVar(&cfg.AccessTTL, "access-ttl", cfg.AccessTTL, "access token TTL")
	fs.StringVar(&cfg.TLSCert, "tls-cert", cfg.TLSCert, "TLS certificate (PEM)")
	fs.StringVar(&cfg.TLSKey, "tls-key", cfg.TLSKey, "TLS private key (PEM)")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "enable server reflection (dev only)")
	fs.BoolVar(&cfg.RegistrationEnabled, "registration", cfg.RegistrationEnabled, "accept new accounts")
	fs.IntVar(&cfg.Expansion, "expansion", cfg.Expansion, "expansion flag for new accounts (0-2)")
	fs.DurationVar(&cfg.LimiterWindow, "limit-window", cfg.LimiterWindow, "failed login counting window")
	fs.IntVar(&cfg.LimiterMaxFails, "limit-fails", cfg.LimiterMaxFails, "failed logins before lockout")
	fs.DurationVar(&cfg.LimiterBlockFor, "limit-block", cfg.LimiterBlockFor, "lockout duration")

	var path string
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")

	return fs, &path
}
