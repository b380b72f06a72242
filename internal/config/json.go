package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the file layout. Pointer fields distinguish absent keys from
// zero values, so a partial file only overrides what it names. Durations
// are Go duration strings such as "15m".
type jsonConfig struct {
	Addr                *string `json:"addr"`
	DatabaseDSN         *string `json:"database_dsn"`
	MaxConns            *int    `json:"max_conns"`
	JWTKey              *string `json:"jwt_key"`
	AccessTTL           *string `json:"access_ttl"`
	TLSCert             *string `json:"tls_cert"`
	TLSKey              *string `json:"tls_key"`
	Dev                 *bool   `json:"dev"`
	RegistrationEnabled *bool   `json:"registration_enabled"`
	Expansion           *int    `json:"expansion"`
	LimiterWindow       *string `json:"limiter_window"`
	LimiterMaxFails     *int    `json:"limiter_max_fails"`
	LimiterBlockFor     *string `json:"limiter_block_for"`
}

// overlayJSON reads path and copies every present key into cfg.
func overlayJSON(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var c jsonConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.Addr, c.Addr)
	set(&cfg.DatabaseDSN, c.DatabaseDSN)
	set(&cfg.MaxConns, c.MaxConns)
	set(&cfg.JWTKey, c.JWTKey)
	set(&cfg.TLSCert, c.TLSCert)
	set(&cfg.TLSKey, c.TLSKey)
	set(&cfg.Dev, c.Dev)
	set(&cfg.RegistrationEnabled, c.RegistrationEnabled)
	set(&cfg.Expansion, c.Expansion)
	set(&cfg.LimiterMaxFails, c.LimiterMaxFails)

	for _, d := range []struct {
		name string
		dst  *time.Duration
		src  *string
	}{
		{"access_ttl", &cfg.AccessTTL, c.AccessTTL},
		{"limiter_window", &cfg.LimiterWindow, c.LimiterWindow},
		{"limiter_block_for", &cfg.LimiterBlockFor, c.LimiterBlockFor},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("config %s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
