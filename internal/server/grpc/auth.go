package grpcserver

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"
)

const tokenLeeway = 30 * time.Second

// accountIDFromToken verifies an HS256 access token and returns its subject.
func accountIDFromToken(tok string, signKey []byte) (int64, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return signKey, nil
	}, jwt.WithLeeway(tokenLeeway))
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("bad subject")
	}
	return id, nil
}

// accountIDFromMD extracts "authorization: Bearer <JWT>" and verifies it.
func accountIDFromMD(ctx context.Context, signKey []byte) (int64, error) {
	tok, err := bearerTokenFromMD(ctx)
	if err != nil {
		return 0, err
	}
	return accountIDFromToken(tok, signKey)
}

func bearerTokenFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("no metadata")
	}
	for _, v := range md.Get("authorization") {
		v = strings.TrimSpace(v)
		if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
			t := strings.TrimSpace(v[7:])
			if t != "" {
				return t, nil
			}
		}
	}
	return "", errors.New("no bearer token")
}
