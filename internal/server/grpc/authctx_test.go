package grpcserver

import (
	"context"
	"testing"
)

func TestWithAccountID_And_AccountIDFromCtx(t *testing.T) {
	t.Parallel()

	if id, ok := AccountIDFromCtx(context.Background()); ok || id != 0 {
		t.Fatalf("expected no account id in empty ctx")
	}

	ctx := WithAccountID(context.Background(), 42)
	got, ok := AccountIDFromCtx(ctx)
	if !ok || got != 42 {
		t.Fatalf("mismatch: got %d ok=%v", got, ok)
	}

	bad := context.WithValue(context.Background(), accountIDKey, "42")
	if id, ok := AccountIDFromCtx(bad); ok || id != 0 {
		t.Fatalf("expected miss on wrong typed value")
	}
}
