package grpcserver

import (
	"context"
)

type ctxKey string

const accountIDKey ctxKey = "realm.accountID"

// WithAccountID stores the authenticated account id in context.
func WithAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountIDFromCtx fetches the account id stored by AuthUnary.
func AccountIDFromCtx(ctx context.Context) (int64, bool) {
	v := ctx.Value(accountIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
