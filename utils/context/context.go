package context

import (
	"context"

	"github.com/muhammadheryan/storefront/constant"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetSessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(constant.SessionIDKey).(string)
	return v, ok && v != ""
}

// AuthVia reports how the request was authenticated ("session", "bearer" or "").
func AuthVia(ctx context.Context) string {
	v, _ := ctx.Value(constant.AuthViaKey).(string)
	return v
}

func WithUser(ctx context.Context, userID uint64, sessionID, via string) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, userID)
	ctx = context.WithValue(ctx, constant.SessionIDKey, sessionID)
	return context.WithValue(ctx, constant.AuthViaKey, via)
}
