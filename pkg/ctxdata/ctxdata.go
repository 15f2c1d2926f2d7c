package ctxdata

import (
	"context"
)

type traceIDKey struct{}
type principalIDKey struct{}
type principalRoleKey struct{}

var (
	traceIDKeyInstance       = traceIDKey{}
	principalIDKeyInstance   = principalIDKey{}
	principalRoleKeyInstance = principalRoleKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

func WithPrincipalID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, principalIDKeyInstance, id)
}

func GetPrincipalID(ctx context.Context) (int64, bool) {
	v := ctx.Value(principalIDKeyInstance)
	id, ok := v.(int64)
	return id, ok
}

func WithPrincipalRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, principalRoleKeyInstance, role)
}

func GetPrincipalRole(ctx context.Context) (string, bool) {
	v := ctx.Value(principalRoleKeyInstance)
	role, ok := v.(string)
	return role, ok
}
