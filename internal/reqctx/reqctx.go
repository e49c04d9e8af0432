// internal/reqctx/reqctx.go
package reqctx

import "context"

type key int

const (
	keyRequestID key = iota
	keyPrincipal
)

// Principal — аутентифицированный пользователь из claims токена.
type Principal struct {
	UserID int64
	Name   string
	Email  string
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, p)
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	v, ok := ctx.Value(keyPrincipal).(Principal)
	return v, ok
}
