package middleware

import "context"

type userKey struct{}

// UserCtx is the authenticated caller, taken from the access token.
type UserCtx struct {
	UserID int64
	Email  string
	Role   string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) (UserCtx, bool) {
	u, ok := ctx.Value(userKey{}).(UserCtx)
	return u, ok
}

// ActorID returns the caller's id for audit entries, nil when unauthenticated.
func ActorID(ctx context.Context) *int64 {
	u, ok := FromCtx(ctx)
	if !ok {
		return nil
	}
	id := u.UserID
	return &id
}
