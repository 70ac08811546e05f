package identity

import (
	"context"
	"strings"
)

type ctxKey string

const (
	ctxUserIDKey ctxKey = "user_id"
	ctxRoleKey   ctxKey = "role"
)

const RoleAdmin = "admin"

// WithUser stores the caller resolved by the gateway. An empty userID
// leaves ctx anonymous.
func WithUser(ctx context.Context, userID string, role string) context.Context {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxUserIDKey, userID)
	ctx = context.WithValue(ctx, ctxRoleKey, strings.ToLower(strings.TrimSpace(role)))
	return ctx
}

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxUserIDKey).(string)
	return id, ok && id != ""
}

func Role(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ctxRoleKey).(string)
	return role, ok
}

func IsAdmin(ctx context.Context) bool {
	role, _ := Role(ctx)
	return role == RoleAdmin
}

// CanAccess reports whether the caller may act on ownerID's private data.
func CanAccess(ctx context.Context, ownerID string) bool {
	id, ok := UserID(ctx)
	if !ok {
		return false
	}
	return id == ownerID || IsAdmin(ctx)
}
