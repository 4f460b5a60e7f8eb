package app

import (
	"context"

	"github.com/khrees2412/takecare-ats/pkg/models"
)

type contextKey int

const (
	appKey contextKey = iota
	userKey
)

// GetAppFromContext retrieves the App stored by the root command
func GetAppFromContext(ctx context.Context) *App {
	a, _ := ctx.Value(appKey).(*App)
	return a
}

// SetAppInContext stores the App for subcommands
func SetAppInContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// UserFromContext returns the acting user resolved earlier in this command,
// or nil
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUser records the acting user so later lookups skip the session store
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
