package auth

import (
	"context"

	"github.com/careerbridge/server/internal/config"
	"github.com/careerbridge/server/internal/domain/workflow"
)

// Context identifies the actor behind an operation. Every workflow operation
// takes one explicitly; there is no ambient fallback identity inside
// business logic.
type Context struct {
	UserID string
	Role   Role
	Email  string
}

func (c Context) IsZero() bool { return c.UserID == "" }

// RequireRole fails with Unauthorized unless the actor holds one of the
// allowed roles.
func (c Context) RequireRole(op string, allowed ...Role) error {
	if c.IsZero() {
		return workflow.Unauthorized(op, "no authenticated actor")
	}
	for _, role := range allowed {
		if c.Role == role {
			return nil
		}
	}
	return workflow.Unauthorized(op, "actor role "+string(c.Role)+" is not permitted")
}

type contextKey struct{}

func WithContext(ctx context.Context, actor Context) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func FromContext(ctx context.Context) (Context, bool) {
	actor, ok := ctx.Value(contextKey{}).(Context)
	return actor, ok
}

// SeedIdentity returns a fixed admin identity for development and seed
// scripts. It refuses to produce one unless the deployment explicitly opted
// in outside production; the implicit dev-fallback actor this replaces is
// gone on purpose.
func SeedIdentity(cfg config.Config) (Context, error) {
	if cfg.IsProduction() || !cfg.Auth.SeedIdentity {
		return Context{}, workflow.Unauthorized("auth.SeedIdentity", "seed identity is not enabled")
	}
	return Context{
		UserID: "00000000-0000-0000-0000-000000000001",
		Role:   RoleAdmin,
		Email:  "seed-admin@careerbridge.example",
	}, nil
}
