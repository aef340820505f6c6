package auth

import (
	"testing"
	"time"

	"github.com/careerbridge/server/internal/config"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "careerbridge")

	token, err := manager.Generate("user-1", "graduate", "grad@example.com")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "graduate", claims.Role)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, RoleGraduate, actor.Role)
	require.Equal(t, "grad@example.com", actor.Email)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "careerbridge")
	other := NewJWTManager("other-secret", time.Hour, "careerbridge")

	token, err := other.Generate("user-1", "admin", "")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("abc.def.ghi")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestRequireRole(t *testing.T) {
	actor := Context{UserID: "u1", Role: RoleStudent}

	require.NoError(t, actor.RequireRole("op", RoleStudent, RoleGraduate))

	err := actor.RequireRole("op", RoleAdmin)
	require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err))

	err = Context{}.RequireRole("op", RoleStudent)
	require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err))
}

func TestSeedIdentityGating(t *testing.T) {
	t.Run("enabled outside production", func(t *testing.T) {
		cfg := config.Config{Environment: "development"}
		cfg.Auth.SeedIdentity = true

		actor, err := SeedIdentity(cfg)
		require.NoError(t, err)
		require.Equal(t, RoleAdmin, actor.Role)
	})

	t.Run("refused in production", func(t *testing.T) {
		cfg := config.Config{Environment: "production"}
		cfg.Auth.SeedIdentity = true

		_, err := SeedIdentity(cfg)
		require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err))
	})

	t.Run("refused when not opted in", func(t *testing.T) {
		cfg := config.Config{Environment: "development"}

		_, err := SeedIdentity(cfg)
		require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err))
	})
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	role, err = ParseRole("company")
	require.NoError(t, err)
	require.Equal(t, RoleCompany, role)

	_, err = ParseRole("superuser")
	require.Error(t, err)

	require.True(t, CanDeclareInterest(RoleGraduate))
	require.False(t, CanDeclareInterest(RoleCompany))
}

func TestActorFromClaimsRejectsUnknownRole(t *testing.T) {
	claims := &Claims{Role: "superuser"}
	claims.Subject = "user-1"

	_, err := ActorFromClaims(claims)
	require.ErrorIs(t, err, ErrInvalidToken)
}
