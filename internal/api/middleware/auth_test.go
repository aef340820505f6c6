package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/config"
	"github.com/stretchr/testify/require"
)

func testConfig(env string, seed bool) config.Config {
	return config.Config{
		Environment: env,
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			SeedIdentity: seed,
		},
	}
}

func echoActor(t *testing.T, captured *auth.Context) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := auth.FromContext(r.Context()); ok {
			*captured = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "careerbridge")
	token, err := manager.Generate("user-1", "admin", "admin@example.edu")
	require.NoError(t, err)

	var captured auth.Context
	handler := Authenticate(manager, testConfig("production", false))(echoActor(t, &captured))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/admin/pending/company", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "user-1", captured.UserID)
	require.Equal(t, auth.RoleAdmin, captured.Role)
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "careerbridge")
	other := auth.NewJWTManager("other-secret", time.Hour, "careerbridge")
	token, err := other.Generate("user-1", "admin", "")
	require.NoError(t, err)

	handler := Authenticate(manager, testConfig("production", false))(http.NotFoundHandler())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.Equal(t, "application/problem+json", recorder.Header().Get("Content-Type"))
}

func TestAuthenticateRejectsUnknownRoleClaim(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "careerbridge")
	token, err := manager.Generate("user-1", "superuser", "")
	require.NoError(t, err)

	handler := Authenticate(manager, testConfig("production", false))(http.NotFoundHandler())

	request := httptest.NewRequest(http.MethodGet, "/api/v1/me/interests", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "careerbridge")

	var captured auth.Context
	handler := Authenticate(manager, testConfig("production", false))(echoActor(t, &captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, captured.IsZero(), "anonymous request must not gain an identity")
}

func TestAuthenticateSeedIdentityInDevelopment(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour, "careerbridge")

	var captured auth.Context
	handler := Authenticate(manager, testConfig("development", true))(echoActor(t, &captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.False(t, captured.IsZero())
	require.Equal(t, auth.RoleAdmin, captured.Role)
}

func TestRequireActorBlocksAnonymous(t *testing.T) {
	handler := RequireActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/companies", nil))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
