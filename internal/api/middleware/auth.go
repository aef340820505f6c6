package middleware

import (
	"net/http"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/config"
	"github.com/rs/zerolog"
)

// Authenticate resolves the acting identity from the Authorization header
// and stores it in the request context. When the seed identity is enabled
// (never in production) a missing token falls back to it, so local
// development does not need a token mint.
func Authenticate(manager *auth.JWTManager, cfg config.Config) func(http.Handler) http.Handler {
	seed, seedErr := auth.SeedIdentity(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if seedErr == nil {
					next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), seed)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.TokenFromHeader(header)
			if err != nil {
				writeUnauthorized(w, r, cfg.Environment, "malformed authorization header")
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("token rejected")
				writeUnauthorized(w, r, cfg.Environment, "invalid or expired token")
				return
			}

			actor, err := auth.ActorFromClaims(claims)
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("token rejected")
				writeUnauthorized(w, r, cfg.Environment, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), actor)))
		})
	}
}

// RequireActor rejects requests that carry no authenticated identity.
// Role-level checks stay in the services; this gate only guarantees a
// non-zero actor reaches them.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.FromContext(r.Context()); !ok {
			problem.Write(w, r, http.StatusUnauthorized, "about:blank", "Unauthorized", nil, "",
				problem.WithDetail("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, env, detail string) {
	problem.Write(w, r, http.StatusUnauthorized, "about:blank", "Unauthorized", nil, env,
		problem.WithDetail(detail))
}
