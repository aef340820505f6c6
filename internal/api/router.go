package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/careerbridge/server/internal/api/handlers"
	"github.com/careerbridge/server/internal/api/middleware"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/config"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/moderation"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps carries everything the router mounts. The caller owns construction
// and lifecycle; the router only wires.
type Deps struct {
	Config        config.Config
	Logger        zerolog.Logger
	Pool          *pgxpool.Pool
	JWT           *auth.JWTManager
	Companies     *companies.Service
	Opportunities *opportunities.Service
	Graduation    *graduation.Service
	Interests     *interests.Service
	Moderation    *moderation.Service
}

func NewRouter(deps Deps) http.Handler {
	env := deps.Config.Environment

	adminHandler := handlers.NewAdminHandler(deps.Moderation, env)
	companiesHandler := handlers.NewCompaniesHandler(deps.Companies, env)
	opportunitiesHandler := handlers.NewOpportunitiesHandler(deps.Opportunities, deps.Interests, env)
	graduationHandler := handlers.NewGraduationHandler(deps.Graduation, env)
	interestsHandler := handlers.NewInterestsHandler(deps.Interests, env)

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireActor(h)
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Public browse; the interested flag appears when a token is present.
	mux.Handle("/api/v1/opportunities", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(opportunitiesHandler.List),
		http.MethodPost: authed(opportunitiesHandler.Create),
	}))
	mux.Handle("/api/v1/opportunities/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(opportunitiesHandler.Get),
	}))
	mux.Handle("/api/v1/opportunities/{id}/lifecycle", methodMux(map[string]http.Handler{
		http.MethodPatch: authed(opportunitiesHandler.SetLifecycle),
	}))
	mux.Handle("/api/v1/opportunities/{id}/status", methodMux(map[string]http.Handler{
		http.MethodPatch: authed(opportunitiesHandler.SetAvailability),
	}))
	mux.Handle("/api/v1/opportunities/{id}/interest", methodMux(map[string]http.Handler{
		http.MethodPost:   authed(interestsHandler.Declare),
		http.MethodDelete: authed(interestsHandler.Withdraw),
	}))

	mux.Handle("/api/v1/companies", methodMux(map[string]http.Handler{
		http.MethodPost: authed(companiesHandler.Register),
	}))
	mux.Handle("/api/v1/companies/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:   http.HandlerFunc(companiesHandler.Get),
		http.MethodPatch: authed(companiesHandler.UpdateProfile),
	}))

	mux.Handle("/api/v1/graduation-requests", methodMux(map[string]http.Handler{
		http.MethodPost: authed(graduationHandler.Submit),
	}))
	mux.Handle("/api/v1/me/graduation-requests", methodMux(map[string]http.Handler{
		http.MethodGet: authed(graduationHandler.ListMine),
	}))
	mux.Handle("/api/v1/me/interests", methodMux(map[string]http.Handler{
		http.MethodGet: authed(interestsHandler.ListMine),
	}))

	// Role enforcement for admin routes happens in the moderation service;
	// the route gate only requires an authenticated actor.
	mux.Handle("/api/v1/admin/{kind}/{id}/approve", methodMux(map[string]http.Handler{
		http.MethodPost: authed(adminHandler.Approve),
	}))
	mux.Handle("/api/v1/admin/{kind}/{id}/reject", methodMux(map[string]http.Handler{
		http.MethodPost: authed(adminHandler.Reject),
	}))
	mux.Handle("/api/v1/admin/pending/{kind}", methodMux(map[string]http.Handler{
		http.MethodGet: authed(adminHandler.PendingQueue),
	}))

	var handler http.Handler = mux
	handler = middleware.Authenticate(deps.JWT, deps.Config)(handler)
	handler = middleware.RequestLogging(deps.Logger)(handler)
	return handler
}

func methodMux(byMethod map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := byMethod[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(byMethod))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(byMethod map[string]http.Handler) string {
	methods := make([]string, 0, len(byMethod))
	for method := range byMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
