package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/ids"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("response encoding failed")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, env string, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "about:blank", "Malformed Request Body", err, env)
		return false
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		problem.Write(w, r, http.StatusBadRequest, "about:blank", "Malformed Request Body",
			errors.New("request body must contain a single JSON object"), env)
		return false
	}
	return true
}

// actor pulls the authenticated identity; the middleware guarantees it for
// routes mounted behind RequireActor.
func actor(r *http.Request) auth.Context {
	identity, _ := auth.FromContext(r.Context())
	return identity
}

// pathULID validates the {id} path segment. A malformed ULID cannot name
// any entity, so it answers 404 without touching the store.
func pathULID(w http.ResponseWriter, r *http.Request, env string) (string, bool) {
	value := r.PathValue("id")
	if err := ids.ValidateULID(value); err != nil {
		problem.FromError(w, r, workflow.NotFound("handlers.pathULID", "not found"), env)
		return "", false
	}
	return value, true
}

// warningsPayload renders outcome warnings for the response envelope.
func warningsPayload(warnings []workflow.Warning) []map[string]string {
	if len(warnings) == 0 {
		return nil
	}
	rendered := make([]map[string]string, 0, len(warnings))
	for _, warning := range warnings {
		rendered = append(rendered, map[string]string{
			"op":    warning.Op,
			"error": warning.Err.Error(),
		})
	}
	return rendered
}
