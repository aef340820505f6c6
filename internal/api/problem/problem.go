package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

// ProblemDetails is the RFC 7807 error body every failing endpoint emits.
type ProblemDetails struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   map[string]any `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

func WithErrors(errs map[string]any) Option {
	return func(p *ProblemDetails) {
		p.Errors = errs
	}
}

// StatusForKind maps workflow error kinds onto HTTP statuses. Partial
// approval is absent on purpose: a partially applied approval is still a
// 200 with warnings, not a problem response.
func StatusForKind(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindInvalidState, workflow.KindDuplicate, workflow.KindNotEligible:
		return http.StatusConflict
	case workflow.KindValidation:
		return http.StatusUnprocessableEntity
	case workflow.KindUnauthorized:
		return http.StatusForbidden
	case workflow.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func titleForKind(kind workflow.Kind) string {
	switch kind {
	case workflow.KindNotFound:
		return "Not Found"
	case workflow.KindInvalidState:
		return "Conflict"
	case workflow.KindDuplicate:
		return "Already Exists"
	case workflow.KindNotEligible:
		return "Not Eligible"
	case workflow.KindValidation:
		return "Validation Failed"
	case workflow.KindUnauthorized:
		return "Forbidden"
	case workflow.KindUnavailable:
		return "Service Unavailable"
	default:
		return "Internal Server Error"
	}
}

// FromError writes the problem response for a workflow error. The
// user-facing message of a workflow.Error is safe to expose; anything else
// is hidden outside development.
func FromError(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	kind := workflow.KindOf(err)
	status := StatusForKind(kind)

	var detail string
	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		detail = wfErr.Message
	} else if env == "development" || env == "test" {
		detail = err.Error()
	}

	combined := append([]Option{WithDetail(detail)}, opts...)
	Write(w, r, status, "about:blank", titleForKind(kind), err, env, combined...)
}

func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	p := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}
	for _, opt := range opts {
		opt(&p)
	}

	if p.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			p.Detail = err.Error()
		} else {
			p.Detail = http.StatusText(status)
		}
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(title)
	}

	WriteProblem(w, p)
}

func WriteProblem(w http.ResponseWriter, p ProblemDetails) {
	payload, err := json.Marshal(p)
	if err != nil {
		fallback := fmt.Sprintf("{\"type\":\"about:blank\",\"title\":\"%s\",\"status\":500}", http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(p.Status)
	_, _ = w.Write(payload)
}
