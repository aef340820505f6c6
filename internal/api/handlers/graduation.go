package handlers

import (
	"net/http"
	"time"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/go-playground/validator/v10"
)

type GraduationHandler struct {
	graduation *graduation.Service
	env        string
}

func NewGraduationHandler(service *graduation.Service, env string) *GraduationHandler {
	return &GraduationHandler{graduation: service, env: env}
}

type submitGraduationRequest struct {
	GraduationYear int     `json:"graduation_year"`
	DegreeTitle    string  `json:"degree_title"`
	Major          string  `json:"major"`
	ThesisTitle    string  `json:"thesis_title"`
	FinalGPA       float64 `json:"final_gpa"`
}

type graduationResponse struct {
	ID              string     `json:"id"`
	GraduationYear  int        `json:"graduation_year"`
	DegreeTitle     string     `json:"degree_title"`
	Major           string     `json:"major"`
	ThesisTitle     string     `json:"thesis_title,omitempty"`
	FinalGPA        float64    `json:"final_gpa"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time  `json:"requested_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

// Submit handles POST /api/v1/graduation-requests. Field-level validation
// failures are itemized in the problem body.
func (h *GraduationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitGraduationRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	request, err := h.graduation.Submit(r.Context(), actor(r), graduation.SubmitInput{
		GraduationYear: body.GraduationYear,
		DegreeTitle:    body.DegreeTitle,
		Major:          body.Major,
		ThesisTitle:    body.ThesisTitle,
		FinalGPA:       body.FinalGPA,
	})
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if graduation.AsValidationErrors(err, &fieldErrs) {
			problem.FromError(w, r, err, h.env, problem.WithErrors(fieldErrorMap(fieldErrs)))
			return
		}
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusCreated, graduationView(request))
}

// ListMine handles GET /api/v1/me/graduation-requests.
func (h *GraduationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.graduation.ListForUser(r.Context(), actor(r))
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	items := make([]graduationResponse, 0, len(requests))
	for i := range requests {
		items = append(items, graduationView(&requests[i]))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items})
}

func fieldErrorMap(fieldErrs validator.ValidationErrors) map[string]any {
	rendered := make(map[string]any, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		rendered[fieldErr.Field()] = "failed " + fieldErr.Tag() + " validation"
	}
	return rendered
}

func graduationView(request *graduation.Request) graduationResponse {
	return graduationResponse{
		ID:              request.ULID,
		GraduationYear:  request.GraduationYear,
		DegreeTitle:     request.DegreeTitle,
		Major:           request.Major,
		ThesisTitle:     request.ThesisTitle,
		FinalGPA:        request.FinalGPA,
		Status:          string(request.Status),
		RejectionReason: request.RejectionReason,
		RequestedAt:     request.RequestedAt,
		DecidedAt:       request.DecidedAt,
	}
}
