package handlers

import (
	"net/http"
	"time"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/moderation"
	"github.com/careerbridge/server/internal/domain/workflow"
)

// AdminHandler exposes the moderation state machine: approve, reject, and
// the per-kind pending queues.
type AdminHandler struct {
	moderation *moderation.Service
	env        string
}

func NewAdminHandler(service *moderation.Service, env string) *AdminHandler {
	return &AdminHandler{moderation: service, env: env}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type decisionResponse struct {
	EntityKind string              `json:"entity_kind"`
	EntityID   string              `json:"entity_id"`
	Status     string              `json:"status"`
	Reason     string              `json:"reason,omitempty"`
	DecidedBy  string              `json:"decided_by"`
	DecidedAt  time.Time           `json:"decided_at"`
	Warnings   []map[string]string `json:"warnings,omitempty"`
}

// Approve handles POST /api/v1/admin/{kind}/{id}/approve. A partial
// graduation approval still answers 200: the request is approved, and the
// body carries the warning trail.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.entityKind(w, r)
	if !ok {
		return
	}

	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	outcome, err := h.moderation.Approve(r.Context(), actor(r), kind, id)
	if err != nil && workflow.KindOf(err) != workflow.KindPartialApproval {
		problem.FromError(w, r, err, h.env)
		return
	}

	response := decisionFromOutcome(outcome)
	if err != nil {
		response.Warnings = append(response.Warnings, map[string]string{
			"op":    "moderation.Approve",
			"error": err.Error(),
		})
	}
	writeJSON(w, r, http.StatusOK, response)
}

// Reject handles POST /api/v1/admin/{kind}/{id}/reject.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.entityKind(w, r)
	if !ok {
		return
	}

	var body rejectRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	outcome, err := h.moderation.Reject(r.Context(), actor(r), kind, id, body.Reason)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusOK, decisionFromOutcome(outcome))
}

type pendingItemResponse struct {
	EntityKind  string    `json:"entity_kind"`
	EntityID    string    `json:"entity_id"`
	Title       string    `json:"title"`
	SubmittedBy string    `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
	IsOverSLA   bool      `json:"is_over_sla"`
}

type pendingQueueResponse struct {
	Items      []pendingItemResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// PendingQueue handles GET /api/v1/admin/pending/{kind}.
func (h *AdminHandler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.entityKind(w, r)
	if !ok {
		return
	}

	page, err := companies.ParsePage(r.URL.Query())
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	result, err := h.moderation.ListPending(r.Context(), actor(r), kind, page)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	items := make([]pendingItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, pendingItemResponse{
			EntityKind:  string(item.EntityKind),
			EntityID:    item.EntityULID,
			Title:       item.Title,
			SubmittedBy: item.SubmittedBy,
			SubmittedAt: item.SubmittedAt,
			IsOverSLA:   item.IsOverSLA,
		})
	}
	writeJSON(w, r, http.StatusOK, pendingQueueResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// entityKind resolves the {kind} path segment. Routes use plural REST
// segments; the queue endpoint accepts the singular kind names as well.
func (h *AdminHandler) entityKind(w http.ResponseWriter, r *http.Request) (workflow.EntityKind, bool) {
	raw := r.PathValue("kind")
	switch raw {
	case "companies":
		raw = string(workflow.EntityCompany)
	case "opportunities":
		raw = string(workflow.EntityOpportunity)
	case "graduation-requests":
		raw = string(workflow.EntityGraduationRequest)
	}
	kind, err := workflow.ParseEntityKind(raw)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return "", false
	}
	return kind, true
}

func decisionFromOutcome(outcome workflow.Outcome[moderation.Decision]) decisionResponse {
	decision := outcome.Value
	return decisionResponse{
		EntityKind: string(decision.EntityKind),
		EntityID:   decision.EntityULID,
		Status:     string(decision.Status),
		Reason:     decision.Reason,
		DecidedBy:  decision.DecidedBy,
		DecidedAt:  decision.DecidedAt,
		Warnings:   warningsPayload(outcome.Warnings),
	}
}
