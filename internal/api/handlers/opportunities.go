package handlers

import (
	"net/http"
	"time"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/opportunities"
)

type OpportunitiesHandler struct {
	opportunities *opportunities.Service
	interests     *interests.Service
	env           string
}

func NewOpportunitiesHandler(service *opportunities.Service, interestService *interests.Service, env string) *OpportunitiesHandler {
	return &OpportunitiesHandler{opportunities: service, interests: interestService, env: env}
}

type createOpportunityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
}

type opportunityResponse struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	Type            string    `json:"type"`
	ApprovalStatus  string    `json:"approval_status"`
	LifecycleStatus string    `json:"lifecycle_status"`
	Status          string    `json:"status"`
	Interested      *bool     `json:"interested,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Create handles POST /api/v1/opportunities.
func (h *OpportunitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createOpportunityRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	opportunityType, err := opportunities.ParseType(body.Type)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	opportunity, err := h.opportunities.Create(r.Context(), actor(r), opportunities.CreateParams{
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		Type:        opportunityType,
	})
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusCreated, opportunityView(opportunity, nil))
}

// Get handles GET /api/v1/opportunities/{id}.
func (h *OpportunitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	opportunity, err := h.opportunities.GetByULID(r.Context(), id)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	var interested *bool
	if identity := actor(r); !identity.IsZero() {
		if is, err := h.interests.IsInterested(r.Context(), identity, opportunity.ULID); err == nil {
			interested = &is
		}
	}
	writeJSON(w, r, http.StatusOK, opportunityView(opportunity, interested))
}

type opportunityListResponse struct {
	Items      []opportunityResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// List handles GET /api/v1/opportunities, the public browse view. For an
// authenticated student or graduate each card also carries the interested
// flag, resolved in one batch query.
func (h *OpportunitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, page, err := opportunities.ParseFilters(r.URL.Query())
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	result, err := h.opportunities.ListPublic(r.Context(), filters, page)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	var interestedByID map[string]bool
	if identity := actor(r); !identity.IsZero() {
		ids := make([]string, 0, len(result.Items))
		for _, item := range result.Items {
			ids = append(ids, item.ID)
		}
		if batch, err := h.interests.BatchIsInterested(r.Context(), identity, ids); err == nil {
			interestedByID = batch
		}
	}

	items := make([]opportunityResponse, 0, len(result.Items))
	for i := range result.Items {
		item := &result.Items[i]
		var interested *bool
		if interestedByID != nil {
			is := interestedByID[item.ID]
			interested = &is
		}
		items = append(items, opportunityView(item, interested))
	}
	writeJSON(w, r, http.StatusOK, opportunityListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

type lifecycleRequest struct {
	LifecycleStatus string `json:"lifecycle_status"`
}

// SetLifecycle handles PATCH /api/v1/opportunities/{id}/lifecycle.
func (h *OpportunitiesHandler) SetLifecycle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	var body lifecycleRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	lifecycle, err := opportunities.ParseLifecycle(body.LifecycleStatus)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	if err := h.opportunities.SetLifecycle(r.Context(), actor(r), id, lifecycle); err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"lifecycle_status": string(lifecycle)})
}

type availabilityRequest struct {
	Status string `json:"status"`
}

// SetAvailability handles PATCH /api/v1/opportunities/{id}/status.
func (h *OpportunitiesHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	var body availabilityRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	availability, err := opportunities.ParseAvailability(body.Status)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	if err := h.opportunities.SetAvailability(r.Context(), actor(r), id, availability); err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": string(availability)})
}

func opportunityView(o *opportunities.Opportunity, interested *bool) opportunityResponse {
	return opportunityResponse{
		ID:              o.ULID,
		CompanyName:     o.CompanyName,
		Title:           o.Title,
		Description:     o.Description,
		Location:        o.Location,
		Type:            string(o.Type),
		ApprovalStatus:  string(o.ApprovalStatus),
		LifecycleStatus: string(o.LifecycleStatus),
		Status:          string(o.Availability),
		Interested:      interested,
		CreatedAt:       o.CreatedAt,
	}
}
