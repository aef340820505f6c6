package handlers

import (
	"net/http"
	"time"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/interests"
	"github.com/careerbridge/server/internal/domain/opportunities"
)

type InterestsHandler struct {
	interests *interests.Service
	env       string
}

func NewInterestsHandler(service *interests.Service, env string) *InterestsHandler {
	return &InterestsHandler{interests: service, env: env}
}

// Declare handles POST /api/v1/opportunities/{id}/interest.
func (h *InterestsHandler) Declare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}
	if err := h.interests.Declare(r.Context(), actor(r), id); err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]string{"status": "interested"})
}

// Withdraw handles DELETE /api/v1/opportunities/{id}/interest. Withdrawing
// twice answers 204 both times.
func (h *InterestsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}
	if err := h.interests.Withdraw(r.Context(), actor(r), id); err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type interestItemResponse struct {
	OpportunityID   string    `json:"opportunity_id"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Type            string    `json:"type"`
	Location        string    `json:"location,omitempty"`
	LifecycleStatus string    `json:"lifecycle_status"`
	Status          string    `json:"status"`
	InterestedAt    time.Time `json:"interested_at"`
}

type interestListResponse struct {
	Items            []interestItemResponse `json:"items"`
	Total            int                    `json:"total"`
	Page             int                    `json:"page"`
	PageSize         int                    `json:"page_size"`
	TotalPages       int                    `json:"total_pages"`
	FilteredInMemory bool                   `json:"filtered_in_memory,omitempty"`
}

// ListMine handles GET /api/v1/me/interests.
func (h *InterestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := interests.Filters{Query: query.Get("q")}
	if raw := query.Get("lifecycle_status"); raw != "" {
		lifecycle, err := opportunities.ParseLifecycle(raw)
		if err != nil {
			problem.FromError(w, r, err, h.env)
			return
		}
		filters.LifecycleStatus = lifecycle
	}

	page, err := companies.ParsePage(query)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	result, err := h.interests.ListMyInterests(r.Context(), actor(r), filters, page)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}

	items := make([]interestItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, interestItemResponse{
			OpportunityID:   item.Opportunity.ULID,
			Title:           item.Opportunity.Title,
			CompanyName:     item.CompanyName,
			Type:            string(item.Opportunity.Type),
			Location:        item.Opportunity.Location,
			LifecycleStatus: string(item.Opportunity.LifecycleStatus),
			Status:          string(item.Opportunity.Availability),
			InterestedAt:    item.InterestedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, interestListResponse{
		Items:            items,
		Total:            result.Total,
		Page:             result.Page,
		PageSize:         result.PageSize,
		TotalPages:       result.TotalPages,
		FilteredInMemory: result.FilteredInMemory,
	})
}
