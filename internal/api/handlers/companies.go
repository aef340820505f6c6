package handlers

import (
	"net/http"
	"time"

	"github.com/careerbridge/server/internal/api/problem"
	"github.com/careerbridge/server/internal/domain/companies"
)

type CompaniesHandler struct {
	companies *companies.Service
	env       string
}

func NewCompaniesHandler(service *companies.Service, env string) *CompaniesHandler {
	return &CompaniesHandler{companies: service, env: env}
}

type registerCompanyRequest struct {
	Name         string `json:"name"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	ContactEmail string `json:"contact_email"`
}

type companyResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Website         string    `json:"website,omitempty"`
	Description     string    `json:"description,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	LogoURL         string    `json:"logo_url,omitempty"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ApprovalStatus  string    `json:"approval_status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Register handles POST /api/v1/companies: self-registration lands in the
// pending queue.
func (h *CompaniesHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerCompanyRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	company, err := h.companies.Register(r.Context(), actor(r), companies.RegisterParams{
		Name:         body.Name,
		Website:      body.Website,
		Description:  body.Description,
		Industry:     body.Industry,
		ContactEmail: body.ContactEmail,
	})
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusCreated, companyView(company))
}

// Get handles GET /api/v1/companies/{id}.
func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	company, err := h.companies.GetByULID(r.Context(), id)
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusOK, companyView(company))
}

type updateProfileRequest struct {
	Website     *string `json:"website"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	LogoURL     *string `json:"logo_url"`
}

// UpdateProfile handles PATCH /api/v1/companies/{id}.
func (h *CompaniesHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathULID(w, r, h.env)
	if !ok {
		return
	}

	var body updateProfileRequest
	if !decodeJSON(w, r, h.env, &body) {
		return
	}

	company, err := h.companies.UpdateProfile(r.Context(), actor(r), id, companies.ProfileParams{
		Website:     body.Website,
		Description: body.Description,
		Industry:    body.Industry,
		LogoURL:     body.LogoURL,
	})
	if err != nil {
		problem.FromError(w, r, err, h.env)
		return
	}
	writeJSON(w, r, http.StatusOK, companyView(company))
}

func companyView(c *companies.Company) companyResponse {
	return companyResponse{
		ID:              c.ULID,
		Name:            c.Name,
		Website:         c.Website,
		Description:     c.Description,
		Industry:        c.Industry,
		LogoURL:         c.LogoURL,
		ContactEmail:    c.ContactEmail,
		ApprovalStatus:  string(c.ApprovalStatus),
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
	}
}
