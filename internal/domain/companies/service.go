package companies

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/ids"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/sanitize"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a pending company owned by the acting user. The company
// stays invisible to students until an admin approves it.
func (s *Service) Register(ctx context.Context, actor auth.Context, params RegisterParams) (*Company, error) {
	const op = "companies.Register"

	if err := actor.RequireRole(op, auth.RoleCompany); err != nil {
		return nil, err
	}
	params.Name = sanitize.Text(strings.TrimSpace(params.Name))
	if params.Name == "" {
		return nil, workflow.Validation(op, "company name is required")
	}
	params.Website = sanitize.Text(params.Website)
	params.Description = sanitize.HTML(params.Description)
	params.Industry = sanitize.Text(params.Industry)
	if existing, err := s.repo.GetByOwner(ctx, actor.UserID); err == nil && existing != nil {
		return nil, workflow.Duplicate(op, "user already owns a company")
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("%s: mint ulid: %w", op, err)
	}
	params.ULID = ulid
	params.OwnerUserID = actor.UserID

	company, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	return company, nil
}

// UpdateProfile lets an approved company edit its own display fields.
func (s *Service) UpdateProfile(ctx context.Context, actor auth.Context, companyULID string, params ProfileParams) (*Company, error) {
	const op = "companies.UpdateProfile"

	if err := actor.RequireRole(op, auth.RoleCompany); err != nil {
		return nil, err
	}

	company, err := s.repo.GetByULID(ctx, companyULID)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	if company.OwnerUserID != actor.UserID {
		return nil, workflow.Unauthorized(op, "not the owning company")
	}
	if company.ApprovalStatus != workflow.StatusApproved {
		return nil, workflow.InvalidState(op, "company is not approved")
	}

	params.Website = sanitize.TextPtr(params.Website)
	params.Description = sanitize.HTMLPtr(params.Description)
	params.Industry = sanitize.TextPtr(params.Industry)
	params.LogoURL = sanitize.TextPtr(params.LogoURL)

	matched, err := s.repo.UpdateProfile(ctx, company.ID, actor.UserID, params)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	if !matched {
		// The conditional predicate is the authority; the read above only
		// produces friendlier messages.
		return nil, workflow.InvalidState(op, "company is not editable")
	}
	return s.repo.GetByULID(ctx, companyULID)
}

func (s *Service) GetByULID(ctx context.Context, ulid string) (*Company, error) {
	return s.repo.GetByULID(ctx, ulid)
}

func ParseFilters(values url.Values) (Filters, pagination.Page, error) {
	const op = "companies.ParseFilters"
	filters := Filters{}
	page := pagination.Page{}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := workflow.ParseApprovalStatus(raw)
		if err != nil {
			return filters, page, workflow.Validation(op, "status must be pending, approved or rejected")
		}
		filters.Status = status
	}

	filters.Query = strings.TrimSpace(values.Get("q"))

	var err error
	page, err = ParsePage(values)
	if err != nil {
		return filters, page, err
	}
	return filters, page, nil
}

func ParsePage(values url.Values) (pagination.Page, error) {
	const op = "companies.ParsePage"
	page := pagination.Page{}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil || number < 1 {
			return page, workflow.Validation(op, "page must be a positive number")
		}
		page.Number = number
	}
	if raw := strings.TrimSpace(values.Get("pageSize")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > pagination.MaxPageSize {
			return page, workflow.Validation(op, fmt.Sprintf("pageSize must be between 1 and %d", pagination.MaxPageSize))
		}
		page.Size = size
	}
	return page.Normalize(), nil
}
