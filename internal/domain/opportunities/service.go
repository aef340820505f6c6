package opportunities

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/ids"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/sanitize"
)

type Service struct {
	repo      Repository
	companies companies.Repository
}

func NewService(repo Repository, companyRepo companies.Repository) *Service {
	return &Service{repo: repo, companies: companyRepo}
}

// Create posts a new opportunity for the acting company. Only approved
// companies may post; the new posting starts pending moderation, active and
// open.
func (s *Service) Create(ctx context.Context, actor auth.Context, params CreateParams) (*Opportunity, error) {
	const op = "opportunities.Create"

	if err := actor.RequireRole(op, auth.RoleCompany); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	if company.ApprovalStatus != workflow.StatusApproved {
		return nil, workflow.InvalidState(op, "company is not approved")
	}

	params.Title = sanitize.Text(strings.TrimSpace(params.Title))
	if params.Title == "" {
		return nil, workflow.Validation(op, "title is required")
	}
	if _, err := ParseType(string(params.Type)); err != nil {
		return nil, err
	}
	params.Description = sanitize.HTML(params.Description)
	params.Location = sanitize.Text(params.Location)

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("%s: mint ulid: %w", op, err)
	}
	params.ULID = ulid
	params.CompanyID = company.ID

	created, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	return created, nil
}

// SetLifecycle moves a posting between active/closed/archived. Owning,
// approved company only.
func (s *Service) SetLifecycle(ctx context.Context, actor auth.Context, opportunityULID string, lifecycle Lifecycle) error {
	const op = "opportunities.SetLifecycle"
	return s.ownerWrite(ctx, actor, op, opportunityULID, func(id, companyID string) (bool, error) {
		return s.repo.SetLifecycle(ctx, id, companyID, lifecycle)
	})
}

// SetAvailability flips the open/closed switch. Owning, approved company only.
func (s *Service) SetAvailability(ctx context.Context, actor auth.Context, opportunityULID string, availability Availability) error {
	const op = "opportunities.SetAvailability"
	return s.ownerWrite(ctx, actor, op, opportunityULID, func(id, companyID string) (bool, error) {
		return s.repo.SetAvailability(ctx, id, companyID, availability)
	})
}

func (s *Service) ownerWrite(ctx context.Context, actor auth.Context, op, opportunityULID string, write func(id, companyID string) (bool, error)) error {
	if err := actor.RequireRole(op, auth.RoleCompany); err != nil {
		return err
	}

	company, err := s.companies.GetByOwner(ctx, actor.UserID)
	if err != nil {
		return workflow.Wrap(op, err)
	}
	if company.ApprovalStatus != workflow.StatusApproved {
		return workflow.InvalidState(op, "company is not approved")
	}

	opportunity, err := s.repo.GetByULID(ctx, opportunityULID)
	if err != nil {
		return workflow.Wrap(op, err)
	}
	if opportunity.CompanyID != company.ID {
		return workflow.Unauthorized(op, "not the owning company")
	}

	matched, err := write(opportunity.ID, company.ID)
	if err != nil {
		return workflow.Wrap(op, err)
	}
	if !matched {
		return workflow.InvalidState(op, "opportunity not updatable")
	}
	return nil
}

func (s *Service) GetByULID(ctx context.Context, ulid string) (*Opportunity, error) {
	return s.repo.GetByULID(ctx, ulid)
}

// ListPublic is the student-facing browse view: approved and active only.
func (s *Service) ListPublic(ctx context.Context, filters Filters, page pagination.Page) (pagination.Result[Opportunity], error) {
	return s.repo.ListPublic(ctx, filters, page)
}

func ParseFilters(values url.Values) (Filters, pagination.Page, error) {
	const op = "opportunities.ParseFilters"
	filters := Filters{}

	if raw := strings.TrimSpace(values.Get("type")); raw != "" {
		parsed, err := ParseType(raw)
		if err != nil {
			return filters, pagination.Page{}, workflow.Validation(op, "type must be internship, thesis or job")
		}
		filters.Type = parsed
	}
	filters.Query = strings.TrimSpace(values.Get("q"))

	page, err := companies.ParsePage(values)
	if err != nil {
		return filters, page, err
	}
	return filters, page, nil
}
