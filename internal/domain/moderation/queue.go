package moderation

import (
	"context"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/workflow"
)

// PendingItem is one row in an admin approval queue. IsOverSLA is derived
// at read time, never stored.
type PendingItem struct {
	EntityKind  workflow.EntityKind
	EntityULID  string
	Title       string
	SubmittedBy string
	SubmittedAt time.Time
	IsOverSLA   bool
}

// ListPending returns the approval queue for one entity kind, oldest
// submission first so stale requests surface before fresh ones.
func (s *Service) ListPending(ctx context.Context, actor auth.Context, kind workflow.EntityKind, page pagination.Page) (pagination.Result[PendingItem], error) {
	const op = "moderation.ListPending"
	var empty pagination.Result[PendingItem]

	if err := actor.RequireRole(op, auth.RoleAdmin); err != nil {
		return empty, err
	}

	now := s.now().UTC()

	switch kind {
	case workflow.EntityCompany:
		result, err := s.companies.ListPending(ctx, page)
		if err != nil {
			return empty, workflow.Wrap(op, err)
		}
		items := make([]PendingItem, 0, len(result.Items))
		for _, company := range result.Items {
			items = append(items, PendingItem{
				EntityKind:  kind,
				EntityULID:  company.ULID,
				Title:       company.Name,
				SubmittedBy: company.OwnerUserID,
				SubmittedAt: company.CreatedAt,
				IsOverSLA:   now.Sub(company.CreatedAt) > s.sla,
			})
		}
		return repage(items, result), nil

	case workflow.EntityOpportunity:
		result, err := s.opportunities.ListPending(ctx, page)
		if err != nil {
			return empty, workflow.Wrap(op, err)
		}
		items := make([]PendingItem, 0, len(result.Items))
		for _, opportunity := range result.Items {
			items = append(items, PendingItem{
				EntityKind:  kind,
				EntityULID:  opportunity.ULID,
				Title:       opportunity.Title,
				SubmittedBy: opportunity.CompanyID,
				SubmittedAt: opportunity.CreatedAt,
				IsOverSLA:   now.Sub(opportunity.CreatedAt) > s.sla,
			})
		}
		return repage(items, result), nil

	case workflow.EntityGraduationRequest:
		result, err := s.graduation.ListPending(ctx, page)
		if err != nil {
			return empty, workflow.Wrap(op, err)
		}
		items := make([]PendingItem, 0, len(result.Items))
		for _, request := range result.Items {
			items = append(items, PendingItem{
				EntityKind:  kind,
				EntityULID:  request.ULID,
				Title:       request.DegreeTitle,
				SubmittedBy: request.UserID,
				SubmittedAt: request.RequestedAt,
				IsOverSLA:   now.Sub(request.RequestedAt) > s.sla,
			})
		}
		return repage(items, result), nil

	default:
		return empty, workflow.Validation(op, "unknown entity kind")
	}
}

func repage[T any](items []PendingItem, source pagination.Result[T]) pagination.Result[PendingItem] {
	return pagination.Result[PendingItem]{
		Items:      items,
		Total:      source.Total,
		TotalPages: source.TotalPages,
		Page:       source.Page,
		PageSize:   source.PageSize,
	}
}
