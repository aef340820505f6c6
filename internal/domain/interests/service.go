package interests

import (
	"context"
	"strings"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/metrics"
	"github.com/careerbridge/server/internal/notify"
	"github.com/rs/zerolog"
)

// Notifier is the optional company-side fan-out on a new declaration.
type Notifier interface {
	Send(ctx context.Context, notification notify.Notification) error
}

type Service struct {
	repo          Repository
	opportunities opportunities.Repository
	companies     companies.Repository
	notifier      Notifier
	logger        zerolog.Logger
	now           func() time.Time
}

func NewService(repo Repository, opportunityRepo opportunities.Repository, companyRepo companies.Repository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		opportunities: opportunityRepo,
		companies:     companyRepo,
		notifier:      notifier,
		logger:        logger.With().Str("component", "interests").Logger(),
		now:           time.Now,
	}
}

// engagementGate admits the roles CanDeclareInterest names. Reads go
// through the same gate so a company token cannot enumerate the student
// surface.
func engagementGate(op string, actor auth.Context) error {
	if actor.IsZero() {
		return workflow.Unauthorized(op, "no authenticated actor")
	}
	if !auth.CanDeclareInterest(actor.Role) {
		return workflow.Unauthorized(op, "actor role "+string(actor.Role)+" is not permitted")
	}
	return nil
}

// Declare records the actor's interest in an opportunity. The gate is the
// eligibility predicate only; approval status is irrelevant here. A second
// declaration for the same pair returns Duplicate and is never logged as a
// system error.
func (s *Service) Declare(ctx context.Context, actor auth.Context, opportunityULID string) error {
	const op = "interests.Declare"

	if err := engagementGate(op, actor); err != nil {
		return err
	}

	opportunity, err := s.opportunities.GetByULID(ctx, opportunityULID)
	if err != nil {
		return workflow.Wrap(op, err)
	}
	if !opportunity.InterestEligible() {
		metrics.InterestDeclarations.WithLabelValues("not_eligible").Inc()
		return workflow.NotEligible(op, "this posting is not currently accepting interest")
	}

	if err := s.repo.Insert(ctx, actor.UserID, opportunity.ID, s.now().UTC()); err != nil {
		if workflow.KindOf(err) == workflow.KindDuplicate {
			metrics.InterestDeclarations.WithLabelValues("duplicate").Inc()
			return workflow.Duplicate(op, "interest already declared")
		}
		return workflow.Wrap(op, err)
	}
	metrics.InterestDeclarations.WithLabelValues("created").Inc()

	// Company-side notification is best-effort and never blocks or fails
	// the declaration.
	if s.notifier != nil {
		notification := s.companyNotification(ctx, opportunity)
		if notification.UserID != "" {
			if err := s.notifier.Send(ctx, notification); err != nil {
				s.logger.Warn().Err(err).
					Str("opportunity_ulid", opportunityULID).
					Msg("interest notification failed")
			}
		}
	}
	return nil
}

// Withdraw removes the actor's interest. Withdrawal is gated on the same
// eligibility predicate as Declare: interest on a closed posting is kept
// for reporting and cannot be removed. Deleting an absent row succeeds, so
// a double withdraw is a no-op, not an error.
func (s *Service) Withdraw(ctx context.Context, actor auth.Context, opportunityULID string) error {
	const op = "interests.Withdraw"

	if err := engagementGate(op, actor); err != nil {
		return err
	}

	opportunity, err := s.opportunities.GetByULID(ctx, opportunityULID)
	if err != nil {
		return workflow.Wrap(op, err)
	}
	if !opportunity.InterestEligible() {
		return workflow.NotEligible(op, "this posting is no longer accepting changes to interest")
	}

	if err := s.repo.Delete(ctx, actor.UserID, opportunity.ID); err != nil {
		return workflow.Wrap(op, err)
	}
	return nil
}

func (s *Service) IsInterested(ctx context.Context, actor auth.Context, opportunityULID string) (bool, error) {
	const op = "interests.IsInterested"

	if err := engagementGate(op, actor); err != nil {
		return false, err
	}
	opportunity, err := s.opportunities.GetByULID(ctx, opportunityULID)
	if err != nil {
		return false, workflow.Wrap(op, err)
	}
	exists, err := s.repo.Exists(ctx, actor.UserID, opportunity.ID)
	if err != nil {
		return false, workflow.Wrap(op, err)
	}
	return exists, nil
}

// BatchIsInterested hydrates listing views without an N+1 query per card.
// Input ids are opportunity row ids; the result is the interested subset.
func (s *Service) BatchIsInterested(ctx context.Context, actor auth.Context, opportunityIDs []string) (map[string]bool, error) {
	const op = "interests.BatchIsInterested"

	if err := engagementGate(op, actor); err != nil {
		return nil, err
	}
	if len(opportunityIDs) == 0 {
		return map[string]bool{}, nil
	}

	existing, err := s.repo.ExistingOf(ctx, actor.UserID, opportunityIDs)
	if err != nil {
		return nil, workflow.Wrap(op, err)
	}
	interested := make(map[string]bool, len(existing))
	for _, id := range existing {
		interested[id] = true
	}
	return interested, nil
}

// ListMyInterests returns the actor's interests joined with opportunity and
// company, newest declaration first. When the store cannot push the text
// filter through the join, the page window is post-filtered in memory and
// the result is flagged; Total and TotalPages then reflect the pre-filter
// counts.
func (s *Service) ListMyInterests(ctx context.Context, actor auth.Context, filters Filters, page pagination.Page) (ListResult, error) {
	const op = "interests.ListMyInterests"

	if err := engagementGate(op, actor); err != nil {
		return ListResult{}, err
	}

	query := strings.TrimSpace(filters.Query)
	pushText := s.repo.CanFilterText() || query == ""

	repoFilters := filters
	if !pushText {
		repoFilters.Query = ""
	}

	result, err := s.repo.ListForUser(ctx, actor.UserID, repoFilters, page)
	if err != nil {
		return ListResult{}, workflow.Wrap(op, err)
	}

	listResult := ListResult{Result: result}
	if !pushText {
		filtered := make([]InterestedOpportunity, 0, len(result.Items))
		needle := strings.ToLower(query)
		for _, item := range result.Items {
			title := strings.ToLower(item.Opportunity.Title)
			description := strings.ToLower(item.Opportunity.Description)
			if strings.Contains(title, needle) || strings.Contains(description, needle) {
				filtered = append(filtered, item)
			}
		}
		listResult.Items = filtered
		listResult.FilteredInMemory = true
	}
	return listResult, nil
}

func (s *Service) companyNotification(ctx context.Context, opportunity *opportunities.Opportunity) notify.Notification {
	if s.companies == nil {
		return notify.Notification{}
	}
	company, err := s.companies.GetByID(ctx, opportunity.CompanyID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("company_id", opportunity.CompanyID).
			Msg("owner lookup for interest notification failed")
		return notify.Notification{}
	}
	return notify.Notification{
		UserID:  company.OwnerUserID,
		Type:    notify.TypeNewInterest,
		Title:   "New interest in " + opportunity.Title,
		Body:    "A candidate expressed interest in your posting.",
		Payload: map[string]any{"opportunity_ulid": opportunity.ULID},
	}
}
