package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/careerbridge/server/internal/audit"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/metrics"
	"github.com/careerbridge/server/internal/notify"
	"github.com/rs/zerolog"
)

// Auditor and Notifier are the side-effect sinks. Their failures become
// warnings on the outcome, never operation errors.
type Auditor interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type Notifier interface {
	Send(ctx context.Context, notification notify.Notification) error
}

// Service is the approval state machine for companies, opportunities and
// graduation requests. Every guarded transition is a single conditional
// update; zero rows affected means another admin got there first.
type Service struct {
	companies     companies.Repository
	opportunities opportunities.Repository
	graduation    graduation.Repository
	users         users.Repository
	auditor       Auditor
	notifier      Notifier
	sla           time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

type Params struct {
	Companies     companies.Repository
	Opportunities opportunities.Repository
	Graduation    graduation.Repository
	Users         users.Repository
	Auditor       Auditor
	Notifier      Notifier
	SLA           time.Duration
	Logger        zerolog.Logger
}

func NewService(params Params) *Service {
	sla := params.SLA
	if sla <= 0 {
		sla = 48 * time.Hour
	}
	return &Service{
		companies:     params.Companies,
		opportunities: params.Opportunities,
		graduation:    params.Graduation,
		users:         params.Users,
		auditor:       params.Auditor,
		notifier:      params.Notifier,
		sla:           sla,
		logger:        params.Logger.With().Str("component", "moderation").Logger(),
		now:           time.Now,
	}
}

// Decision is the primary result of an Approve or Reject.
type Decision struct {
	EntityKind workflow.EntityKind
	EntityULID string
	Status     workflow.ApprovalStatus
	Reason     string
	DecidedBy  string
	DecidedAt  time.Time
}

// Approve transitions a pending entity to approved. For graduation requests
// the referenced user is promoted in a paired write; if that write fails the
// request stays approved and the caller receives an
// ApprovedButLinkedUpdateFailed error so an operator can reconcile.
func (s *Service) Approve(ctx context.Context, actor auth.Context, kind workflow.EntityKind, ulid string) (workflow.Outcome[Decision], error) {
	const op = "moderation.Approve"
	var outcome workflow.Outcome[Decision]

	if err := actor.RequireRole(op, auth.RoleAdmin); err != nil {
		return outcome, err
	}

	decidedAt := s.now().UTC()
	decision := Decision{
		EntityKind: kind,
		EntityULID: ulid,
		Status:     workflow.StatusApproved,
		DecidedBy:  actor.UserID,
		DecidedAt:  decidedAt,
	}

	var (
		target     notify.Notification
		partialErr error
	)

	switch kind {
	case workflow.EntityCompany:
		company, err := s.companies.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.companies.SetApproved(ctx, company.ID, actor.UserID, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "company already processed by another admin")
		}
		target = notify.Notification{
			UserID:    company.OwnerUserID,
			Type:      notify.TypeCompanyApproved,
			Title:     "Your company has been approved",
			Body:      company.Name + " is now visible to students and may post opportunities.",
			EmailAlso: true,
		}

	case workflow.EntityOpportunity:
		opportunity, err := s.opportunities.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.opportunities.SetApproved(ctx, opportunity.ID, actor.UserID, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "opportunity already processed by another admin")
		}
		target = s.opportunityNotification(ctx, opportunity, notify.TypeOpportunityApproved,
			"Your opportunity has been approved",
			opportunity.Title+" is now publicly listed.")

	case workflow.EntityGraduationRequest:
		request, err := s.graduation.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.graduation.SetApproved(ctx, request.ID, actor.UserID, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "graduation request already processed by another admin")
		}

		// Paired write: the request is already approved, so a failure here
		// is partial success, not rollback.
		fields := users.GraduationFields{
			GraduationYear: request.GraduationYear,
			DegreeTitle:    request.DegreeTitle,
			Major:          request.Major,
			FinalGPA:       request.FinalGPA,
		}
		if err := s.users.PromoteToGraduate(ctx, request.UserID, fields, decidedAt); err != nil {
			metrics.PartialApprovals.Inc()
			s.logger.Error().Err(err).
				Str("request_ulid", ulid).
				Str("user_id", request.UserID).
				Msg("graduation approved but user promotion failed")
			partialErr = workflow.PartialApproval(op, "request approved but user promotion failed", err)
		}
		target = notify.Notification{
			UserID:    request.UserID,
			Type:      notify.TypeGraduationApproved,
			Title:     "Your graduation request has been approved",
			Body:      "Your profile has been updated to graduate status.",
			EmailAlso: true,
		}

	default:
		return outcome, workflow.Validation(op, "unknown entity kind")
	}

	metrics.ApprovalDecisions.WithLabelValues(string(kind), "approve").Inc()
	outcome.Value = decision

	s.sideEffects(ctx, &outcome, actor, audit.ActionApprove, kind, ulid, map[string]any{
		"status":  string(workflow.StatusApproved),
		"partial": partialErr != nil,
	}, target)

	return outcome, partialErr
}

// Reject transitions a pending entity to rejected. The reason is mandatory
// and is embedded in the audit record and the notification.
func (s *Service) Reject(ctx context.Context, actor auth.Context, kind workflow.EntityKind, ulid, reason string) (workflow.Outcome[Decision], error) {
	const op = "moderation.Reject"
	var outcome workflow.Outcome[Decision]

	if err := actor.RequireRole(op, auth.RoleAdmin); err != nil {
		return outcome, err
	}
	reason = normalizeReason(reason)
	if len([]rune(reason)) < workflow.MinRejectionReasonLen {
		return outcome, workflow.Validation(op, "rejection reason must be at least 20 characters")
	}

	decidedAt := s.now().UTC()
	decision := Decision{
		EntityKind: kind,
		EntityULID: ulid,
		Status:     workflow.StatusRejected,
		Reason:     reason,
		DecidedBy:  actor.UserID,
		DecidedAt:  decidedAt,
	}

	var target notify.Notification

	switch kind {
	case workflow.EntityCompany:
		company, err := s.companies.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.companies.SetRejected(ctx, company.ID, actor.UserID, reason, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "company already processed by another admin")
		}
		target = notify.Notification{
			UserID:    company.OwnerUserID,
			Type:      notify.TypeCompanyRejected,
			Title:     "Your company registration was rejected",
			Body:      reason,
			EmailAlso: true,
		}

	case workflow.EntityOpportunity:
		opportunity, err := s.opportunities.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.opportunities.SetRejected(ctx, opportunity.ID, actor.UserID, reason, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "opportunity already processed by another admin")
		}
		target = s.opportunityNotification(ctx, opportunity, notify.TypeOpportunityRejected,
			"Your opportunity was rejected", reason)

	case workflow.EntityGraduationRequest:
		request, err := s.graduation.GetByULID(ctx, ulid)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		matched, err := s.graduation.SetRejected(ctx, request.ID, actor.UserID, reason, decidedAt)
		if err != nil {
			return outcome, workflow.Wrap(op, err)
		}
		if !matched {
			return outcome, workflow.InvalidState(op, "graduation request already processed by another admin")
		}
		target = notify.Notification{
			UserID:    request.UserID,
			Type:      notify.TypeGraduationRejected,
			Title:     "Your graduation request was rejected",
			Body:      reason,
			EmailAlso: true,
		}

	default:
		return outcome, workflow.Validation(op, "unknown entity kind")
	}

	metrics.ApprovalDecisions.WithLabelValues(string(kind), "reject").Inc()
	outcome.Value = decision

	s.sideEffects(ctx, &outcome, actor, audit.ActionReject, kind, ulid, map[string]any{
		"status": string(workflow.StatusRejected),
		"reason": reason,
	}, target)

	return outcome, nil
}

// sideEffects runs the audit append and notification dispatch after the
// primary write is durable. The two are isolated: one failing does not stop
// the other. A caller deadline that expired after the primary write abandons
// both without retrying.
func (s *Service) sideEffects(ctx context.Context, outcome *workflow.Outcome[Decision], actor auth.Context, action string, kind workflow.EntityKind, ulid string, details map[string]any, target notify.Notification) {
	if err := ctx.Err(); err != nil {
		outcome.AddWarning("moderation.sideEffects", err)
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("entity_ulid", ulid).
			Msg("deadline elapsed after primary write; side effects abandoned")
		return
	}

	if s.auditor != nil {
		if err := s.auditor.Record(ctx, audit.Entry{
			ActorID:    actor.UserID,
			Action:     action,
			EntityKind: string(kind),
			EntityID:   ulid,
			Details:    details,
		}); err != nil {
			outcome.AddWarning("audit.Record", err)
		}
	}

	if s.notifier != nil && target.UserID != "" {
		if err := s.notifier.Send(ctx, target); err != nil {
			outcome.AddWarning("notify.Send", err)
		}
	}
}

// opportunityNotification resolves the owning company's user as the target.
// A failed owner lookup leaves the target empty; sideEffects skips it and
// the miss shows up as a dropped notification, not an operation failure.
func (s *Service) opportunityNotification(ctx context.Context, opportunity *opportunities.Opportunity, notifType, title, body string) notify.Notification {
	company, err := s.companies.GetByID(ctx, opportunity.CompanyID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("company_id", opportunity.CompanyID).
			Msg("owner lookup for notification failed")
		return notify.Notification{}
	}
	return notify.Notification{
		UserID:    company.OwnerUserID,
		Type:      notifType,
		Title:     title,
		Body:      body,
		EmailAlso: true,
	}
}

func normalizeReason(reason string) string {
	return strings.TrimSpace(reason)
}
