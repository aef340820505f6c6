package graduation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/ids"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/go-playground/validator/v10"
)

// SubmitInput is the student-supplied payload for a graduation request.
type SubmitInput struct {
	GraduationYear int     `json:"graduation_year" validate:"required,gte=1950,lte=2100"`
	DegreeTitle    string  `json:"degree_title" validate:"required,max=200"`
	Major          string  `json:"major" validate:"required,max=200"`
	ThesisTitle    string  `json:"thesis_title" validate:"max=300"`
	FinalGPA       float64 `json:"final_gpa" validate:"gte=0,lte=4.33"`
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Submit files a graduation request for the acting student. A user can have
// at most one pending request; resubmission after a rejection is allowed.
func (s *Service) Submit(ctx context.Context, actor auth.Context, input SubmitInput) (*Request, error) {
	const op = "graduation.Submit"

	if err := actor.RequireRole(op, auth.RoleStudent); err != nil {
		return nil, err
	}

	input.DegreeTitle = strings.TrimSpace(input.DegreeTitle)
	input.Major = strings.TrimSpace(input.Major)
	input.ThesisTitle = strings.TrimSpace(input.ThesisTitle)

	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		message := "invalid graduation request"
		if ok := AsValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			message = fmt.Sprintf("invalid %s", strings.ToLower(fieldErrs[0].Field()))
		}
		return nil, workflow.Validation(op, message)
	}

	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("%s: mint ulid: %w", op, err)
	}

	request, err := s.repo.Create(ctx, CreateParams{
		ULID:           ulid,
		UserID:         actor.UserID,
		GraduationYear: input.GraduationYear,
		DegreeTitle:    input.DegreeTitle,
		Major:          input.Major,
		ThesisTitle:    input.ThesisTitle,
		FinalGPA:       input.FinalGPA,
	})
	if err != nil {
		if workflow.KindOf(err) == workflow.KindDuplicate {
			return nil, workflow.Duplicate(op, "a pending graduation request already exists")
		}
		return nil, workflow.Wrap(op, err)
	}
	return request, nil
}

func (s *Service) ListForUser(ctx context.Context, actor auth.Context) ([]Request, error) {
	const op = "graduation.ListForUser"
	if err := actor.RequireRole(op, auth.RoleStudent, auth.RoleGraduate); err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, actor.UserID)
}

// AsValidationErrors wraps errors.As so the caller does not need to import
// the validator package for one assertion.
func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
