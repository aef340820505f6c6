package workflow

// EntityKind names the entities the approval state machine operates on.
type EntityKind string

const (
	EntityCompany           EntityKind = "company"
	EntityOpportunity       EntityKind = "opportunity"
	EntityGraduationRequest EntityKind = "graduation_request"
)

func ParseEntityKind(value string) (EntityKind, error) {
	switch EntityKind(value) {
	case EntityCompany, EntityOpportunity, EntityGraduationRequest:
		return EntityKind(value), nil
	default:
		return "", Validation("workflow.ParseEntityKind", "unknown entity kind: "+value)
	}
}

// Warning records a best-effort side effect that failed after the primary
// write was durable. Warnings ride on a successful outcome; they are never
// promoted to errors.
type Warning struct {
	Kind Kind
	Op   string
	Err  error
}

// Outcome pairs a primary result with the side-effect warnings collected
// after the primary write. Callers must inspect Warnings: a non-empty slice
// means the platform has follow-up work (an audit row or notification was
// lost) even though the state change succeeded.
type Outcome[T any] struct {
	Value    T
	Warnings []Warning
}

func (o *Outcome[T]) AddWarning(op string, err error) {
	if err == nil {
		return
	}
	o.Warnings = append(o.Warnings, Warning{Kind: KindSideEffect, Op: op, Err: err})
}

func (o *Outcome[T]) HasWarnings() bool { return len(o.Warnings) > 0 }
