package workflow

// ApprovalStatus is the admin moderation state shared by companies,
// opportunities and graduation requests. It is independent of any
// company-controlled lifecycle field.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func ParseApprovalStatus(value string) (ApprovalStatus, error) {
	switch ApprovalStatus(value) {
	case StatusPending, StatusApproved, StatusRejected:
		return ApprovalStatus(value), nil
	default:
		return "", Validation("workflow.ParseApprovalStatus", "unknown approval status: "+value)
	}
}

// MinRejectionReasonLen is the minimum length of a rejection reason, in
// runes.
const MinRejectionReasonLen = 20
