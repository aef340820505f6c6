package moderation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/careerbridge/server/internal/api/pagination"
	"github.com/careerbridge/server/internal/audit"
	"github.com/careerbridge/server/internal/auth"
	"github.com/careerbridge/server/internal/domain/companies"
	"github.com/careerbridge/server/internal/domain/graduation"
	"github.com/careerbridge/server/internal/domain/opportunities"
	"github.com/careerbridge/server/internal/domain/users"
	"github.com/careerbridge/server/internal/domain/workflow"
	"github.com/careerbridge/server/internal/notify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeCompanyRepo implements CAS semantics with a mutex so concurrent
// approve/reject races behave like the store's conditional update.
type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*companies.Company
}

func newFakeCompanyRepo(items ...*companies.Company) *fakeCompanyRepo {
	repo := &fakeCompanyRepo{companies: make(map[string]*companies.Company)}
	for _, item := range items {
		repo.companies[item.ULID] = item
	}
	return repo
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*companies.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.companies {
		if company.ID == id {
			copied := *company
			return &copied, nil
		}
	}
	return nil, workflow.NotFound("fake.GetByID", "company not found")
}

func (f *fakeCompanyRepo) GetByULID(ctx context.Context, ulid string) (*companies.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.companies[ulid]
	if !ok {
		return nil, workflow.NotFound("fake.GetByULID", "company not found")
	}
	copied := *company
	return &copied, nil
}

func (f *fakeCompanyRepo) GetByOwner(ctx context.Context, ownerUserID string) (*companies.Company, error) {
	return nil, workflow.NotFound("fake.GetByOwner", "company not found")
}

func (f *fakeCompanyRepo) Create(ctx context.Context, params companies.RegisterParams) (*companies.Company, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCompanyRepo) UpdateProfile(ctx context.Context, id, ownerUserID string, params companies.ProfileParams) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeCompanyRepo) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.companies {
		if company.ID == id && company.ApprovalStatus == workflow.StatusPending {
			company.ApprovalStatus = workflow.StatusApproved
			company.ApprovedBy = &decidedBy
			company.ApprovedAt = &decidedAt
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCompanyRepo) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.companies {
		if company.ID == id && company.ApprovalStatus == workflow.StatusPending {
			company.ApprovalStatus = workflow.StatusRejected
			company.RejectionReason = reason
			company.ApprovedBy = nil
			company.ApprovedAt = nil
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, filters companies.Filters, page pagination.Page) (pagination.Result[companies.Company], error) {
	return pagination.Result[companies.Company]{}, nil
}

func (f *fakeCompanyRepo) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[companies.Company], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]companies.Company, 0)
	for _, company := range f.companies {
		if company.ApprovalStatus == workflow.StatusPending {
			items = append(items, *company)
		}
	}
	return pagination.NewResult(items, len(items), page), nil
}

type fakeGraduationRepo struct {
	mu       sync.Mutex
	requests map[string]*graduation.Request
}

func newFakeGraduationRepo(items ...*graduation.Request) *fakeGraduationRepo {
	repo := &fakeGraduationRepo{requests: make(map[string]*graduation.Request)}
	for _, item := range items {
		repo.requests[item.ULID] = item
	}
	return repo
}

func (f *fakeGraduationRepo) GetByID(ctx context.Context, id string) (*graduation.Request, error) {
	return nil, workflow.NotFound("fake.GetByID", "graduation request not found")
}

func (f *fakeGraduationRepo) GetByULID(ctx context.Context, ulid string) (*graduation.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[ulid]
	if !ok {
		return nil, workflow.NotFound("fake.GetByULID", "graduation request not found")
	}
	copied := *request
	return &copied, nil
}

func (f *fakeGraduationRepo) Create(ctx context.Context, params graduation.CreateParams) (*graduation.Request, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGraduationRepo) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.ID == id && request.Status == workflow.StatusPending {
			request.Status = workflow.StatusApproved
			request.DecidedBy = &decidedBy
			request.DecidedAt = &decidedAt
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGraduationRepo) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.ID == id && request.Status == workflow.StatusPending {
			request.Status = workflow.StatusRejected
			request.RejectionReason = reason
			request.DecidedBy = &decidedBy
			request.DecidedAt = &decidedAt
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGraduationRepo) ListForUser(ctx context.Context, userID string) ([]graduation.Request, error) {
	return nil, nil
}

func (f *fakeGraduationRepo) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[graduation.Request], error) {
	return pagination.Result[graduation.Request]{}, nil
}

type fakeOpportunityRepo struct {
	mu            sync.Mutex
	opportunities map[string]*opportunities.Opportunity
}

func newFakeOpportunityRepo(items ...*opportunities.Opportunity) *fakeOpportunityRepo {
	repo := &fakeOpportunityRepo{opportunities: make(map[string]*opportunities.Opportunity)}
	for _, item := range items {
		repo.opportunities[item.ULID] = item
	}
	return repo
}

func (f *fakeOpportunityRepo) GetByID(ctx context.Context, id string) (*opportunities.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, opportunity := range f.opportunities {
		if opportunity.ID == id {
			copied := *opportunity
			return &copied, nil
		}
	}
	return nil, workflow.NotFound("fake.GetByID", "opportunity not found")
}

func (f *fakeOpportunityRepo) GetByULID(ctx context.Context, ulid string) (*opportunities.Opportunity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	opportunity, ok := f.opportunities[ulid]
	if !ok {
		return nil, workflow.NotFound("fake.GetByULID", "opportunity not found")
	}
	copied := *opportunity
	return &copied, nil
}

func (f *fakeOpportunityRepo) Create(ctx context.Context, params opportunities.CreateParams) (*opportunities.Opportunity, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOpportunityRepo) SetLifecycle(ctx context.Context, id, companyID string, lifecycle opportunities.Lifecycle) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeOpportunityRepo) SetAvailability(ctx context.Context, id, companyID string, availability opportunities.Availability) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeOpportunityRepo) SetApproved(ctx context.Context, id, decidedBy string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, opportunity := range f.opportunities {
		if opportunity.ID == id && opportunity.ApprovalStatus == workflow.StatusPending {
			opportunity.ApprovalStatus = workflow.StatusApproved
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOpportunityRepo) SetRejected(ctx context.Context, id, decidedBy, reason string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, opportunity := range f.opportunities {
		if opportunity.ID == id && opportunity.ApprovalStatus == workflow.StatusPending {
			opportunity.ApprovalStatus = workflow.StatusRejected
			opportunity.RejectionReason = reason
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOpportunityRepo) ListPublic(ctx context.Context, filters opportunities.Filters, page pagination.Page) (pagination.Result[opportunities.Opportunity], error) {
	return pagination.Result[opportunities.Opportunity]{}, nil
}

func (f *fakeOpportunityRepo) ListPending(ctx context.Context, page pagination.Page) (pagination.Result[opportunities.Opportunity], error) {
	return pagination.Result[opportunities.Opportunity]{}, nil
}

type fakeUserRepo struct {
	mu          sync.Mutex
	promoted    map[string]users.GraduationFields
	promoteFail bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{promoted: make(map[string]users.GraduationFields)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return &users.User{ID: id, Email: id + "@example.com", Role: "student"}, nil
}

func (f *fakeUserRepo) GetByULID(ctx context.Context, ulid string) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) PromoteToGraduate(ctx context.Context, userID string, fields users.GraduationFields, changedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.promoteFail {
		return errors.New("user row locked")
	}
	f.promoted[userID] = fields
	return nil
}

type recordedEntry struct {
	entry audit.Entry
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []recordedEntry
	fail    bool
}

func (f *fakeAuditor) Record(ctx context.Context, entry audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("audit sink down")
	}
	f.entries = append(f.entries, recordedEntry{entry: entry})
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	fail bool
}

func (f *fakeNotifier) Send(ctx context.Context, notification notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("dispatcher down")
	}
	f.sent = append(f.sent, notification)
	return nil
}

type fixture struct {
	service       *Service
	companies     *fakeCompanyRepo
	opportunities *fakeOpportunityRepo
	graduation    *fakeGraduationRepo
	users         *fakeUserRepo
	auditor       *fakeAuditor
	notifier      *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		companies:     newFakeCompanyRepo(),
		opportunities: newFakeOpportunityRepo(),
		graduation:    newFakeGraduationRepo(),
		users:         newFakeUserRepo(),
		auditor:       &fakeAuditor{},
		notifier:      &fakeNotifier{},
	}
	f.service = NewService(Params{
		Companies:     f.companies,
		Opportunities: f.opportunities,
		Graduation:    f.graduation,
		Users:         f.users,
		Auditor:       f.auditor,
		Notifier:      f.notifier,
		Logger:        zerolog.Nop(),
	})
	return f
}

func admin() auth.Context {
	return auth.Context{UserID: "admin-1", Role: auth.RoleAdmin}
}

func pendingCompany() *companies.Company {
	return &companies.Company{
		ID:             "cmp-id-1",
		ULID:           "01HYX3KQW7ERTV9XNBM2P8QJZF",
		OwnerUserID:    "owner-1",
		Name:           "Acme Robotics",
		ApprovalStatus: workflow.StatusPending,
		CreatedAt:      time.Now().Add(-time.Hour),
	}
}

func pendingRequest() *graduation.Request {
	return &graduation.Request{
		ID:             "req-id-1",
		ULID:           "01HYX3KQW7ERTV9XNBM2P8QJZG",
		UserID:         "student-1",
		GraduationYear: 2026,
		DegreeTitle:    "BSc Computer Science",
		Major:          "Computer Science",
		FinalGPA:       3.6,
		Status:         workflow.StatusPending,
		RequestedAt:    time.Now().Add(-2 * time.Hour),
	}
}

func TestApproveCompany(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	f.companies.companies[company.ULID] = company

	outcome, err := f.service.Approve(context.Background(), admin(), workflow.EntityCompany, company.ULID)

	require.NoError(t, err)
	require.False(t, outcome.HasWarnings())
	require.Equal(t, workflow.StatusApproved, outcome.Value.Status)
	require.Equal(t, workflow.StatusApproved, company.ApprovalStatus)

	require.Len(t, f.auditor.entries, 1)
	require.Equal(t, audit.ActionApprove, f.auditor.entries[0].entry.Action)
	require.Equal(t, "admin-1", f.auditor.entries[0].entry.ActorID)

	require.Len(t, f.notifier.sent, 1)
	require.Equal(t, "owner-1", f.notifier.sent[0].UserID)
	require.Equal(t, notify.TypeCompanyApproved, f.notifier.sent[0].Type)
}

func pendingOpportunity() *opportunities.Opportunity {
	return &opportunities.Opportunity{
		ID:              "opp-id-1",
		ULID:            "01HYX3KQW7ERTV9XNBM2P8QJZH",
		CompanyID:       "cmp-id-1",
		Title:           "Backend internship",
		Type:            opportunities.TypeInternship,
		ApprovalStatus:  workflow.StatusPending,
		LifecycleStatus: opportunities.LifecycleActive,
		Availability:    opportunities.AvailabilityOpen,
		CreatedAt:       time.Now().Add(-time.Hour),
	}
}

func TestApproveOpportunityNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	company.ApprovalStatus = workflow.StatusApproved
	f.companies.companies[company.ULID] = company
	opportunity := pendingOpportunity()
	f.opportunities.opportunities[opportunity.ULID] = opportunity

	outcome, err := f.service.Approve(context.Background(), admin(), workflow.EntityOpportunity, opportunity.ULID)

	require.NoError(t, err)
	require.False(t, outcome.HasWarnings())
	require.Equal(t, workflow.StatusApproved, opportunity.ApprovalStatus)

	// The notification target is the owning company's user, resolved at
	// decision time.
	require.Len(t, f.notifier.sent, 1)
	require.Equal(t, "owner-1", f.notifier.sent[0].UserID)
	require.Equal(t, notify.TypeOpportunityApproved, f.notifier.sent[0].Type)
}

func TestRejectOpportunityRecordsReason(t *testing.T) {
	f := newFixture(t)
	opportunity := pendingOpportunity()
	f.opportunities.opportunities[opportunity.ULID] = opportunity

	reason := "posting duplicates an existing internship listing"
	_, err := f.service.Reject(context.Background(), admin(), workflow.EntityOpportunity, opportunity.ULID, reason)

	require.NoError(t, err)
	require.Equal(t, workflow.StatusRejected, opportunity.ApprovalStatus)
	require.Equal(t, reason, opportunity.RejectionReason)
}

func TestApproveRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	f.companies.companies[company.ULID] = company

	for _, role := range []auth.Role{auth.RoleStudent, auth.RoleGraduate, auth.RoleCompany} {
		_, err := f.service.Approve(context.Background(), auth.Context{UserID: "u", Role: role}, workflow.EntityCompany, company.ULID)
		require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err), "role %s", role)
	}
	require.Equal(t, workflow.StatusPending, company.ApprovalStatus)
}

func TestApproveUnknownEntity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Approve(context.Background(), admin(), workflow.EntityCompany, "01HYX3KQW7ERTV9XNBM2P8QJZZ")

	require.Equal(t, workflow.KindNotFound, workflow.KindOf(err))
}

func TestApproveAlreadyProcessed(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	company.ApprovalStatus = workflow.StatusRejected
	f.companies.companies[company.ULID] = company

	_, err := f.service.Approve(context.Background(), admin(), workflow.EntityCompany, company.ULID)

	require.Equal(t, workflow.KindInvalidState, workflow.KindOf(err))
	require.Contains(t, err.Error(), "already processed")
}

func TestConcurrentApproveRejectSingleWriterWins(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	f.companies.companies[company.ULID] = company

	reason := "incomplete registration documents provided"

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = f.service.Approve(context.Background(), admin(), workflow.EntityCompany, company.ULID)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = f.service.Reject(context.Background(), admin(), workflow.EntityCompany, company.ULID, reason)
	}()
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			require.Equal(t, workflow.KindInvalidState, workflow.KindOf(err))
			losses++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, losses)
	require.True(t, company.ApprovalStatus.Terminal())

	if results[0] == nil {
		require.Equal(t, workflow.StatusApproved, company.ApprovalStatus)
	} else {
		require.Equal(t, workflow.StatusRejected, company.ApprovalStatus)
	}
}

func TestRejectReasonBoundary(t *testing.T) {
	t.Run("19 characters fails validation", func(t *testing.T) {
		f := newFixture(t)
		company := pendingCompany()
		f.companies.companies[company.ULID] = company

		_, err := f.service.Reject(context.Background(), admin(), workflow.EntityCompany, company.ULID, "nineteen chars here")

		require.Equal(t, workflow.KindValidation, workflow.KindOf(err))
		require.Equal(t, workflow.StatusPending, company.ApprovalStatus)
	})

	t.Run("20 characters succeeds", func(t *testing.T) {
		f := newFixture(t)
		company := pendingCompany()
		f.companies.companies[company.ULID] = company

		reason := "twenty characters..."
		require.Len(t, reason, 20)

		outcome, err := f.service.Reject(context.Background(), admin(), workflow.EntityCompany, company.ULID, reason)

		require.NoError(t, err)
		require.Equal(t, workflow.StatusRejected, company.ApprovalStatus)
		require.Equal(t, reason, outcome.Value.Reason)
	})
}

func TestRejectClearsApprovalFields(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	by := "someone"
	at := time.Now()
	company.ApprovedBy = &by
	company.ApprovedAt = &at
	f.companies.companies[company.ULID] = company

	_, err := f.service.Reject(context.Background(), admin(), workflow.EntityCompany, company.ULID, "company website is unreachable and unverifiable")

	require.NoError(t, err)
	require.Nil(t, company.ApprovedBy)
	require.Nil(t, company.ApprovedAt)
	require.NotEmpty(t, company.RejectionReason)
}

func TestApproveGraduationPromotesUser(t *testing.T) {
	f := newFixture(t)
	request := pendingRequest()
	f.graduation.requests[request.ULID] = request

	outcome, err := f.service.Approve(context.Background(), admin(), workflow.EntityGraduationRequest, request.ULID)

	require.NoError(t, err)
	require.False(t, outcome.HasWarnings())
	require.Equal(t, workflow.StatusApproved, request.Status)

	fields, ok := f.users.promoted["student-1"]
	require.True(t, ok)
	require.Equal(t, 2026, fields.GraduationYear)
	require.Equal(t, "BSc Computer Science", fields.DegreeTitle)
	require.InDelta(t, 3.6, fields.FinalGPA, 0.001)

	require.Len(t, f.notifier.sent, 1)
	require.Equal(t, "student-1", f.notifier.sent[0].UserID)
}

func TestApproveGraduationPartialSuccess(t *testing.T) {
	f := newFixture(t)
	f.users.promoteFail = true
	request := pendingRequest()
	f.graduation.requests[request.ULID] = request

	outcome, err := f.service.Approve(context.Background(), admin(), workflow.EntityGraduationRequest, request.ULID)

	// The request is approved; the paired user update failed and that must
	// surface as a distinct partial-success error, not a silent success.
	require.Error(t, err)
	require.Equal(t, workflow.KindPartialApproval, workflow.KindOf(err))
	require.Equal(t, workflow.StatusApproved, request.Status)
	require.Equal(t, workflow.StatusApproved, outcome.Value.Status)

	require.Len(t, f.auditor.entries, 1)
	require.Equal(t, true, f.auditor.entries[0].entry.Details["partial"])
}

func TestSideEffectFailuresBecomeWarnings(t *testing.T) {
	f := newFixture(t)
	f.auditor.fail = true
	f.notifier.fail = true
	company := pendingCompany()
	f.companies.companies[company.ULID] = company

	outcome, err := f.service.Approve(context.Background(), admin(), workflow.EntityCompany, company.ULID)

	require.NoError(t, err, "side effect failure must not fail the operation")
	require.Equal(t, workflow.StatusApproved, company.ApprovalStatus)
	require.Len(t, outcome.Warnings, 2)
	require.Equal(t, "audit.Record", outcome.Warnings[0].Op)
	require.Equal(t, "notify.Send", outcome.Warnings[1].Op)
}

func TestExpiredDeadlineAbandonsSideEffects(t *testing.T) {
	f := newFixture(t)
	company := pendingCompany()
	f.companies.companies[company.ULID] = company

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The fakes ignore ctx, so the primary write still lands; side effects
	// must then be abandoned because the deadline has elapsed.
	outcome, err := f.service.Approve(ctx, admin(), workflow.EntityCompany, company.ULID)

	require.NoError(t, err)
	require.Equal(t, workflow.StatusApproved, company.ApprovalStatus)
	require.True(t, outcome.HasWarnings())
	require.Empty(t, f.auditor.entries)
	require.Empty(t, f.notifier.sent)
}

func TestListPendingSLAFlag(t *testing.T) {
	f := newFixture(t)
	fresh := pendingCompany()
	fresh.ULID = "01HYX3KQW7ERTV9XNBM2P8QJZH"
	fresh.CreatedAt = time.Now().Add(-time.Hour)
	stale := pendingCompany()
	stale.ID = "cmp-id-2"
	stale.CreatedAt = time.Now().Add(-72 * time.Hour)
	f.companies.companies[fresh.ULID] = fresh
	f.companies.companies[stale.ULID] = stale

	result, err := f.service.ListPending(context.Background(), admin(), workflow.EntityCompany, pagination.Page{})

	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	bySLA := make(map[string]bool, 2)
	for _, item := range result.Items {
		bySLA[item.EntityULID] = item.IsOverSLA
	}
	require.False(t, bySLA[fresh.ULID])
	require.True(t, bySLA[stale.ULID])
}

func TestListPendingRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListPending(context.Background(), auth.Context{UserID: "u", Role: auth.RoleStudent}, workflow.EntityCompany, pagination.Page{})

	require.Equal(t, workflow.KindUnauthorized, workflow.KindOf(err))
}
