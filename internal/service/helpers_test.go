package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository"
	"github.com/voterbowl/backend/internal/repository/dao"
	"github.com/voterbowl/backend/internal/service"
	"github.com/voterbowl/backend/internal/testutil"
	"github.com/voterbowl/backend/pkg/agcod"
)

// fakeVendor implements service.GiftCardVendor in-memory. It hands out
// one card per creation request id, mirroring the real vendor's
// idempotency contract. Mints and idempotent re-checks are counted
// separately so tests can assert "never minted twice" precisely.
type fakeVendor struct {
	mu sync.Mutex

	mintCalls  int
	checkCalls int
	requestIDs []string

	failWith error
}

func (v *fakeVendor) MakeRequestID(suffix string) string {
	return "Vbowl-" + suffix
}

func (v *fakeVendor) respond(creationRequestID string) (*agcod.CreateGiftCardResponse, error) {
	if v.failWith != nil {
		return nil, v.failWith
	}
	v.requestIDs = append(v.requestIDs, creationRequestID)

	// The claim code is a function of the request id, like the real
	// vendor: the same id always maps to the same card.
	return &agcod.CreateGiftCardResponse{
		CreationRequestID: creationRequestID,
		GcClaimCode:       "ABC123",
		GcID:              "gc-" + creationRequestID,
		Status:            agcod.StatusSuccess,
	}, nil
}

func (v *fakeVendor) CreateGiftCard(_ context.Context, _ int, creationRequestID, _ string) (*agcod.CreateGiftCardResponse, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mintCalls++

	return v.respond(creationRequestID)
}

func (v *fakeVendor) CheckGiftCard(_ context.Context, _ int, creationRequestID, _ string) (*agcod.CreateGiftCardResponse, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.checkCalls++

	return v.respond(creationRequestID)
}

type sentEmail struct {
	To       string
	Template string
	Data     map[string]any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, to string, template string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return fmt.Errorf("smtp is down")
	}

	m.sent = append(m.sent, sentEmail{To: to, Template: template, Data: data})

	return nil
}

func (m *fakeMailer) byTemplate(template string) []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []sentEmail
	for _, e := range m.sent {
		if e.Template == template {
			matched = append(matched, e)
		}
	}

	return matched
}

type env struct {
	schoolRepo  *repository.SchoolRepository
	contestRepo *repository.ContestRepository
	studentRepo *repository.StudentRepository
	entryRepo   *repository.ContestEntryRepository
	linkRepo    *repository.ValidationLinkRepository

	vendor *fakeVendor
	mailer *fakeMailer

	contests   *service.ContestService
	students   *service.StudentService
	prizes     *service.PrizeService
	validation *service.ValidationService
	check      *service.CheckService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.OpenTestDB(t)

	e := &env{
		schoolRepo:  repository.NewSchoolRepository(dao.NewSchoolDAO(db)),
		contestRepo: repository.NewContestRepository(dao.NewContestDAO(db)),
		studentRepo: repository.NewStudentRepository(dao.NewStudentDAO(db)),
		entryRepo:   repository.NewContestEntryRepository(dao.NewContestEntryDAO(db)),
		linkRepo:    repository.NewValidationLinkRepository(dao.NewValidationLinkDAO(db)),
		vendor:      &fakeVendor{},
		mailer:      &fakeMailer{},
	}

	logger := zap.NewNop()

	e.contests = service.NewContestService(e.contestRepo)
	e.students = service.NewStudentService(e.studentRepo)
	e.prizes = service.NewPrizeService(e.entryRepo, e.studentRepo, e.vendor, e.mailer, logger)
	e.validation = service.NewValidationService(e.linkRepo, e.studentRepo, e.schoolRepo, e.prizes, e.mailer, logger, "https://voterbowl.org")
	e.check = service.NewCheckService(e.schoolRepo, e.students, e.contests, e.prizes, e.validation)

	return e
}

func (e *env) seedSchool(t *testing.T) domain.School {
	t.Helper()

	school, err := e.schoolRepo.Create(context.Background(), domain.School{
		Name:          "Test University",
		Slug:          "test-university",
		ShortName:     "Test U",
		Mascot:        "Crabs",
		MailDomain:    "test.edu",
		MailTag:       "+",
		MailStripDots: true,
	})
	require.NoError(t, err)

	return school
}

func (e *env) seedContest(t *testing.T, schoolID uint, kind domain.ContestKind, inN, amount int, startAt, endAt time.Time) domain.Contest {
	t.Helper()

	contest, err := e.contestRepo.Create(context.Background(), domain.Contest{
		SchoolID: schoolID,
		Name:     "test contest",
		StartAt:  startAt,
		EndAt:    endAt,
		Kind:     kind,
		InN:      inN,
		Amount:   amount,
	})
	require.NoError(t, err)

	return contest
}

func (e *env) seedStudent(t *testing.T, school domain.School, email string) domain.Student {
	t.Helper()

	student, err := e.students.GetOrCreateStudent(context.Background(), school, email, "Sam", "Smith")
	require.NoError(t, err)

	return student
}
