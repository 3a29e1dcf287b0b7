package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository"
)

var ErrSchoolNotFound = repository.ErrSchoolNotFound

// CheckResult is the outcome of finishing a voter-registration check.
type CheckResult struct {
	School  domain.School
	Student domain.Student

	// Contest and Entry are nil when the school has no contest running.
	Contest *domain.Contest
	Entry   *domain.ContestEntry

	// IsNewEntry is false when the student had already entered the
	// contest; the stored outcome is returned unchanged.
	IsNewEntry bool
}

type CheckService struct {
	schoolRepo SchoolRepository
	students   *StudentService
	contests   *ContestService
	prizes     *PrizeService
	validation *ValidationService
}

func NewCheckService(
	schoolRepo SchoolRepository,
	students *StudentService,
	contests *ContestService,
	prizes *PrizeService,
	validation *ValidationService,
) *CheckService {
	return &CheckService{
		schoolRepo: schoolRepo,
		students:   students,
		contests:   contests,
		prizes:     prizes,
		validation: validation,
	}
}

func (s *CheckService) GetSchool(ctx context.Context, slug string) (domain.School, error) {
	school, err := s.schoolRepo.FindBySlug(ctx, slug)
	if err != nil {
		return domain.School{}, fmt.Errorf("s.schoolRepo.FindBySlug -> %w", err)
	}

	return school, nil
}

// FinishCheck runs the whole post-check flow: resolve the student by
// dedup hash, enter them in the school's current contest when one is
// running, and email a validation link. The flow is safe to repeat;
// double-submitting the form never re-rolls an entry or mints a
// second prize.
func (s *CheckService) FinishCheck(ctx context.Context, schoolSlug, email, firstName, lastName string, now time.Time) (CheckResult, error) {
	school, err := s.schoolRepo.FindBySlug(ctx, schoolSlug)
	if err != nil {
		return CheckResult{}, fmt.Errorf("s.schoolRepo.FindBySlug -> %w", err)
	}

	student, err := s.students.GetOrCreateStudent(ctx, school, email, firstName, lastName)
	if err != nil {
		return CheckResult{}, fmt.Errorf("s.students.GetOrCreateStudent -> %w", err)
	}

	result := CheckResult{
		School:  school,
		Student: student,
	}

	contest, err := s.contests.CurrentContest(ctx, school.ID, now)
	if err != nil {
		return CheckResult{}, fmt.Errorf("s.contests.CurrentContest -> %w", err)
	}

	if contest != nil {
		entry, isNew, err := s.prizes.EnterContest(ctx, student, *contest, now)
		if err != nil {
			return CheckResult{}, fmt.Errorf("s.prizes.EnterContest -> %w", err)
		}

		result.Contest = contest
		result.Entry = &entry
		result.IsNewEntry = isNew
	}

	// A link goes out even for already-validated students: winners need
	// it to reach their claim code, and the address on the form may be
	// one the student has not proven yet.
	_, err = s.validation.IssueLink(ctx, school, student, email, result.Entry)
	if err != nil {
		return CheckResult{}, fmt.Errorf("s.validation.IssueLink -> %w", err)
	}

	return result, nil
}
