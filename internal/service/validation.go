package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository"
	"github.com/voterbowl/backend/pkg/mailer"
	"github.com/voterbowl/backend/pkg/random"
)

var (
	ErrLinkNotFound = repository.ErrLinkNotFound
	ErrWrongSchool  = errors.New("validation link belongs to another school")
)

// linkTokenLength matches the length of tokens in historical validation
// emails still sitting in inboxes.
const linkTokenLength = 12

type ValidationLinkRepository interface {
	Create(ctx context.Context, link domain.EmailValidationLink) (domain.EmailValidationLink, error)
	FindByToken(ctx context.Context, token string) (domain.EmailValidationLink, error)
	Consume(ctx context.Context, id uint, now time.Time) (bool, error)
}

type SchoolRepository interface {
	Create(ctx context.Context, school domain.School) (domain.School, error)
	FindByID(ctx context.Context, id uint) (domain.School, error)
	FindBySlug(ctx context.Context, slug string) (domain.School, error)
}

// ValidationOutcome is everything the validation landing page needs to
// render after a link is consumed.
type ValidationOutcome struct {
	Student domain.Student
	School  domain.School

	// Entry is nil when the link was issued outside a contest flow.
	Entry *domain.ContestEntry

	// ClaimCode is non-empty only for a winning entry whose gift card
	// has been issued.
	ClaimCode string
}

type ValidationService struct {
	linkRepo    ValidationLinkRepository
	studentRepo StudentRepository
	schoolRepo  SchoolRepository
	prizes      *PrizeService
	mailer      mailer.Mailer
	logger      *zap.Logger
	baseURL     string
}

func NewValidationService(
	linkRepo ValidationLinkRepository,
	studentRepo StudentRepository,
	schoolRepo SchoolRepository,
	prizes *PrizeService,
	m mailer.Mailer,
	logger *zap.Logger,
	baseURL string,
) *ValidationService {
	return &ValidationService{
		linkRepo:    linkRepo,
		studentRepo: studentRepo,
		schoolRepo:  schoolRepo,
		prizes:      prizes,
		mailer:      m,
		logger:      logger,
		baseURL:     baseURL,
	}
}

// IssueLink creates a fresh validation link for the address and emails
// it. A new link is minted on every call; old links stay valid until
// consumed. The entry, when present, ties the link to a contest so that
// consuming it can release the prize.
//
// Email delivery failure is logged but does not invalidate the link.
func (s *ValidationService) IssueLink(ctx context.Context, school domain.School, student domain.Student, email string, entry *domain.ContestEntry) (domain.EmailValidationLink, error) {
	link := domain.EmailValidationLink{
		StudentID: student.ID,
		Email:     email,
		Token:     random.Token(linkTokenLength),
	}
	if entry != nil {
		link.ContestEntryID = &entry.ID
	}

	created, err := s.linkRepo.Create(ctx, link)
	if err != nil {
		return domain.EmailValidationLink{}, fmt.Errorf("s.linkRepo.Create -> %w", err)
	}

	isWinner := entry != nil && entry.IsWinner()
	buttonText := "Validate my email"
	if isWinner {
		buttonText = "Get my $" + strconv.Itoa(entry.AmountWon) + " gift card"
	}

	err = s.mailer.Send(ctx, email, mailer.TemplateValidate, map[string]any{
		"FirstName":  student.FirstName,
		"SchoolName": school.Name,
		"IsWinner":   isWinner,
		"LinkURL":    s.baseURL + created.RelativeURL(school.Slug),
		"ButtonText": buttonText,
	})
	if err != nil {
		s.logger.Error("failed to send validation email",
			zap.Uint("student_id", student.ID),
			zap.Uint("link_id", created.ID),
			zap.Error(err),
		)
	}

	return created, nil
}

// Consume marks the link's address validated and, for contest-bound
// links, runs prize issuance. Revisits are welcome: consumption is
// recorded once, and every visit re-renders the same outcome.
//
// The slug in the visited URL must match the school that owns the link;
// a link pasted under another school's path is rejected.
func (s *ValidationService) Consume(ctx context.Context, token, schoolSlug string, now time.Time) (ValidationOutcome, error) {
	link, err := s.linkRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return ValidationOutcome{}, ErrLinkNotFound
		}

		return ValidationOutcome{}, fmt.Errorf("s.linkRepo.FindByToken -> %w", err)
	}

	student, err := s.studentRepo.FindByID(ctx, link.StudentID)
	if err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	school, err := s.schoolRepo.FindByID(ctx, student.SchoolID)
	if err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.schoolRepo.FindByID -> %w", err)
	}
	if school.Slug != schoolSlug {
		return ValidationOutcome{}, ErrWrongSchool
	}

	if _, err := s.linkRepo.Consume(ctx, link.ID, now); err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.linkRepo.Consume -> %w", err)
	}

	student, err = s.studentRepo.MarkValidated(ctx, student.ID, link.Email, now)
	if err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.studentRepo.MarkValidated -> %w", err)
	}

	outcome := ValidationOutcome{
		Student: student,
		School:  school,
	}

	if link.ContestEntryID == nil {
		return outcome, nil
	}

	entry, err := s.prizes.entryRepo.FindByID(ctx, *link.ContestEntryID)
	if err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.prizes.entryRepo.FindByID -> %w", err)
	}

	entry, claimCode, err := s.prizes.GetOrIssuePrize(ctx, entry)
	if err != nil {
		return ValidationOutcome{}, fmt.Errorf("s.prizes.GetOrIssuePrize -> %w", err)
	}

	outcome.Entry = &entry
	outcome.ClaimCode = claimCode

	return outcome, nil
}
