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
	"github.com/voterbowl/backend/pkg/agcod"
	"github.com/voterbowl/backend/pkg/mailer"
	"github.com/voterbowl/backend/pkg/random"
)

var (
	ErrNotEligible        = errors.New("student does not belong to the contest's school")
	ErrContestNotStarted  = errors.New("contest has not started yet")
	ErrEntryNotFound      = repository.ErrEntryNotFound
	ErrPrizeAlreadyIssued = repository.ErrPrizeAlreadyIssued
)

// mintTokenLength is the length of the per-entry token that derives the
// vendor creation request ID. The token is fixed at entry creation, so
// every issuance attempt for the same entry presents the same request ID
// to the vendor.
const mintTokenLength = 32

type ContestEntryRepository interface {
	Create(ctx context.Context, entry domain.ContestEntry) (domain.ContestEntry, error)
	FindByID(ctx context.Context, id uint) (domain.ContestEntry, error)
	FindByStudentAndContest(ctx context.Context, studentID, contestID uint) (domain.ContestEntry, error)
	SetCreationRequestID(ctx context.Context, id uint, creationRequestID string) error
}

// GiftCardVendor is the slice of the gift-code vendor the prize flow
// needs. *agcod.Client satisfies it.
type GiftCardVendor interface {
	MakeRequestID(suffix string) string
	CreateGiftCard(ctx context.Context, amount int, creationRequestID, currencyCode string) (*agcod.CreateGiftCardResponse, error)
	CheckGiftCard(ctx context.Context, amount int, creationRequestID, currencyCode string) (*agcod.CreateGiftCardResponse, error)
}

type PrizeService struct {
	entryRepo   ContestEntryRepository
	studentRepo StudentRepository
	vendor      GiftCardVendor
	mailer      mailer.Mailer
	logger      *zap.Logger
}

func NewPrizeService(entryRepo ContestEntryRepository, studentRepo StudentRepository, vendor GiftCardVendor, m mailer.Mailer, logger *zap.Logger) *PrizeService {
	return &PrizeService{
		entryRepo:   entryRepo,
		studentRepo: studentRepo,
		vendor:      vendor,
		mailer:      m,
		logger:      logger,
	}
}

// EnterContest records the student's entry in a contest, rolling the die
// exactly once. If the student already entered, the committed entry is
// returned unchanged with isNew=false; the outcome is never recomputed.
//
// Entries into a contest that has not started yet are rejected. Entries
// after the contest ended are recorded as automatic losses, so a stale
// check page still leaves an auditable row.
func (s *PrizeService) EnterContest(ctx context.Context, student domain.Student, contest domain.Contest, now time.Time) (domain.ContestEntry, bool, error) {
	if student.SchoolID != contest.SchoolID {
		return domain.ContestEntry{}, false, ErrNotEligible
	}

	existing, err := s.entryRepo.FindByStudentAndContest(ctx, student.ID, contest.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrEntryNotFound) {
		return domain.ContestEntry{}, false, fmt.Errorf("s.entryRepo.FindByStudentAndContest -> %w", err)
	}

	if contest.IsUpcoming(now) {
		return domain.ContestEntry{}, false, ErrContestNotStarted
	}

	roll, amountWon := 1, 0
	if contest.IsOngoing(now) {
		roll, amountWon = RollDie(contest)
	}

	entry, err := s.entryRepo.Create(ctx, domain.ContestEntry{
		StudentID: student.ID,
		ContestID: contest.ID,
		Roll:      roll,
		AmountWon: amountWon,
		MintToken: random.Token(mintTokenLength),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEntryExists) {
			// Lost the insert race; the other request's roll stands.
			committed, ferr := s.entryRepo.FindByStudentAndContest(ctx, student.ID, contest.ID)
			if ferr != nil {
				return domain.ContestEntry{}, false, fmt.Errorf("s.entryRepo.FindByStudentAndContest -> %w", ferr)
			}
			return committed, false, nil
		}

		return domain.ContestEntry{}, false, fmt.Errorf("s.entryRepo.Create -> %w", err)
	}

	return entry, true, nil
}

// GetOrIssuePrize returns the claim code for a winning entry, minting the
// gift card on first call. Issuance is gated on the student having a
// validated email and is guarded by a one-way latch on the entry: once a
// creation request ID is recorded, later calls re-present the same ID to
// the vendor instead of minting again.
//
// Losing entries and unvalidated students yield an empty claim code and
// no vendor traffic.
func (s *PrizeService) GetOrIssuePrize(ctx context.Context, entry domain.ContestEntry) (domain.ContestEntry, string, error) {
	if !entry.IsWinner() {
		return entry, "", nil
	}

	student, err := s.studentRepo.FindByID(ctx, entry.StudentID)
	if err != nil {
		return entry, "", fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}
	if !student.IsValidated() {
		return entry, "", nil
	}

	if entry.HasIssued() {
		resp, err := s.vendor.CheckGiftCard(ctx, entry.AmountWon, entry.CreationRequestID, "")
		if err != nil {
			return entry, "", fmt.Errorf("s.vendor.CheckGiftCard -> %w", err)
		}

		return entry, resp.GcClaimCode, nil
	}

	requestID := s.vendor.MakeRequestID(entry.MintToken)

	resp, err := s.vendor.CreateGiftCard(ctx, entry.AmountWon, requestID, "")
	if err != nil {
		// Latch untouched; a later call retries with the same
		// request ID and the vendor dedupes.
		return entry, "", fmt.Errorf("s.vendor.CreateGiftCard -> %w", err)
	}

	err = s.entryRepo.SetCreationRequestID(ctx, entry.ID, resp.CreationRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrPrizeAlreadyIssued) {
			// A concurrent call won the latch. Both vendor calls
			// carried the same request ID, so resp holds the one
			// card that exists.
			committed, ferr := s.entryRepo.FindByID(ctx, entry.ID)
			if ferr != nil {
				return entry, "", fmt.Errorf("s.entryRepo.FindByID -> %w", ferr)
			}

			return committed, resp.GcClaimCode, nil
		}

		return entry, "", fmt.Errorf("s.entryRepo.SetCreationRequestID -> %w", err)
	}

	entry.CreationRequestID = resp.CreationRequestID

	s.sendGiftCodeEmail(ctx, student, entry, resp.GcClaimCode)

	return entry, resp.GcClaimCode, nil
}

// sendGiftCodeEmail delivers the claim code to the winner. Delivery
// failure is logged, not returned: the card is already minted and the
// code is shown on the validation page regardless.
func (s *PrizeService) sendGiftCodeEmail(ctx context.Context, student domain.Student, entry domain.ContestEntry, claimCode string) {
	err := s.mailer.Send(ctx, student.Email, mailer.TemplateGiftCode, map[string]any{
		"FirstName": student.FirstName,
		"AmountWon": strconv.Itoa(entry.AmountWon),
		"ClaimCode": claimCode,
	})
	if err != nil {
		s.logger.Error("failed to send gift code email",
			zap.Uint("student_id", student.ID),
			zap.Uint("entry_id", entry.ID),
			zap.Error(err),
		)
	}
}
