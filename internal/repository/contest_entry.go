package repository

import (
	"context"
	"fmt"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository/dao"
)

var (
	ErrEntryExists        = dao.ErrEntryExists
	ErrEntryNotFound      = dao.ErrEntryNotFound
	ErrPrizeAlreadyIssued = dao.ErrPrizeAlreadyIssued
)

type ContestEntryDAO interface {
	Insert(ctx context.Context, entry dao.ContestEntry) (dao.ContestEntry, error)
	FindByID(ctx context.Context, id uint) (dao.ContestEntry, error)
	FindByStudentAndContest(ctx context.Context, studentID, contestID uint) (dao.ContestEntry, error)
	SetCreationRequestID(ctx context.Context, id uint, creationRequestID string) error
}

type ContestEntryRepository struct {
	dao ContestEntryDAO
}

func NewContestEntryRepository(dao ContestEntryDAO) *ContestEntryRepository {
	return &ContestEntryRepository{
		dao: dao,
	}
}

// Create persists the single entry for a (student, contest) pair.
// A duplicate insert surfaces as a wrapped ErrEntryExists, matchable
// with errors.Is, so the orchestrator can absorb the race and re-read
// the committed row.
func (r *ContestEntryRepository) Create(ctx context.Context, entry domain.ContestEntry) (domain.ContestEntry, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(entry))
	if err != nil {
		return domain.ContestEntry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContestEntryRepository) FindByID(ctx context.Context, id uint) (domain.ContestEntry, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ContestEntry{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ContestEntryRepository) FindByStudentAndContest(ctx context.Context, studentID, contestID uint) (domain.ContestEntry, error) {
	found, err := r.dao.FindByStudentAndContest(ctx, studentID, contestID)
	if err != nil {
		return domain.ContestEntry{}, fmt.Errorf("r.dao.FindByStudentAndContest -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// SetCreationRequestID flips the one-way "prize issued" latch.
func (r *ContestEntryRepository) SetCreationRequestID(ctx context.Context, id uint, creationRequestID string) error {
	if err := r.dao.SetCreationRequestID(ctx, id, creationRequestID); err != nil {
		return fmt.Errorf("r.dao.SetCreationRequestID -> %w", err)
	}

	return nil
}

func (r *ContestEntryRepository) domainToDao(e domain.ContestEntry) dao.ContestEntry {
	return dao.ContestEntry{
		ID:                e.ID,
		StudentID:         e.StudentID,
		ContestID:         e.ContestID,
		Roll:              e.Roll,
		AmountWon:         e.AmountWon,
		MintToken:         e.MintToken,
		CreationRequestID: e.CreationRequestID,
		CreatedAt:         e.CreatedAt,
	}
}

func (r *ContestEntryRepository) daoToDomain(e dao.ContestEntry) domain.ContestEntry {
	return domain.ContestEntry{
		ID:                e.ID,
		StudentID:         e.StudentID,
		ContestID:         e.ContestID,
		Roll:              e.Roll,
		AmountWon:         e.AmountWon,
		MintToken:         e.MintToken,
		CreationRequestID: e.CreationRequestID,
		CreatedAt:         e.CreatedAt,
	}
}
