package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository"
	"github.com/voterbowl/backend/pkg/random"
)

var ErrContestNotFound = repository.ErrContestNotFound

type ContestRepository interface {
	Create(ctx context.Context, contest domain.Contest) (domain.Contest, error)
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
	FindCurrent(ctx context.Context, schoolID uint, now time.Time) (domain.Contest, error)
	FindMostRecentPast(ctx context.Context, schoolID uint, now time.Time) (domain.Contest, error)
}

type ContestService struct {
	repo ContestRepository
}

func NewContestService(repo ContestRepository) *ContestService {
	return &ContestService{
		repo: repo,
	}
}

func (s *ContestService) CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	if err := contest.Validate(); err != nil {
		return domain.Contest{}, err
	}

	created, err := s.repo.Create(ctx, contest)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ContestService) GetContest(ctx context.Context, id uint) (domain.Contest, error) {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return contest, nil
}

// CurrentContest returns the contest ongoing at now for a school, or
// (nil, nil) when there is none; having no active contest is a normal
// state, not an error.
func (s *ContestService) CurrentContest(ctx context.Context, schoolID uint, now time.Time) (*domain.Contest, error) {
	contest, err := s.repo.FindCurrent(ctx, schoolID, now)
	if err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.FindCurrent -> %w", err)
	}

	return &contest, nil
}

// MostRecentPastContest returns the most recently ended contest, or
// (nil, nil) when the school has never run one.
func (s *ContestService) MostRecentPastContest(ctx context.Context, schoolID uint, now time.Time) (*domain.Contest, error) {
	contest, err := s.repo.FindMostRecentPast(ctx, schoolID, now)
	if err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.FindMostRecentPast -> %w", err)
	}

	return &contest, nil
}

// RollDie draws the winner-selection outcome for one new entry. A roll
// of 0 denotes a win. The draw uses a cryptographically secure source;
// entrants must not be able to predict outcomes.
//
// This is called exactly once per entry, at entry-creation time, and the
// result is persisted immediately. It is never recomputed for an
// existing entry.
func RollDie(contest domain.Contest) (roll int, amountWon int) {
	switch contest.Kind {
	case domain.KindGiveaway:
		// Every entrant wins.
		return 0, contest.Amount
	case domain.KindDiceRoll:
		r := random.Intn(contest.InN)
		if r == 0 {
			return 0, contest.Amount
		}
		return r, 0
	default:
		// No immediate winner. Single-winner prizes are awarded
		// out-of-band by an administrator.
		return 1, 0
	}
}
