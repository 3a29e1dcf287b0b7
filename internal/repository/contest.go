package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository/dao"
)

var ErrContestNotFound = dao.ErrContestNotFound

type ContestDAO interface {
	Insert(ctx context.Context, contest dao.Contest) (dao.Contest, error)
	FindByID(ctx context.Context, id uint) (dao.Contest, error)
	FindCurrent(ctx context.Context, schoolID uint, now time.Time) (dao.Contest, error)
	FindMostRecentPast(ctx context.Context, schoolID uint, now time.Time) (dao.Contest, error)
}

type ContestRepository struct {
	dao ContestDAO
}

func NewContestRepository(dao ContestDAO) *ContestRepository {
	return &ContestRepository{
		dao: dao,
	}
}

func (r *ContestRepository) Create(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(contest))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContestRepository) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindCurrent returns the contest ongoing at now, or ErrContestNotFound
// when the school has no active contest.
func (r *ContestRepository) FindCurrent(ctx context.Context, schoolID uint, now time.Time) (domain.Contest, error) {
	found, err := r.dao.FindCurrent(ctx, schoolID, now)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindCurrent -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ContestRepository) FindMostRecentPast(ctx context.Context, schoolID uint, now time.Time) (domain.Contest, error) {
	found, err := r.dao.FindMostRecentPast(ctx, schoolID, now)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindMostRecentPast -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ContestRepository) domainToDao(c domain.Contest) dao.Contest {
	return dao.Contest{
		ID:        c.ID,
		SchoolID:  c.SchoolID,
		Name:      c.Name,
		StartAt:   c.StartAt,
		EndAt:     c.EndAt,
		Kind:      string(c.Kind),
		InN:       c.InN,
		Amount:    c.Amount,
		Prize:     c.Prize,
		PrizeLong: c.PrizeLong,
	}
}

func (r *ContestRepository) daoToDomain(c dao.Contest) domain.Contest {
	return domain.Contest{
		ID:        c.ID,
		SchoolID:  c.SchoolID,
		Name:      c.Name,
		StartAt:   c.StartAt,
		EndAt:     c.EndAt,
		Kind:      domain.ContestKind(c.Kind),
		InN:       c.InN,
		Amount:    c.Amount,
		Prize:     c.Prize,
		PrizeLong: c.PrizeLong,
	}
}
