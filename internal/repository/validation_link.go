package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository/dao"
)

var ErrLinkNotFound = dao.ErrLinkNotFound

type ValidationLinkDAO interface {
	Insert(ctx context.Context, link dao.EmailValidationLink) (dao.EmailValidationLink, error)
	FindByToken(ctx context.Context, token string) (dao.EmailValidationLink, error)
	Consume(ctx context.Context, id uint, now time.Time) (bool, error)
}

type ValidationLinkRepository struct {
	dao ValidationLinkDAO
}

func NewValidationLinkRepository(dao ValidationLinkDAO) *ValidationLinkRepository {
	return &ValidationLinkRepository{
		dao: dao,
	}
}

func (r *ValidationLinkRepository) Create(ctx context.Context, link domain.EmailValidationLink) (domain.EmailValidationLink, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(link))
	if err != nil {
		return domain.EmailValidationLink{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ValidationLinkRepository) FindByToken(ctx context.Context, token string) (domain.EmailValidationLink, error) {
	found, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		return domain.EmailValidationLink{}, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Consume reports whether this call consumed the link first. Repeat
// consumption is not an error.
func (r *ValidationLinkRepository) Consume(ctx context.Context, id uint, now time.Time) (bool, error) {
	first, err := r.dao.Consume(ctx, id, now)
	if err != nil {
		return false, fmt.Errorf("r.dao.Consume -> %w", err)
	}

	return first, nil
}

func (r *ValidationLinkRepository) domainToDao(l domain.EmailValidationLink) dao.EmailValidationLink {
	return dao.EmailValidationLink{
		ID:             l.ID,
		StudentID:      l.StudentID,
		ContestEntryID: l.ContestEntryID,
		Email:          l.Email,
		Token:          l.Token,
		ConsumedAt:     l.ConsumedAt,
		CreatedAt:      l.CreatedAt,
	}
}

func (r *ValidationLinkRepository) daoToDomain(l dao.EmailValidationLink) domain.EmailValidationLink {
	return domain.EmailValidationLink{
		ID:             l.ID,
		StudentID:      l.StudentID,
		ContestEntryID: l.ContestEntryID,
		Email:          l.Email,
		Token:          l.Token,
		ConsumedAt:     l.ConsumedAt,
		CreatedAt:      l.CreatedAt,
	}
}
