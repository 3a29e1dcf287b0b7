package repository

import (
	"context"
	"fmt"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository/dao"
)

var ErrSchoolNotFound = dao.ErrSchoolNotFound

type SchoolDAO interface {
	Insert(ctx context.Context, school dao.School) (dao.School, error)
	FindByID(ctx context.Context, id uint) (dao.School, error)
	FindBySlug(ctx context.Context, slug string) (dao.School, error)
}

type SchoolRepository struct {
	dao SchoolDAO
}

func NewSchoolRepository(dao SchoolDAO) *SchoolRepository {
	return &SchoolRepository{
		dao: dao,
	}
}

func (r *SchoolRepository) Create(ctx context.Context, school domain.School) (domain.School, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(school))
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SchoolRepository) FindByID(ctx context.Context, id uint) (domain.School, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SchoolRepository) FindBySlug(ctx context.Context, slug string) (domain.School, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.School{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SchoolRepository) domainToDao(s domain.School) dao.School {
	return dao.School{
		ID:                  s.ID,
		Name:                s.Name,
		Slug:                s.Slug,
		ShortName:           s.ShortName,
		Mascot:              s.Mascot,
		MailDomain:          s.MailDomain,
		MailAliases:         dao.StringList(s.MailAliases),
		MailTag:             s.MailTag,
		MailStripDots:       s.MailStripDots,
		MailAllowSubdomains: s.MailAllowSubdomains,
		PercentVoted2020:    s.PercentVoted2020,
	}
}

func (r *SchoolRepository) daoToDomain(s dao.School) domain.School {
	return domain.School{
		ID:                  s.ID,
		Name:                s.Name,
		Slug:                s.Slug,
		ShortName:           s.ShortName,
		Mascot:              s.Mascot,
		MailDomain:          s.MailDomain,
		MailAliases:         []string(s.MailAliases),
		MailTag:             s.MailTag,
		MailStripDots:       s.MailStripDots,
		MailAllowSubdomains: s.MailAllowSubdomains,
		PercentVoted2020:    s.PercentVoted2020,
	}
}
