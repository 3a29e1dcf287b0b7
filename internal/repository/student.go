package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository/dao"
)

var ErrStudentNotFound = dao.ErrStudentNotFound

type StudentDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Student, error)
	FindByHash(ctx context.Context, schoolID uint, hash string) (dao.Student, error)
	GetOrCreate(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByEmail(ctx context.Context, schoolID uint, email string) ([]dao.Student, error)
	FindByEmailSuffix(ctx context.Context, schoolID uint, suffix string) ([]dao.Student, error)
	MarkValidated(ctx context.Context, id uint, email string, now time.Time) (dao.Student, error)
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// GetOrCreate returns the student with the given dedup hash, creating a
// row on first sight.
func (r *StudentRepository) GetOrCreate(ctx context.Context, student domain.Student) (domain.Student, error) {
	got, err := r.dao.GetOrCreate(ctx, r.domainToDao(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.GetOrCreate -> %w", err)
	}

	return r.daoToDomain(got), nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, schoolID uint, email string) ([]domain.Student, error) {
	found, err := r.dao.FindByEmail(ctx, schoolID, email)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) FindByEmailSuffix(ctx context.Context, schoolID uint, suffix string) ([]domain.Student, error) {
	found, err := r.dao.FindByEmailSuffix(ctx, schoolID, suffix)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEmailSuffix -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) MarkValidated(ctx context.Context, id uint, email string, now time.Time) (domain.Student, error) {
	updated, err := r.dao.MarkValidated(ctx, id, email, now)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.MarkValidated -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StudentRepository) domainToDao(s domain.Student) dao.Student {
	return dao.Student{
		ID:               s.ID,
		SchoolID:         s.SchoolID,
		Hash:             s.Hash,
		Email:            s.Email,
		OtherEmails:      dao.StringList(s.OtherEmails),
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		Phone:            s.Phone,
		EmailValidatedAt: s.EmailValidatedAt,
	}
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:               s.ID,
		SchoolID:         s.SchoolID,
		Hash:             s.Hash,
		Email:            s.Email,
		OtherEmails:      []string(s.OtherEmails),
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		Phone:            s.Phone,
		EmailValidatedAt: s.EmailValidatedAt,
	}
}

func (r *StudentRepository) daosToDomain(students []dao.Student) []domain.Student {
	result := make([]domain.Student, len(students))
	for i, s := range students {
		result[i] = r.daoToDomain(s)
	}
	return result
}
