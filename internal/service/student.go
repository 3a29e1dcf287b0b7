package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/repository"
)

var (
	ErrStudentNotFound    = repository.ErrStudentNotFound
	ErrInvalidSchoolEmail = errors.New("email is not valid for this school")
)

type StudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
	GetOrCreate(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByEmail(ctx context.Context, schoolID uint, email string) ([]domain.Student, error)
	FindByEmailSuffix(ctx context.Context, schoolID uint, suffix string) ([]domain.Student, error)
	MarkValidated(ctx context.Context, id uint, email string, now time.Time) (domain.Student, error)
}

type StudentService struct {
	repo StudentRepository
}

func NewStudentService(repo StudentRepository) *StudentService {
	return &StudentService{
		repo: repo,
	}
}

// GetOrCreateStudent resolves an address to the school's student row,
// creating it on first sight. The dedup key is the school-policy hash of
// the address, so "te.st+tag@alias.example.com" and "test@example.com"
// land on the same row.
func (s *StudentService) GetOrCreateStudent(ctx context.Context, school domain.School, email, firstName, lastName string) (domain.Student, error) {
	if !school.IsValidEmail(email) {
		return domain.Student{}, ErrInvalidSchoolEmail
	}

	student, err := s.repo.GetOrCreate(ctx, domain.Student{
		SchoolID:  school.ID,
		Hash:      school.HashEmail(email),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.GetOrCreate -> %w", err)
	}

	return student, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id uint) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return student, nil
}
