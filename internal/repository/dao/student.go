package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student not found")

type Student struct {
	ID uint `gorm:"primaryKey"`

	SchoolID uint   `gorm:"not null;uniqueIndex:idx_students_school_hash"`
	School   School `gorm:"constraint:OnDelete:CASCADE"`

	Hash string `gorm:"size:64;not null;uniqueIndex:idx_students_school_hash"`

	Email       string     `gorm:"not null"`
	OtherEmails StringList `gorm:"type:text"`

	FirstName string
	LastName  string
	Phone     string

	EmailValidatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) FindByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByHash(ctx context.Context, schoolID uint, hash string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).
		Where("school_id = ? AND hash = ?", schoolID, hash).
		First(&student)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

// GetOrCreate returns the student with the given dedup hash, creating it
// on first sight. Concurrent creators race on the (school_id, hash)
// uniqueness constraint; the loser falls back to reading the committed
// row.
func (d *StudentDAO) GetOrCreate(ctx context.Context, student Student) (Student, error) {
	existing, err := d.FindByHash(ctx, student.SchoolID, student.Hash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrStudentNotFound) {
		return Student{}, err
	}

	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return d.FindByHash(ctx, student.SchoolID, student.Hash)
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByEmail(ctx context.Context, schoolID uint, email string) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Where("school_id = ? AND email = ?", schoolID, email).
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

// FindByEmailSuffix matches students whose first-seen address ends with
// the given suffix (operator bulk-entry tooling).
func (d *StudentDAO) FindByEmailSuffix(ctx context.Context, schoolID uint, suffix string) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Where("school_id = ? AND email LIKE ?", schoolID, "%"+suffix).
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

// MarkValidated records that the student has proven control of email.
// The first validation sets email_validated_at; a newly proven address
// distinct from the first-seen one is appended to other_emails.
func (d *StudentDAO) MarkValidated(ctx context.Context, id uint, email string, now time.Time) (Student, error) {
	var student Student

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		if student.EmailValidatedAt == nil {
			student.EmailValidatedAt = &now
		}

		if email != student.Email && !contains(student.OtherEmails, email) {
			student.OtherEmails = append(student.OtherEmails, email)
		}

		return tx.Save(&student).Error
	})
	if err != nil {
		return Student{}, err
	}

	return student, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
