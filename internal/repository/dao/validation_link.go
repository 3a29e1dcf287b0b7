package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrLinkNotFound = errors.New("email validation link not found")

type EmailValidationLink struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint    `gorm:"not null;index"`
	Student   Student `gorm:"constraint:OnDelete:CASCADE"`

	ContestEntryID *uint
	ContestEntry   *ContestEntry `gorm:"constraint:OnDelete:SET NULL"`

	Email string `gorm:"not null"`
	Token string `gorm:"size:64;unique;not null"`

	ConsumedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ValidationLinkDAO struct {
	db *gorm.DB
}

func NewValidationLinkDAO(db *gorm.DB) *ValidationLinkDAO {
	return &ValidationLinkDAO{
		db: db,
	}
}

func (d *ValidationLinkDAO) Insert(ctx context.Context, link EmailValidationLink) (EmailValidationLink, error) {
	result := d.db.WithContext(ctx).Create(&link)
	if result.Error != nil {
		return EmailValidationLink{}, result.Error
	}

	return link, nil
}

func (d *ValidationLinkDAO) FindByToken(ctx context.Context, token string) (EmailValidationLink, error) {
	var link EmailValidationLink

	result := d.db.WithContext(ctx).Where("token = ?", token).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EmailValidationLink{}, ErrLinkNotFound
		}

		return EmailValidationLink{}, result.Error
	}

	return link, nil
}

// Consume records the first consumption of a link. It reports whether
// this call was the first; later calls return false with no error, since
// link consumption is idempotent.
func (d *ValidationLinkDAO) Consume(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&EmailValidationLink{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", now)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
