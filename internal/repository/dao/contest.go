package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrContestNotFound = errors.New("contest not found")

type Contest struct {
	ID uint `gorm:"primaryKey"`

	SchoolID uint   `gorm:"not null;index"`
	School   School `gorm:"constraint:OnDelete:CASCADE"`

	Name string `gorm:"not null"`

	StartAt time.Time `gorm:"not null"`
	EndAt   time.Time `gorm:"not null"`

	Kind   string `gorm:"not null;default:giveaway"`
	InN    int    `gorm:"not null;default:1"`
	Amount int    `gorm:"not null;default:0"`

	Prize     string
	PrizeLong string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContestDAO struct {
	db *gorm.DB
}

func NewContestDAO(db *gorm.DB) *ContestDAO {
	return &ContestDAO{
		db: db,
	}
}

func (d *ContestDAO) Insert(ctx context.Context, contest Contest) (Contest, error) {
	result := d.db.WithContext(ctx).Create(&contest)
	if result.Error != nil {
		return Contest{}, result.Error
	}

	return contest, nil
}

func (d *ContestDAO) FindByID(ctx context.Context, id uint) (Contest, error) {
	var contest Contest

	result := d.db.WithContext(ctx).First(&contest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}

// FindCurrent returns the contest ongoing at now for a school, i.e. the
// one whose [start_at, end_at) interval contains now.
func (d *ContestDAO) FindCurrent(ctx context.Context, schoolID uint, now time.Time) (Contest, error) {
	var contest Contest

	result := d.db.WithContext(ctx).
		Where("school_id = ? AND start_at <= ? AND end_at > ?", schoolID, now, now).
		Order("start_at DESC").
		First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}

// FindMostRecentPast returns the most recently ended contest for a school.
func (d *ContestDAO) FindMostRecentPast(ctx context.Context, schoolID uint, now time.Time) (Contest, error) {
	var contest Contest

	result := d.db.WithContext(ctx).
		Where("school_id = ? AND end_at <= ?", schoolID, now).
		Order("end_at DESC").
		First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}
