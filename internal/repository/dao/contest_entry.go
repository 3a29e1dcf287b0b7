package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEntryExists        = errors.New("contest entry already exists")
	ErrEntryNotFound      = errors.New("contest entry not found")
	ErrPrizeAlreadyIssued = errors.New("prize already issued for contest entry")
)

type ContestEntry struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint    `gorm:"not null;uniqueIndex:idx_entries_student_contest"`
	Student   Student `gorm:"constraint:OnDelete:CASCADE"`

	ContestID uint    `gorm:"not null;uniqueIndex:idx_entries_student_contest"`
	Contest   Contest `gorm:"constraint:OnDelete:CASCADE"`

	Roll      int `gorm:"not null"`
	AmountWon int `gorm:"not null;default:0"`

	MintToken string `gorm:"size:64;not null"`

	// Empty until a gift card has been minted. One-way latch.
	CreationRequestID string `gorm:"size:255;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContestEntryDAO struct {
	db *gorm.DB
}

func NewContestEntryDAO(db *gorm.DB) *ContestEntryDAO {
	return &ContestEntryDAO{
		db: db,
	}
}

// Insert creates the single entry for a (student, contest) pair. A
// concurrent duplicate surfaces as ErrEntryExists; callers must fetch
// the committed row instead of erroring out to the user.
func (d *ContestEntryDAO) Insert(ctx context.Context, entry ContestEntry) (ContestEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ContestEntry{}, ErrEntryExists
		}

		return ContestEntry{}, result.Error
	}

	return entry, nil
}

func (d *ContestEntryDAO) FindByID(ctx context.Context, id uint) (ContestEntry, error) {
	var entry ContestEntry

	result := d.db.WithContext(ctx).First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ContestEntry{}, ErrEntryNotFound
		}

		return ContestEntry{}, result.Error
	}

	return entry, nil
}

func (d *ContestEntryDAO) FindByStudentAndContest(ctx context.Context, studentID, contestID uint) (ContestEntry, error) {
	var entry ContestEntry

	result := d.db.WithContext(ctx).
		Where("student_id = ? AND contest_id = ?", studentID, contestID).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ContestEntry{}, ErrEntryNotFound
		}

		return ContestEntry{}, result.Error
	}

	return entry, nil
}

// SetCreationRequestID flips the "prize issued" latch. The guarded WHERE
// makes the check-and-set atomic: if another request already issued the
// prize, zero rows are affected and ErrPrizeAlreadyIssued is returned so
// the caller can re-read the winning row.
func (d *ContestEntryDAO) SetCreationRequestID(ctx context.Context, id uint, creationRequestID string) error {
	result := d.db.WithContext(ctx).
		Model(&ContestEntry{}).
		Where("id = ? AND creation_request_id = ''", id).
		Update("creation_request_id", creationRequestID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPrizeAlreadyIssued
	}

	return nil
}
