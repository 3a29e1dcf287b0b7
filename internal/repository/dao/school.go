package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSchoolNotFound = errors.New("school not found")

type School struct {
	ID uint `gorm:"primaryKey"`

	Name      string `gorm:"not null"`
	Slug      string `gorm:"unique;not null"`
	ShortName string
	Mascot    string

	MailDomain          string     `gorm:"not null"`
	MailAliases         StringList `gorm:"type:text"`
	MailTag             string
	MailStripDots       bool
	MailAllowSubdomains bool

	PercentVoted2020 int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SchoolDAO struct {
	db *gorm.DB
}

func NewSchoolDAO(db *gorm.DB) *SchoolDAO {
	return &SchoolDAO{
		db: db,
	}
}

func (d *SchoolDAO) Insert(ctx context.Context, school School) (School, error) {
	result := d.db.WithContext(ctx).Create(&school)
	if result.Error != nil {
		return School{}, result.Error
	}

	return school, nil
}

func (d *SchoolDAO) FindByID(ctx context.Context, id uint) (School, error) {
	var school School

	result := d.db.WithContext(ctx).First(&school, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return School{}, ErrSchoolNotFound
		}

		return School{}, result.Error
	}

	return school, nil
}

func (d *SchoolDAO) FindBySlug(ctx context.Context, slug string) (School, error) {
	var school School

	result := d.db.WithContext(ctx).Where("slug = ?", slug).First(&school)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return School{}, ErrSchoolNotFound
		}

		return School{}, result.Error
	}

	return school, nil
}
