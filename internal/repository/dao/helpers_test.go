package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voterbowl/backend/internal/repository/dao"
	"github.com/voterbowl/backend/internal/testutil"
)

func seedSchool(t *testing.T, db *gorm.DB) dao.School {
	t.Helper()

	school, err := dao.NewSchoolDAO(db).Insert(context.Background(), dao.School{
		Name:       "Test University",
		Slug:       "test-university",
		ShortName:  "Test U",
		MailDomain: "test.edu",
	})
	require.NoError(t, err)

	return school
}

func seedContest(t *testing.T, db *gorm.DB, schoolID uint, startAt, endAt time.Time) dao.Contest {
	t.Helper()

	contest, err := dao.NewContestDAO(db).Insert(context.Background(), dao.Contest{
		SchoolID: schoolID,
		Name:     "test contest",
		StartAt:  startAt,
		EndAt:    endAt,
		Kind:     "giveaway",
		InN:      1,
		Amount:   5,
	})
	require.NoError(t, err)

	return contest
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID uint, hash, email string) dao.Student {
	t.Helper()

	student, err := dao.NewStudentDAO(db).GetOrCreate(context.Background(), dao.Student{
		SchoolID: schoolID,
		Hash:     hash,
		Email:    email,
	})
	require.NoError(t, err)

	return student
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	return testutil.OpenTestDB(t)
}
