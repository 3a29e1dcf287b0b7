package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voterbowl/backend/internal/repository/dao"
)

func TestStudentDAO_GetOrCreate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	d := dao.NewStudentDAO(db)

	created, err := d.GetOrCreate(ctx, dao.Student{
		SchoolID:  school.ID,
		Hash:      "hash-1",
		Email:     "test@test.edu",
		FirstName: "Sam",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	t.Run("same hash returns the existing row", func(t *testing.T) {
		got, err := d.GetOrCreate(ctx, dao.Student{
			SchoolID:  school.ID,
			Hash:      "hash-1",
			Email:     "TEST+later@test.edu",
			FirstName: "Samuel",
		})
		require.NoError(t, err)

		// First-seen details win.
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "test@test.edu", got.Email)
		assert.Equal(t, "Sam", got.FirstName)
	})

	t.Run("different hash creates a new row", func(t *testing.T) {
		got, err := d.GetOrCreate(ctx, dao.Student{
			SchoolID: school.ID,
			Hash:     "hash-2",
			Email:    "other@test.edu",
		})
		require.NoError(t, err)

		assert.NotEqual(t, created.ID, got.ID)
	})

	t.Run("same hash under another school is independent", func(t *testing.T) {
		other, err := dao.NewSchoolDAO(db).Insert(ctx, dao.School{
			Name:       "Other University",
			Slug:       "other-university",
			MailDomain: "other.edu",
		})
		require.NoError(t, err)

		got, err := d.GetOrCreate(ctx, dao.Student{
			SchoolID: other.ID,
			Hash:     "hash-1",
			Email:    "test@other.edu",
		})
		require.NoError(t, err)

		assert.NotEqual(t, created.ID, got.ID)
	})
}

func TestStudentDAO_MarkValidated(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	d := dao.NewStudentDAO(db)

	student := seedStudent(t, db, school.ID, "hash-1", "test@test.edu")
	require.Nil(t, student.EmailValidatedAt)

	first := time.Date(2024, 5, 15, 5, 10, 0, 0, time.UTC)

	got, err := d.MarkValidated(ctx, student.ID, "test@test.edu", first)
	require.NoError(t, err)
	require.NotNil(t, got.EmailValidatedAt)
	assert.WithinDuration(t, first, *got.EmailValidatedAt, time.Second)
	assert.Empty(t, got.OtherEmails)

	t.Run("validation timestamp is set once", func(t *testing.T) {
		later := first.Add(24 * time.Hour)

		got, err := d.MarkValidated(ctx, student.ID, "test@test.edu", later)
		require.NoError(t, err)

		require.NotNil(t, got.EmailValidatedAt)
		assert.WithinDuration(t, first, *got.EmailValidatedAt, time.Second)
	})

	t.Run("new address is appended once", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := d.MarkValidated(ctx, student.ID, "second@test.edu", first)
			require.NoError(t, err)
		}

		got, err := d.FindByID(ctx, student.ID)
		require.NoError(t, err)

		assert.Equal(t, dao.StringList{"second@test.edu"}, got.OtherEmails)
	})

	t.Run("unknown student errors", func(t *testing.T) {
		_, err := d.MarkValidated(ctx, 9999, "x@test.edu", first)

		assert.ErrorIs(t, err, dao.ErrStudentNotFound)
	})
}

func TestStudentDAO_FindByEmailSuffix(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	d := dao.NewStudentDAO(db)

	seedStudent(t, db, school.ID, "hash-1", "alice@test.edu")
	seedStudent(t, db, school.ID, "hash-2", "bob@test.edu")
	seedStudent(t, db, school.ID, "hash-3", "carol@elsewhere.org")

	matched, err := d.FindByEmailSuffix(ctx, school.ID, "@test.edu")
	require.NoError(t, err)

	assert.Len(t, matched, 2)
}
