package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voterbowl/backend/internal/repository/dao"
)

func TestValidationLinkDAO_Consume(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, "hash-1", "test@test.edu")

	d := dao.NewValidationLinkDAO(db)

	link, err := d.Insert(ctx, dao.EmailValidationLink{
		StudentID: student.ID,
		Email:     "test@test.edu",
		Token:     "abc123",
	})
	require.NoError(t, err)

	first := time.Date(2024, 5, 15, 5, 10, 0, 0, time.UTC)

	consumed, err := d.Consume(ctx, link.ID, first)
	require.NoError(t, err)
	assert.True(t, consumed)

	t.Run("second consumption is a no-op", func(t *testing.T) {
		consumed, err := d.Consume(ctx, link.ID, first.Add(time.Hour))
		require.NoError(t, err)

		assert.False(t, consumed)

		got, err := d.FindByToken(ctx, "abc123")
		require.NoError(t, err)
		require.NotNil(t, got.ConsumedAt)
		assert.WithinDuration(t, first, *got.ConsumedAt, time.Second)
	})
}

func TestValidationLinkDAO_FindByToken(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	student := seedStudent(t, db, school.ID, "hash-1", "test@test.edu")

	d := dao.NewValidationLinkDAO(db)

	_, err := d.Insert(ctx, dao.EmailValidationLink{
		StudentID: student.ID,
		Email:     "test@test.edu",
		Token:     "abc123",
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		link, err := d.FindByToken(ctx, "abc123")
		require.NoError(t, err)

		assert.Equal(t, student.ID, link.StudentID)
		assert.Nil(t, link.ContestEntryID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := d.FindByToken(ctx, "nope")

		assert.ErrorIs(t, err, dao.ErrLinkNotFound)
	})
}
