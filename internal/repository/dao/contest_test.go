package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voterbowl/backend/internal/repository/dao"
)

func TestContestDAO_FindCurrent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	d := dao.NewContestDAO(db)

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	past := seedContest(t, db, school.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	current := seedContest(t, db, school.ID, now.Add(-time.Hour), now.Add(time.Hour))
	seedContest(t, db, school.ID, now.Add(24*time.Hour), now.Add(48*time.Hour))

	t.Run("picks the ongoing contest", func(t *testing.T) {
		got, err := d.FindCurrent(ctx, school.ID, now)
		require.NoError(t, err)

		assert.Equal(t, current.ID, got.ID)
	})

	t.Run("start boundary is inclusive", func(t *testing.T) {
		got, err := d.FindCurrent(ctx, school.ID, current.StartAt)
		require.NoError(t, err)

		assert.Equal(t, current.ID, got.ID)
	})

	t.Run("end boundary is exclusive", func(t *testing.T) {
		_, err := d.FindCurrent(ctx, school.ID, past.EndAt)

		assert.ErrorIs(t, err, dao.ErrContestNotFound)
	})

	t.Run("nothing ongoing", func(t *testing.T) {
		_, err := d.FindCurrent(ctx, school.ID, now.Add(12*time.Hour))

		assert.ErrorIs(t, err, dao.ErrContestNotFound)
	})
}

func TestContestDAO_FindMostRecentPast(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	school := seedSchool(t, db)
	d := dao.NewContestDAO(db)

	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	seedContest(t, db, school.ID, now.Add(-96*time.Hour), now.Add(-72*time.Hour))
	latest := seedContest(t, db, school.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	seedContest(t, db, school.ID, now.Add(-time.Hour), now.Add(time.Hour))

	got, err := d.FindMostRecentPast(ctx, school.ID, now)
	require.NoError(t, err)

	assert.Equal(t, latest.ID, got.ID)

	t.Run("no past contest", func(t *testing.T) {
		_, err := d.FindMostRecentPast(ctx, school.ID, now.Add(-100*time.Hour))

		assert.ErrorIs(t, err, dao.ErrContestNotFound)
	})
}
