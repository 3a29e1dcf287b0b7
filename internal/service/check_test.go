package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voterbowl/backend/internal/domain"
	"github.com/voterbowl/backend/internal/service"
	"github.com/voterbowl/backend/pkg/mailer"
)

func TestCheckService_FinishCheck(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("unknown school", func(t *testing.T) {
		e := newEnv(t)

		_, err := e.check.FinishCheck(ctx, "nowhere", "sam@test.edu", "Sam", "Smith", now)

		assert.ErrorIs(t, err, service.ErrSchoolNotFound)
	})

	t.Run("address outside the school domain", func(t *testing.T) {
		e := newEnv(t)
		e.seedSchool(t)

		_, err := e.check.FinishCheck(ctx, "test-university", "sam@gmail.com", "Sam", "Smith", now)

		assert.ErrorIs(t, err, service.ErrInvalidSchoolEmail)
	})

	t.Run("no contest running still records the student", func(t *testing.T) {
		e := newEnv(t)
		e.seedSchool(t)

		result, err := e.check.FinishCheck(ctx, "test-university", "sam@test.edu", "Sam", "Smith", now)
		require.NoError(t, err)

		assert.Nil(t, result.Contest)
		assert.Nil(t, result.Entry)
		assert.NotZero(t, result.Student.ID)

		// The validation email still goes out.
		assert.Len(t, e.mailer.byTemplate(mailer.TemplateValidate), 1)
	})

	t.Run("full winner flow", func(t *testing.T) {
		e := newEnv(t)
		school := e.seedSchool(t)
		e.seedContest(t, school.ID, domain.KindDiceRoll, 1, 25, now.Add(-time.Hour), now.Add(time.Hour))

		// The messy spelling lands on the same student as the clean one.
		result, err := e.check.FinishCheck(ctx, "test-university", "A.l.i.c.e+vote@TEST.edu", "Alice", "Smith", now)
		require.NoError(t, err)

		assert.Equal(t, "Test U", result.School.ShortName)
		assert.True(t, result.IsNewEntry)
		require.NotNil(t, result.Entry)
		assert.True(t, result.Entry.IsWinner())
		assert.Equal(t, 25, result.Entry.AmountWon)

		// No prize money moves before validation.
		assert.Zero(t, e.vendor.mintCalls)
		assert.Zero(t, e.vendor.checkCalls)

		emails := e.mailer.byTemplate(mailer.TemplateValidate)
		require.Len(t, emails, 1)
		assert.Equal(t, "A.l.i.c.e+vote@TEST.edu", emails[0].To)
		assert.Equal(t, true, emails[0].Data["IsWinner"])

		// Double-submitting the form changes nothing.
		again, err := e.check.FinishCheck(ctx, "test-university", "alice@test.edu", "Alice", "Smith", now.Add(time.Minute))
		require.NoError(t, err)

		assert.False(t, again.IsNewEntry)
		assert.Equal(t, result.Student.ID, again.Student.ID)
		assert.Equal(t, result.Entry.ID, again.Entry.ID)

		// Following the emailed link releases the card.
		link, err := e.linkRepo.FindByToken(ctx, lastEmailedToken(t, e))
		require.NoError(t, err)

		outcome, err := e.validation.Consume(ctx, link.Token, "test-university", now.Add(2*time.Minute))
		require.NoError(t, err)

		assert.Equal(t, "ABC123", outcome.ClaimCode)
		assert.Equal(t, 1, e.vendor.mintCalls)

		giftEmails := e.mailer.byTemplate(mailer.TemplateGiftCode)
		require.Len(t, giftEmails, 1)
		assert.Equal(t, "ABC123", giftEmails[0].Data["ClaimCode"])

		// A stale browser tab re-consuming the link is harmless.
		revisit, err := e.validation.Consume(ctx, link.Token, "test-university", now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, "ABC123", revisit.ClaimCode)
		assert.Equal(t, 1, e.vendor.mintCalls)
		assert.Len(t, e.mailer.byTemplate(mailer.TemplateGiftCode), 1)
	})

	t.Run("validated student still gets a link", func(t *testing.T) {
		e := newEnv(t)
		school := e.seedSchool(t)
		e.seedContest(t, school.ID, domain.KindNoPrize, 1, 0, now.Add(-time.Hour), now.Add(time.Hour))

		student := e.seedStudent(t, school, "sam@test.edu")
		_, err := e.studentRepo.MarkValidated(ctx, student.ID, student.Email, now)
		require.NoError(t, err)

		// The address on the form may be one the student has not proven
		// yet, so the link goes out regardless.
		result, err := e.check.FinishCheck(ctx, "test-university", "sam@test.edu", "Sam", "Smith", now)
		require.NoError(t, err)

		require.NotNil(t, result.Entry)
		assert.Len(t, e.mailer.byTemplate(mailer.TemplateValidate), 1)
	})
}

// lastEmailedToken digs the token out of the most recently emailed
// validation link, the way a student would read it from their inbox.
func lastEmailedToken(t *testing.T, e *env) string {
	t.Helper()

	emails := e.mailer.byTemplate(mailer.TemplateValidate)
	require.NotEmpty(t, emails)

	url, ok := emails[len(emails)-1].Data["LinkURL"].(string)
	require.True(t, ok)

	idx := strings.LastIndex(url, "/v/")
	require.GreaterOrEqual(t, idx, 0)

	return url[idx+len("/v/"):]
}
