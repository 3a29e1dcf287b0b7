package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Validate(t *testing.T) {
	t.Run("non-winner", func(t *testing.T) {
		email, err := Render(TemplateValidate, map[string]any{
			"FirstName":  "Sam",
			"IsWinner":   false,
			"LinkURL":    "https://example.org/school/v/abc123",
			"ButtonText": "Validate my email",
		})
		require.NoError(t, err)

		assert.Equal(t, "Confirm your email", email.Subject)
		assert.Contains(t, email.Text, "Hi Sam,")
		assert.Contains(t, email.Text, "https://example.org/school/v/abc123")
		assert.NotContains(t, email.Text, "You won!")
		assert.Contains(t, email.HTML, `href="https://example.org/school/v/abc123"`)
		assert.Contains(t, email.HTML, "Validate my email")
	})

	t.Run("winner", func(t *testing.T) {
		email, err := Render(TemplateValidate, map[string]any{
			"FirstName":  "Sam",
			"IsWinner":   true,
			"LinkURL":    "https://example.org/school/v/abc123",
			"ButtonText": "Get my $5 gift card",
		})
		require.NoError(t, err)

		assert.Equal(t, "Confirm your email to claim your prize", email.Subject)
		assert.Contains(t, email.Text, "You won!")
		assert.Contains(t, email.HTML, "Get my $5 gift card")
	})
}

func TestRender_GiftCode(t *testing.T) {
	email, err := Render(TemplateGiftCode, map[string]any{
		"FirstName": "Sam",
		"AmountWon": "5",
		"ClaimCode": "6FLQ-WTLHXT-HD4N",
	})
	require.NoError(t, err)

	assert.Equal(t, "Your $5 gift card from the Voter Bowl", email.Subject)
	assert.Contains(t, email.Text, "6FLQ-WTLHXT-HD4N")
	assert.Contains(t, email.HTML, "<b>6FLQ-WTLHXT-HD4N</b>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("no-such-template", nil)

	assert.Error(t, err)
}

func TestRender_EscapesHTML(t *testing.T) {
	email, err := Render(TemplateGiftCode, map[string]any{
		"FirstName": "<script>alert(1)</script>",
		"AmountWon": "5",
		"ClaimCode": "CODE",
	})
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "<script>")
	// The plain text part is left as-is.
	assert.Contains(t, email.Text, "<script>alert(1)</script>")
}
