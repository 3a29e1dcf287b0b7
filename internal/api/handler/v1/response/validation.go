package response

import (
	"github.com/voterbowl/backend/internal/service"
)

type ValidateEmailResponse struct {
	School    School `json:"school"`
	FirstName string `json:"first_name"`
	IsWinner  bool   `json:"is_winner"`
	AmountWon int    `json:"amount_won"`

	// ClaimCode is set only for a winner whose gift card is issued. It
	// is the same code on every revisit of the link.
	ClaimCode string `json:"claim_code,omitempty"`
}

func NewValidateEmailResponse(outcome service.ValidationOutcome) ValidateEmailResponse {
	resp := ValidateEmailResponse{
		School:    NewSchool(outcome.School),
		FirstName: outcome.Student.FirstName,
		ClaimCode: outcome.ClaimCode,
	}

	if outcome.Entry != nil {
		resp.IsWinner = outcome.Entry.IsWinner()
		resp.AmountWon = outcome.Entry.AmountWon
	}

	return resp
}
