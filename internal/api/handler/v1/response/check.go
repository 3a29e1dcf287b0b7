package response

import (
	"time"

	"github.com/voterbowl/backend/internal/service"
)

type GetCheckPageResponse struct {
	School School `json:"school"`

	// CurrentContest is null when no contest is running.
	CurrentContest *Contest `json:"current_contest"`
}

type FinishCheckResponse struct {
	School    School `json:"school"`
	FirstName string `json:"first_name"`

	// EmailValidated reports whether the student has ever validated a
	// school address. Until it is true, any winnings stay pending behind
	// the validation email.
	EmailValidated bool `json:"email_validated"`

	Contest    *Contest `json:"contest"`
	IsNewEntry bool     `json:"is_new_entry"`
	IsWinner   bool     `json:"is_winner"`
	AmountWon  int      `json:"amount_won"`
}

func NewFinishCheckResponse(result service.CheckResult, now time.Time) FinishCheckResponse {
	resp := FinishCheckResponse{
		School:         NewSchool(result.School),
		FirstName:      result.Student.FirstName,
		EmailValidated: result.Student.IsValidated(),
		Contest:        NewContest(result.Contest, now),
		IsNewEntry:     result.IsNewEntry,
	}

	if result.Entry != nil {
		resp.IsWinner = result.Entry.IsWinner()
		resp.AmountWon = result.Entry.AmountWon
	}

	return resp
}
