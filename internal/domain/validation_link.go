package domain

import "time"

// EmailValidationLink gates prize release: a student must visit it to
// prove control of their school address. Consumption is idempotent;
// revisiting the link re-renders the same outcome and never re-rolls or
// re-mints anything.
type EmailValidationLink struct {
	ID        uint `json:"id"`
	StudentID uint `json:"student_id"`

	// ContestEntryID is nil for links issued outside a contest flow.
	ContestEntryID *uint `json:"contest_entry_id"`

	// Email is the specific address being validated.
	Email string `json:"email"`

	// Token is the only secret in the link URL.
	Token string `json:"-"`

	ConsumedAt *time.Time `json:"consumed_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (l EmailValidationLink) IsConsumed() bool {
	return l.ConsumedAt != nil
}

// RelativeURL is the path a student visits, scoped under the school
// slug. The slug is routing only; consumption must cross-check it
// against the link's actual owning school.
func (l EmailValidationLink) RelativeURL(schoolSlug string) string {
	return "/" + schoolSlug + "/v/" + l.Token
}
