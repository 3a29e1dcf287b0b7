package domain

import "time"

// ContestEntry records one student's single entry into one contest.
// There is exactly one row per (student, contest) pair, enforced by a
// database uniqueness constraint; that constraint is what prevents a
// student from re-rolling the dice by resubmitting the form.
type ContestEntry struct {
	ID        uint `json:"id"`
	StudentID uint `json:"student_id"`
	ContestID uint `json:"contest_id"`

	// Roll is the persisted outcome of the random draw; 0 denotes a win.
	// It is rolled exactly once, at entry creation, and never recomputed.
	Roll      int `json:"roll"`
	AmountWon int `json:"amount_won"`

	// MintToken is fixed at entry creation and is the stable suffix of
	// the vendor creation request id. Regenerating it would break the
	// vendor-side idempotency that backstops prize issuance.
	MintToken string `json:"-"`

	// CreationRequestID is empty until a gift card has actually been
	// minted. Its presence is the "prize issued" flag; once set it is
	// never cleared or changed.
	CreationRequestID string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// IsWinner reports whether this entry won money.
func (e ContestEntry) IsWinner() bool {
	return e.Roll == 0 && e.AmountWon > 0
}

// HasIssued reports whether a gift card has been minted for this entry.
func (e ContestEntry) HasIssued() bool {
	return e.CreationRequestID != ""
}
