package domain

import "time"

// Student is a single student at one school. Hash is the normalized
// email dedup key: there is at most one student row per (school, hash).
type Student struct {
	ID       uint `json:"id"`
	SchoolID uint `json:"school_id"`

	// Hash is an internal dedup key; never expose it externally.
	Hash string `json:"-"`

	// Email is the first-seen address; OtherEmails accumulates
	// subsequently validated addresses.
	Email       string   `json:"email"`
	OtherEmails []string `json:"other_emails"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// EmailValidatedAt is set the first time the student proves control
	// of any owned address.
	EmailValidatedAt *time.Time `json:"email_validated_at"`
}

// IsValidated reports whether the student has ever proven control of an
// owned email address. Claim codes are never shown before this.
func (s Student) IsValidated() bool {
	return s.EmailValidatedAt != nil
}
