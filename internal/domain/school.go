package domain

import (
	"github.com/voterbowl/backend/pkg/emailaddr"
)

// School is a single school in the competition. It owns its contests and
// students. The mail policy fields are effectively immutable once
// students have registered: changing them silently re-keys future
// entries without touching existing dedup hashes.
type School struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ShortName string `json:"short_name"`
	Mascot    string `json:"mascot"`

	MailDomain          string   `json:"mail_domain"`
	MailAliases         []string `json:"mail_aliases"`
	MailTag             string   `json:"mail_tag"`
	MailStripDots       bool     `json:"mail_strip_dots"`
	MailAllowSubdomains bool     `json:"mail_allow_subdomains"`

	// If known, the percentage of students who voted in 2020 (like 70).
	PercentVoted2020 int `json:"percent_voted_2020"`
}

// EmailPolicy returns the normalization policy for this school's mail
// domains.
func (s School) EmailPolicy() emailaddr.Policy {
	return emailaddr.Policy{
		Tag:             s.MailTag,
		StripDots:       s.MailStripDots,
		Primary:         s.MailDomain,
		Aliases:         s.MailAliases,
		AllowSubdomains: s.MailAllowSubdomains,
	}
}

// HashEmail returns the dedup key for an address under this school's
// policy.
func (s School) HashEmail(address string) string {
	return emailaddr.Hash(address, s.EmailPolicy())
}

// IsValidEmail reports whether the address belongs to this school's
// primary mail domain (after alias rewriting).
func (s School) IsValidEmail(address string) bool {
	return emailaddr.ValidForDomain(address, s.EmailPolicy())
}
