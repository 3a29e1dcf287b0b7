// Package emailaddr normalizes student email addresses into stable
// deduplication keys, following each school's mail domain policy.
package emailaddr

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Policy describes how a school's mail system treats addresses.
type Policy struct {
	// Tag truncates the local part at its first occurrence ("+" for most
	// providers). Empty disables tag stripping.
	Tag string

	// StripDots removes all dots from the local part (Gmail-style).
	StripDots bool

	// Primary is the canonical mail domain. Aliases are rewritten to it.
	Primary string
	Aliases []string

	// AllowSubdomains treats any subdomain of Primary or an alias as the
	// primary domain as well.
	AllowSubdomains bool
}

// Normalize canonicalizes an address under the given policy.
//
// The address must already be a syntactically plausible email address;
// quoted local parts, comments and internationalized domains are not
// supported. Non-ASCII characters are force-stripped from both parts
// before hashing. That silently merges distinct international addresses
// into one bucket, which is absurd, but it is long-standing behavior and
// changing it would re-key every existing student.
func Normalize(address string, p Policy) string {
	address = strings.ToLower(strings.TrimSpace(address))
	local, domain, found := strings.Cut(address, "@")
	if !found {
		return forceASCII(address)
	}
	if p.Tag != "" {
		if i := strings.Index(local, p.Tag); i >= 0 {
			local = local[:i]
		}
	}
	if p.StripDots {
		local = strings.ReplaceAll(local, ".", "")
	}
	if p.matchesPrimary(domain) {
		domain = strings.ToLower(p.Primary)
	}
	return forceASCII(local) + "@" + forceASCII(domain)
}

// Hash returns the hex SHA-256 of the normalized address. It is a dedup
// key only; never expose it externally, since it is trivially reversible
// by brute-forcing email guesses.
func Hash(address string, p Policy) string {
	sum := sha256.Sum256([]byte(Normalize(address, p)))
	return hex.EncodeToString(sum[:])
}

// ValidForDomain reports whether the normalized address lands on the
// policy's primary domain.
func ValidForDomain(address string, p Policy) bool {
	_, domain, found := strings.Cut(Normalize(address, p), "@")
	return found && domain == strings.ToLower(p.Primary)
}

func (p Policy) matchesPrimary(domain string) bool {
	candidates := append([]string{p.Primary}, p.Aliases...)
	for _, c := range candidates {
		c = strings.ToLower(c)
		if domain == c {
			return true
		}
		if p.AllowSubdomains && strings.HasSuffix(domain, "."+c) {
			return true
		}
	}
	return false
}

func forceASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
