package emailaddr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voterbowl/backend/pkg/emailaddr"
)

func gmailStylePolicy() emailaddr.Policy {
	return emailaddr.Policy{
		Tag:             "+",
		StripDots:       true,
		Primary:         "example.edu",
		Aliases:         []string{"alias.example.edu"},
		AllowSubdomains: true,
	}
}

func TestNormalize(t *testing.T) {
	p := gmailStylePolicy()

	tests := []struct {
		name    string
		address string
		want    string
	}{
		{
			name:    "plain address is lowercased",
			address: "Test@Example.EDU",
			want:    "test@example.edu",
		},
		{
			name:    "surrounding whitespace is trimmed",
			address: "  test@example.edu \n",
			want:    "test@example.edu",
		},
		{
			name:    "tag is stripped",
			address: "test+anything@example.edu",
			want:    "test@example.edu",
		},
		{
			name:    "dots in local part are stripped",
			address: "t.e.s.t@example.edu",
			want:    "test@example.edu",
		},
		{
			name:    "alias domain is rewritten to primary",
			address: "test@alias.example.edu",
			want:    "test@example.edu",
		},
		{
			name:    "subdomain is rewritten to primary",
			address: "test@mail.example.edu",
			want:    "test@example.edu",
		},
		{
			name:    "everything at once",
			address: " Te.St+Tag@Alias.Example.EDU ",
			want:    "test@example.edu",
		},
		{
			name:    "foreign domain is untouched",
			address: "test@other.edu",
			want:    "test@other.edu",
		},
		{
			name:    "non-ascii runes are dropped",
			address: "tëst@example.edu",
			want:    "tst@example.edu",
		},
		{
			name:    "missing at sign passes through",
			address: "not-an-email",
			want:    "not-an-email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emailaddr.Normalize(tt.address, p)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	p := gmailStylePolicy()

	addresses := []string{
		"Te.St+Tag@Alias.Example.EDU",
		"test@example.edu",
		"tëst@mail.example.edu",
		"weird@@double.example.edu",
	}

	for _, address := range addresses {
		once := emailaddr.Normalize(address, p)
		twice := emailaddr.Normalize(once, p)

		assert.Equal(t, once, twice, "normalizing %q twice changed the result", address)
	}
}

func TestNormalize_PolicyDisabled(t *testing.T) {
	p := emailaddr.Policy{
		Primary: "example.edu",
	}

	assert.Equal(t, "te.st+tag@example.edu", emailaddr.Normalize("Te.St+Tag@example.edu", p))
}

func TestHash(t *testing.T) {
	p := gmailStylePolicy()

	t.Run("equivalent addresses share a hash", func(t *testing.T) {
		equivalent := []string{
			"test@example.edu",
			"Test@example.edu",
			"te.st@example.edu",
			"test+tag@example.edu",
			"te.st+tag@alias.example.edu",
			"test@mail.example.edu",
		}

		hashes := make(map[string]struct{})
		for _, address := range equivalent {
			hashes[emailaddr.Hash(address, p)] = struct{}{}
		}

		assert.Len(t, hashes, 1)
	})

	t.Run("distinct addresses get distinct hashes", func(t *testing.T) {
		a := emailaddr.Hash("alice@example.edu", p)
		b := emailaddr.Hash("bob@example.edu", p)

		assert.NotEqual(t, a, b)
	})

	t.Run("hash is hex sha-256", func(t *testing.T) {
		assert.Len(t, emailaddr.Hash("test@example.edu", p), 64)
	})
}

func TestValidForDomain(t *testing.T) {
	p := gmailStylePolicy()

	assert.True(t, emailaddr.ValidForDomain("test@example.edu", p))
	assert.True(t, emailaddr.ValidForDomain("test@alias.example.edu", p))
	assert.True(t, emailaddr.ValidForDomain("test@mail.example.edu", p))
	assert.False(t, emailaddr.ValidForDomain("test@other.edu", p))
	assert.False(t, emailaddr.ValidForDomain("not-an-email", p))
}
