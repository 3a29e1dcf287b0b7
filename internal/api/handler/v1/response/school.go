package response

import (
	"time"

	"github.com/voterbowl/backend/internal/domain"
)

type School struct {
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	ShortName        string `json:"short_name"`
	Mascot           string `json:"mascot"`
	MailDomain       string `json:"mail_domain"`
	PercentVoted2020 int    `json:"percent_voted_2020"`
}

func NewSchool(s domain.School) School {
	return School{
		Name:             s.Name,
		Slug:             s.Slug,
		ShortName:        s.ShortName,
		Mascot:           s.Mascot,
		MailDomain:       s.MailDomain,
		PercentVoted2020: s.PercentVoted2020,
	}
}

type Contest struct {
	ID      uint      `json:"id"`
	Kind    string    `json:"kind"`
	Amount  int       `json:"amount"`
	InN     int       `json:"in_n"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
}

func NewContest(c *domain.Contest, now time.Time) *Contest {
	if c == nil {
		return nil
	}

	return &Contest{
		ID:      c.ID,
		Kind:    string(c.Kind),
		Amount:  c.Amount,
		InN:     c.InN,
		StartAt: c.StartAt,
		EndAt:   c.EndAt,
		Status:  string(c.Status(now)),
	}
}

type GetSchoolResponse struct {
	School School `json:"school"`

	// CurrentContest is null when no contest is running.
	CurrentContest *Contest `json:"current_contest"`

	// RecentContest is the most recently ended contest, for the
	// "you missed it" state on the landing page.
	RecentContest *Contest `json:"recent_contest"`
}
