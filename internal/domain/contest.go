package domain

import (
	"fmt"
	"time"
)

type ContestKind string

const (
	KindGiveaway     ContestKind = "giveaway"
	KindDiceRoll     ContestKind = "dice_roll"
	KindSingleWinner ContestKind = "single_winner"
	KindNoPrize      ContestKind = "no_prize"
)

type ContestStatus string

const (
	ContestUpcoming ContestStatus = "upcoming"
	ContestOngoing  ContestStatus = "ongoing"
	ContestPast     ContestStatus = "past"
)

// Contest is a prize window for one school. Status is always derived
// from the clock; there is no stored state field.
type Contest struct {
	ID       uint   `json:"id"`
	SchoolID uint   `json:"school_id"`
	Name     string `json:"name"`

	// The contest is ongoing over the half-open interval [StartAt, EndAt).
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Kind ContestKind `json:"kind"`

	// 1 in InN entrants win a prize. Always 1 for giveaways.
	InN int `json:"in_n"`

	// Amount of the prize in whole dollars; 0 when no money is at stake.
	Amount int `json:"amount"`

	Prize     string `json:"prize"`
	PrizeLong string `json:"prize_long"`
}

// Status derives the lifecycle phase at the given instant.
func (c Contest) Status(now time.Time) ContestStatus {
	switch {
	case now.Before(c.StartAt):
		return ContestUpcoming
	case now.Before(c.EndAt):
		return ContestOngoing
	default:
		return ContestPast
	}
}

func (c Contest) IsUpcoming(now time.Time) bool { return c.Status(now) == ContestUpcoming }
func (c Contest) IsOngoing(now time.Time) bool  { return c.Status(now) == ContestOngoing }
func (c Contest) IsPast(now time.Time) bool     { return c.Status(now) == ContestPast }

// Validate enforces the kind invariants at creation time.
func (c Contest) Validate() error {
	switch c.Kind {
	case KindGiveaway:
		if c.InN != 1 {
			return fmt.Errorf("giveaway contest must have in_n == 1, got %d", c.InN)
		}
	case KindDiceRoll:
		if c.InN < 1 {
			return fmt.Errorf("dice roll contest must have in_n >= 1, got %d", c.InN)
		}
	case KindNoPrize:
		if c.Amount != 0 {
			return fmt.Errorf("no-prize contest must have amount == 0, got %d", c.Amount)
		}
	case KindSingleWinner:
	default:
		return fmt.Errorf("unknown contest kind %q", c.Kind)
	}

	if !c.EndAt.After(c.StartAt) {
		return fmt.Errorf("contest must end after it starts")
	}

	return nil
}
