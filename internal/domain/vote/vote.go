package vote

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateVote is returned by Insert when a vote for the same
// (voter, target) pair already exists.
var ErrDuplicateVote = errors.New("vote already cast for this pair")

// Vote is a directed daily "like" from one client to another. Votes are
// append-only; at most one vote per ordered (voter, target) pair ever exists,
// enforced by the store's uniqueness constraint.
type Vote struct {
	VoterID  uuid.UUID `json:"voter_id"`
	TargetID uuid.UUID `json:"target_id"`
	VotedOn  time.Time `json:"voted_on"`
}

// Outcome is the terminal result of casting a vote.
type Outcome string

const (
	// OutcomeVoted means the vote was recorded and no reciprocal vote exists.
	OutcomeVoted Outcome = "voted"
	// OutcomeMatched means the vote was recorded and completed a mutual pair.
	OutcomeMatched Outcome = "matched"
	// OutcomeAlreadyVoted means the pair was voted before; nothing changed.
	OutcomeAlreadyVoted Outcome = "already_voted"
	// OutcomeQuotaExceeded means the voter hit the daily limit; nothing changed.
	OutcomeQuotaExceeded Outcome = "quota_exceeded"
)

// Ledger stores and queries directed votes.
type Ledger interface {
	// Insert persists a vote, returning ErrDuplicateVote when the ordered
	// pair already exists.
	Insert(ctx context.Context, v Vote) error
	Exists(ctx context.Context, voterID, targetID uuid.UUID) (bool, error)
	CountByVoterOnDate(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error)
}
