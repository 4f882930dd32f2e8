package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kindled/kindled/internal/domain/vote"
)

type postgresVoteLedger struct {
	db *pgxpool.Pool
}

func NewPostgresVoteLedger(db *pgxpool.Pool) vote.Ledger {
	return &postgresVoteLedger{db: db}
}

// Insert appends one vote. The primary key on (voter_id, target_id) makes
// duplicate casts a constraint violation, reported as ErrDuplicateVote so
// concurrent casts for the same pair stay idempotent.
func (r *postgresVoteLedger) Insert(ctx context.Context, v vote.Vote) error {
	query := `INSERT INTO votes (voter_id, target_id, voted_on) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, v.VoterID, v.TargetID, v.VotedOn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return vote.ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (r *postgresVoteLedger) Exists(ctx context.Context, voterID, targetID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM votes WHERE voter_id = $1 AND target_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, voterID, targetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query vote existence: %w", err)
	}
	return exists, nil
}

func (r *postgresVoteLedger) CountByVoterOnDate(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM votes WHERE voter_id = $1 AND voted_on = $2`
	var count int
	if err := r.db.QueryRow(ctx, query, voterID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
