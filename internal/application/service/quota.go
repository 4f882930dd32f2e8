package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QuotaCounter is a fast-path counter of votes cast per voter per calendar
// day. It is an approximation; the vote ledger's count stays authoritative.
type QuotaCounter interface {
	Count(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error)
	Incr(ctx context.Context, voterID uuid.UUID, day time.Time) error
}
