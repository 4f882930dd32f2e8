package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/internal/domain/vote"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/logger"
)

// CastVoteUseCase records a directed like, detects mutual matches and
// triggers match notifications. Quota enforcement is best-effort under
// concurrency; the one-vote-per-pair invariant is enforced by the ledger's
// uniqueness constraint.
type CastVoteUseCase struct {
	clientRepo client.Repository
	votes      vote.Ledger
	quota      service.QuotaCounter
	notifier   service.Notifier
	logger     logger.Logger
	dailyLimit int
	now        func() time.Time
}

func NewCastVoteUseCase(
	cRepo client.Repository,
	votes vote.Ledger,
	quota service.QuotaCounter,
	notifier service.Notifier,
	log logger.Logger,
	dailyLimit int,
) *CastVoteUseCase {
	return &CastVoteUseCase{
		clientRepo: cRepo,
		votes:      votes,
		quota:      quota,
		notifier:   notifier,
		logger:     log,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

type CastVoteInput struct {
	VoterID  uuid.UUID
	TargetID uuid.UUID
}

type CastVoteOutput struct {
	Outcome vote.Outcome
}

func (uc *CastVoteUseCase) Execute(ctx context.Context, input CastVoteInput) (*CastVoteOutput, error) {
	if input.VoterID == input.TargetID {
		return nil, apperror.NewPermissionDenied("voting for yourself is not allowed")
	}

	voter, err := uc.clientRepo.FindByID(ctx, input.VoterID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperror.NewNotFound("client", input.VoterID.String())
		}
		return nil, apperror.NewInternal("failed to resolve voter", err)
	}

	target, err := uc.clientRepo.FindByID(ctx, input.TargetID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperror.NewNotFound("client", input.TargetID.String())
		}
		return nil, apperror.NewInternal("failed to resolve target", err)
	}

	today := dateOnly(uc.now().UTC())

	exceeded, err := uc.quotaReached(ctx, input.VoterID, today)
	if err != nil {
		return nil, err
	}
	if exceeded {
		return &CastVoteOutput{Outcome: vote.OutcomeQuotaExceeded}, nil
	}

	voted, err := uc.votes.Exists(ctx, input.VoterID, input.TargetID)
	if err != nil {
		return nil, apperror.NewInternal("failed to look up existing vote", err)
	}
	if voted {
		return &CastVoteOutput{Outcome: vote.OutcomeAlreadyVoted}, nil
	}

	reciprocal, err := uc.votes.Exists(ctx, input.TargetID, input.VoterID)
	if err != nil {
		return nil, apperror.NewInternal("failed to look up reciprocal vote", err)
	}

	err = uc.votes.Insert(ctx, vote.Vote{
		VoterID:  input.VoterID,
		TargetID: input.TargetID,
		VotedOn:  today,
	})
	if err != nil {
		// A concurrent cast for the same pair lands here via the unique
		// constraint.
		if errors.Is(err, vote.ErrDuplicateVote) {
			return &CastVoteOutput{Outcome: vote.OutcomeAlreadyVoted}, nil
		}
		return nil, apperror.NewInternal("failed to record vote", err)
	}

	if uc.quota != nil {
		if err := uc.quota.Incr(ctx, input.VoterID, today); err != nil {
			uc.logger.Warn("Failed to bump quota counter", zap.String("voter_id", input.VoterID.String()), zap.Error(err))
		}
	}

	if !reciprocal {
		return &CastVoteOutput{Outcome: vote.OutcomeVoted}, nil
	}

	uc.notifyMatch(voter, target)
	return &CastVoteOutput{Outcome: vote.OutcomeMatched}, nil
}

// quotaReached consults the fast-path counter first, then the ledger. A race
// letting one extra vote past the limit is tolerated.
func (uc *CastVoteUseCase) quotaReached(ctx context.Context, voterID uuid.UUID, today time.Time) (bool, error) {
	if uc.quota != nil {
		if n, err := uc.quota.Count(ctx, voterID, today); err == nil && n >= uc.dailyLimit {
			return true, nil
		}
	}

	count, err := uc.votes.CountByVoterOnDate(ctx, voterID, today)
	if err != nil {
		return false, apperror.NewInternal("failed to count today's votes", err)
	}
	return count >= uc.dailyLimit, nil
}

// notifyMatch queues one notification per side. Fire-and-forget: the vote is
// already durable, delivery failure only gets logged.
func (uc *CastVoteUseCase) notifyMatch(voter, target *client.Client) {
	notifications := []service.Notification{
		{
			Subject:   "You have a new match!",
			Body:      fmt.Sprintf("%s liked you back. Reach out at %s.", target.Name, target.Email),
			Recipient: voter.Email,
		},
		{
			Subject:   "You have a new match!",
			Body:      fmt.Sprintf("%s liked you back. Reach out at %s.", voter.Name, voter.Email),
			Recipient: target.Email,
		},
	}

	go func() {
		for _, n := range notifications {
			if err := uc.notifier.Notify(context.Background(), n); err != nil {
				uc.logger.Error("Failed to queue match notification", err, zap.String("recipient", n.Recipient))
			}
		}
	}()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
