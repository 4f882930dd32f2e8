package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/logger"
)

type DeleteClientUseCase struct {
	clientRepo client.Repository
	uploader   service.Uploader
	logger     logger.Logger
}

func NewDeleteClientUseCase(repo client.Repository, uploader service.Uploader, log logger.Logger) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo: repo,
		uploader:   uploader,
		logger:     log,
	}
}

type DeleteClientInput struct {
	CallerID uuid.UUID
	ClientID uuid.UUID
}

// Execute removes the account. Vote rows cascade with the client row; the
// stored photo is released best-effort after the delete commits.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, input DeleteClientInput) error {
	if input.CallerID != input.ClientID {
		return apperror.NewPermissionDenied("clients may only delete their own profile")
	}

	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return apperror.NewNotFound("client", input.ClientID.String())
		}
		return apperror.NewInternal("failed to query client", err)
	}

	if err := uc.clientRepo.Delete(ctx, input.ClientID); err != nil {
		return apperror.NewInternal("failed to delete client", err)
	}

	if c.PhotoPublicID != nil {
		id := *c.PhotoPublicID
		go func() {
			if err := uc.uploader.Delete(context.Background(), id); err != nil {
				uc.logger.Warn("Failed to delete profile photo of removed client", zap.String("public_id", id), zap.Error(err))
			}
		}()
	}

	uc.logger.Info("Deleted client", zap.String("client_id", input.ClientID.String()))
	return nil
}
