package client

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
)

type GetClientUseCase struct {
	clientRepo client.Repository
}

func NewGetClientUseCase(repo client.Repository) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: repo}
}

type GetClientInput struct {
	ClientID uuid.UUID
}

type GetClientOutput struct {
	Client *client.Client
}

func (uc *GetClientUseCase) Execute(ctx context.Context, input GetClientInput) (*GetClientOutput, error) {
	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperror.NewNotFound("client", input.ClientID.String())
		}
		return nil, apperror.NewInternal("failed to query client", err)
	}
	return &GetClientOutput{Client: c}, nil
}
