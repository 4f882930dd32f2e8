package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/auth"
	"github.com/kindled/kindled/pkg/logger"
)

type UpdateClientUseCase struct {
	clientRepo client.Repository
	uploader   service.Uploader
	logger     logger.Logger
}

func NewUpdateClientUseCase(repo client.Repository, uploader service.Uploader, log logger.Logger) *UpdateClientUseCase {
	return &UpdateClientUseCase{
		clientRepo: repo,
		uploader:   uploader,
		logger:     log,
	}
}

// UpdateClientInput carries the caller identity and the subset of fields to
// change. Nil fields are left untouched; the identifier and registration
// date are immutable.
type UpdateClientInput struct {
	CallerID  uuid.UUID
	ClientID  uuid.UUID
	Email     *string
	Password  *string
	Name      *string
	Surname   *string
	Sex       *string
	Latitude  *float64
	Longitude *float64
	Photo     io.Reader
}

type UpdateClientOutput struct {
	Client *client.Client
}

func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*UpdateClientOutput, error) {
	if input.CallerID != input.ClientID {
		return nil, apperror.NewPermissionDenied("clients may only update their own profile")
	}

	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperror.NewNotFound("client", input.ClientID.String())
		}
		return nil, apperror.NewInternal("failed to query client", err)
	}

	if input.Email != nil {
		c.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, apperror.NewInternal("failed to hash password", err)
		}
		c.PasswordHash = hash
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Surname != nil {
		c.Surname = *input.Surname
	}
	if input.Sex != nil {
		c.Sex = *input.Sex
	}
	if input.Latitude != nil || input.Longitude != nil {
		if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
			return nil, err
		}
		c.Latitude = input.Latitude
		c.Longitude = input.Longitude
	}

	var oldPhotoID *string
	if input.Photo != nil {
		folder := fmt.Sprintf("clients/%s", c.ID.String())
		publicID := uuid.New().String()

		if _, err := uc.uploader.Upload(ctx, input.Photo, folder, publicID); err != nil {
			return nil, apperror.NewInternal("failed to upload profile photo", err)
		}

		url, err := uc.uploader.WatermarkedURL(publicID)
		if err != nil {
			return nil, apperror.NewInternal("failed to build photo URL", err)
		}

		oldPhotoID = c.PhotoPublicID
		c.PhotoURL = &url
		c.PhotoPublicID = &publicID
	}

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		if errors.Is(err, client.ErrEmailTaken) {
			return nil, apperror.NewConflict("client", "email", c.Email)
		}
		return nil, apperror.NewInternal("failed to update client", err)
	}

	if oldPhotoID != nil {
		id := *oldPhotoID
		go func() {
			if err := uc.uploader.Delete(context.Background(), id); err != nil {
				uc.logger.Warn("Failed to delete replaced profile photo", zap.String("public_id", id), zap.Error(err))
			}
		}()
	}

	return &UpdateClientOutput{Client: c}, nil
}
