package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindled/kindled/internal/application/service"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/auth"
	"github.com/kindled/kindled/pkg/logger"
)

type RegisterClientUseCase struct {
	clientRepo client.Repository
	uploader   service.Uploader
	logger     logger.Logger
}

func NewRegisterClientUseCase(repo client.Repository, uploader service.Uploader, log logger.Logger) *RegisterClientUseCase {
	return &RegisterClientUseCase{
		clientRepo: repo,
		uploader:   uploader,
		logger:     log,
	}
}

type RegisterClientInput struct {
	Email     string
	Password  string
	Name      string
	Surname   string
	Sex       string
	Latitude  *float64
	Longitude *float64
	Photo     io.Reader
}

type RegisterClientOutput struct {
	Client *client.Client
}

func (uc *RegisterClientUseCase) Execute(ctx context.Context, input RegisterClientInput) (*RegisterClientOutput, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newClient := &client.Client{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Surname:      input.Surname,
		Sex:          input.Sex,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		RegisteredOn: time.Now().UTC(),
	}

	var photoPublicID string
	if input.Photo != nil {
		folder := fmt.Sprintf("clients/%s", newClient.ID.String())
		photoPublicID = newClient.ID.String()

		if _, err := uc.uploader.Upload(ctx, input.Photo, folder, photoPublicID); err != nil {
			return nil, apperror.NewInternal("failed to upload profile photo", err)
		}

		url, err := uc.uploader.WatermarkedURL(photoPublicID)
		if err != nil {
			return nil, apperror.NewInternal("failed to build photo URL", err)
		}
		newClient.PhotoURL = &url
		newClient.PhotoPublicID = &photoPublicID
	}

	if err := uc.clientRepo.Save(ctx, newClient); err != nil {
		if photoPublicID != "" {
			go uc.uploader.Delete(context.Background(), photoPublicID)
		}
		if errors.Is(err, client.ErrEmailTaken) {
			return nil, apperror.NewConflict("client", "email", input.Email)
		}
		return nil, apperror.NewInternal("failed to save client", err)
	}

	uc.logger.Info("Registered new client", zap.String("client_id", newClient.ID.String()))
	return &RegisterClientOutput{Client: newClient}, nil
}

func validateCoordinates(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return apperror.NewInvalidInput("latitude and longitude must be provided together", nil)
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return apperror.NewInvalidInput(fmt.Sprintf("latitude %v out of range [-90,90]", *lat), nil)
	}
	if *lon < -180 || *lon > 180 {
		return apperror.NewInvalidInput(fmt.Sprintf("longitude %v out of range [-180,180]", *lon), nil)
	}
	return nil
}
