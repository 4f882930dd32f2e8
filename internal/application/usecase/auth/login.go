package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/auth"
	"github.com/kindled/kindled/pkg/logger"
)

type LoginUseCase struct {
	clientRepo client.Repository
	jwtSvc     *auth.JWTService
	logger     logger.Logger
}

func NewLoginUseCase(repo client.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		clientRepo: repo,
		jwtSvc:     jwtSvc,
		logger:     log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	c, err := uc.clientRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperror.NewUnauthorized("unknown email", nil)
		}
		return nil, apperror.NewInternal("failed to query client", err)
	}

	if !auth.CheckPasswordHash(input.Password, c.PasswordHash) {
		return nil, apperror.NewUnauthorized("incorrect password", nil)
	}

	token, err := uc.jwtSvc.GenerateToken(c.ID, c.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("client_id", c.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{AccessToken: token}, nil
}
