package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authUC "github.com/kindled/kindled/internal/application/usecase/auth"
	clientUC "github.com/kindled/kindled/internal/application/usecase/client"
	"github.com/kindled/kindled/pkg/apperror"
)

type AuthHandler struct {
	loginUseCase    *authUC.LoginUseCase
	registerUseCase *clientUC.RegisterClientUseCase
}

func NewAuthHandler(loginUC *authUC.LoginUseCase, registerUC *clientUC.RegisterClientUseCase) *AuthHandler {
	return &AuthHandler{
		loginUseCase:    loginUC,
		registerUseCase: registerUC,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
		"token_type":   "bearer",
	})
}

// Register creates a new client from a multipart form with an optional
// profile photo.
func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	name := c.PostForm("name")
	surname := c.PostForm("surname")
	sex := c.PostForm("sex")

	if email == "" || password == "" || sex == "" {
		c.Error(apperror.NewInvalidInput("email, password and sex are required", nil))
		return
	}

	lat, err := optionalFloatForm(c, "latitude")
	if err != nil {
		c.Error(apperror.NewInvalidInput("latitude must be a number", err))
		return
	}
	lon, err := optionalFloatForm(c, "longitude")
	if err != nil {
		c.Error(apperror.NewInvalidInput("longitude must be a number", err))
		return
	}

	input := clientUC.RegisterClientInput{
		Email:     email,
		Password:  password,
		Name:      name,
		Surname:   surname,
		Sex:       sex,
		Latitude:  lat,
		Longitude: lon,
	}

	photo, err := openFormFile(c, "photo")
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read photo upload", err))
		return
	}
	if photo != nil {
		defer photo.Close()
		input.Photo = photo
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToClientDTO(output.Client))
}

func optionalFloatForm(c *gin.Context, field string) (*float64, error) {
	raw, ok := c.GetPostForm(field)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func openFormFile(c *gin.Context, field string) (multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return header.Open()
}
