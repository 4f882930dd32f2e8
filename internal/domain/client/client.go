package client

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrEmailTaken     = errors.New("email already registered")
)

// Client is a registered participant. Email is the identity key; geolocation
// and profile photo are optional.
type Client struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Sex           string    `json:"sex"`
	PhotoURL      *string   `json:"photo_url"`
	PhotoPublicID *string   `json:"-"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	RegisteredOn  time.Time `json:"registered_on"`
}

// Location implements geo.Located.
func (c *Client) Location() (lat, lon float64, ok bool) {
	if c.Latitude == nil || c.Longitude == nil {
		return 0, 0, false
	}
	return *c.Latitude, *c.Longitude, true
}

// ListFilter holds the optional, conjunctive directory filters.
type ListFilter struct {
	Sex            *string
	Name           *string
	Surname        *string
	RegisteredFrom *time.Time
	RegisteredTo   *time.Time
	SortByDate     bool
}

type Repository interface {
	Save(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
}
