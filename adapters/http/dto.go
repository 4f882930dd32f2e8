package http

import (
	"time"

	"github.com/kindled/kindled/internal/domain/client"
)

// ClientDTO is the public projection of a client; credential material never
// leaves the domain layer.
type ClientDTO struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	Sex          string   `json:"sex"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RegisteredOn string   `json:"registered_on"`
}

func ToClientDTO(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:           c.ID.String(),
		Email:        c.Email,
		Name:         c.Name,
		Surname:      c.Surname,
		Sex:          c.Sex,
		PhotoURL:     c.PhotoURL,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		RegisteredOn: c.RegisteredOn.Format(time.DateOnly),
	}
}

func ToClientDTOs(clients []*client.Client) []ClientDTO {
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ToClientDTO(c)
	}
	return dtos
}
