package client

import (
	"context"

	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
	"github.com/kindled/kindled/pkg/geo"
)

// ListClientsUseCase composes the directory query: attribute filters and
// sort run in the store, the optional proximity stage runs last over the
// surviving rows so it never reorders them.
type ListClientsUseCase struct {
	clientRepo client.Repository
	distances  *geo.DistanceCache
}

func NewListClientsUseCase(repo client.Repository, distances *geo.DistanceCache) *ListClientsUseCase {
	return &ListClientsUseCase{
		clientRepo: repo,
		distances:  distances,
	}
}

// Proximity restricts results to candidates within RadiusKm of the origin.
// Origin and radius always travel together; resolving "use the caller's own
// location" is the HTTP layer's job.
type Proximity struct {
	OriginLat float64
	OriginLon float64
	RadiusKm  float64
}

type ListClientsInput struct {
	Filter    client.ListFilter
	Proximity *Proximity
}

type ListClientsOutput struct {
	Clients []*client.Client
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, input ListClientsInput) (*ListClientsOutput, error) {
	if input.Proximity != nil {
		p := input.Proximity
		if p.RadiusKm <= 0 {
			return nil, apperror.NewInvalidInput("radius must be a positive number of kilometers", nil)
		}
		if p.OriginLat < -90 || p.OriginLat > 90 || p.OriginLon < -180 || p.OriginLon > 180 {
			return nil, apperror.NewInvalidInput("origin coordinates out of range", nil)
		}
	}

	clients, err := uc.clientRepo.List(ctx, input.Filter)
	if err != nil {
		return nil, apperror.NewInternal("failed to list clients", err)
	}

	if input.Proximity != nil {
		var dist geo.DistanceFunc
		if uc.distances != nil {
			dist = uc.distances.Distance
		}
		p := input.Proximity
		clients = geo.WithinRadius(clients, p.OriginLat, p.OriginLon, p.RadiusKm, dist)
	}

	return &ListClientsOutput{Clients: clients}, nil
}
