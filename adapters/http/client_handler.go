package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientUC "github.com/kindled/kindled/internal/application/usecase/client"
	"github.com/kindled/kindled/internal/domain/client"
	"github.com/kindled/kindled/pkg/apperror"
)

type ClientHandler struct {
	getUseCase    *clientUC.GetClientUseCase
	updateUseCase *clientUC.UpdateClientUseCase
	deleteUseCase *clientUC.DeleteClientUseCase
	listUseCase   *clientUC.ListClientsUseCase
}

func NewClientHandler(
	getUC *clientUC.GetClientUseCase,
	updateUC *clientUC.UpdateClientUseCase,
	deleteUC *clientUC.DeleteClientUseCase,
	listUC *clientUC.ListClientsUseCase,
) *ClientHandler {
	return &ClientHandler{
		getUseCase:    getUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
		listUseCase:   listUC,
	}
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid client id", err))
		return
	}

	output, err := h.getUseCase.Execute(c.Request.Context(), clientUC.GetClientInput{ClientID: id})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToClientDTO(output.Client))
}

// UpdateClient accepts a multipart form with any subset of profile fields
// and an optional replacement photo.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	callerID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("client identity not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid client id", err))
		return
	}

	input := clientUC.UpdateClientInput{
		CallerID: callerID,
		ClientID: id,
		Email:    optionalStringForm(c, "email"),
		Password: optionalStringForm(c, "password"),
		Name:     optionalStringForm(c, "name"),
		Surname:  optionalStringForm(c, "surname"),
		Sex:      optionalStringForm(c, "sex"),
	}

	if input.Latitude, err = optionalFloatForm(c, "latitude"); err != nil {
		c.Error(apperror.NewInvalidInput("latitude must be a number", err))
		return
	}
	if input.Longitude, err = optionalFloatForm(c, "longitude"); err != nil {
		c.Error(apperror.NewInvalidInput("longitude must be a number", err))
		return
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

	output, err := h.updateUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToClientDTO(output.Client))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	callerID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("client identity not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid client id", err))
		return
	}

	err = h.deleteUseCase.Execute(c.Request.Context(), clientUC.DeleteClientInput{
		CallerID: callerID,
		ClientID: id,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListClients handles the directory query. When radius_km is supplied
// without explicit origin coordinates, the caller's own stored location is
// used as the origin.
func (h *ClientHandler) ListClients(c *gin.Context) {
	callerID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("client identity not found in context"))
		return
	}

	filter := client.ListFilter{
		Sex:     optionalStringQuery(c, "sex"),
		Name:    optionalStringQuery(c, "name"),
		Surname: optionalStringQuery(c, "surname"),
	}

	var err error
	if filter.RegisteredFrom, err = optionalDateQuery(c, "start_date"); err != nil {
		c.Error(apperror.NewInvalidInput("start_date must be YYYY-MM-DD", err))
		return
	}
	if filter.RegisteredTo, err = optionalDateQuery(c, "end_date"); err != nil {
		c.Error(apperror.NewInvalidInput("end_date must be YYYY-MM-DD", err))
		return
	}

	if sortBy := c.Query("sort_by"); sortBy != "" {
		if sortBy != "registration_date" {
			c.Error(apperror.NewInvalidInput("sort_by supports only 'registration_date'", nil))
			return
		}
		filter.SortByDate = true
	}

	input := clientUC.ListClientsInput{Filter: filter}

	radius, err := optionalFloatQuery(c, "radius_km")
	if err != nil {
		c.Error(apperror.NewInvalidInput("radius_km must be a number", err))
		return
	}
	if radius != nil {
		originLat, err := optionalFloatQuery(c, "origin_lat")
		if err != nil {
			c.Error(apperror.NewInvalidInput("origin_lat must be a number", err))
			return
		}
		originLon, err := optionalFloatQuery(c, "origin_lon")
		if err != nil {
			c.Error(apperror.NewInvalidInput("origin_lon must be a number", err))
			return
		}

		if originLat == nil || originLon == nil {
			caller, err := h.getUseCase.Execute(c.Request.Context(), clientUC.GetClientInput{ClientID: callerID})
			if err != nil {
				c.Error(err)
				return
			}
			lat, lon, ok := caller.Client.Location()
			if !ok {
				c.Error(apperror.NewInvalidInput("caller has no stored location; provide origin_lat and origin_lon", nil))
				return
			}
			originLat, originLon = &lat, &lon
		}

		input.Proximity = &clientUC.Proximity{
			OriginLat: *originLat,
			OriginLon: *originLon,
			RadiusKm:  *radius,
		}
	}

	output, err := h.listUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": ToClientDTOs(output.Clients)})
}

func optionalStringForm(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok && v != "" {
		return &v
	}
	return nil
}

func optionalStringQuery(c *gin.Context, field string) *string {
	if v, ok := c.GetQuery(field); ok && v != "" {
		return &v
	}
	return nil
}

func optionalFloatQuery(c *gin.Context, field string) (*float64, error) {
	raw, ok := c.GetQuery(field)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalDateQuery(c *gin.Context, field string) (*time.Time, error) {
	raw, ok := c.GetQuery(field)
	if !ok || raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
