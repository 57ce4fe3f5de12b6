package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// EventHandler handles calendar requests
type EventHandler struct {
	eventService ports.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService ports.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

func queryTime(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", entities.ErrValidation, name)
	}
	return &t, nil
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body      ports.CreateEventRequest  true  "Event"
// @Success      201    {object}  entities.ResolvedEvent
// @Failure      400    {object}  ErrorResponse
// @Router       /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        from   query     string  false  "Earliest start (RFC 3339, inclusive)"
// @Param        to     query     string  false  "Latest start (RFC 3339, exclusive)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {array}   entities.ResolvedEvent
// @Failure      400    {object}  ErrorResponse
// @Router       /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	var (
		filter ports.EventFilter
		err    error
	)
	if filter.From, err = queryTime(c, "from"); err != nil {
		return respondError(c, h.logger, err)
	}
	if filter.To, err = queryTime(c, "to"); err != nil {
		return respondError(c, h.logger, err)
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return respondError(c, h.logger, err)
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  entities.ResolvedEvent
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary      Partially update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id     path      string                    true  "Event ID"
// @Param        event  body      ports.UpdateEventRequest  true  "Fields to change"
// @Success      200    {object}  entities.ResolvedEvent
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req ports.UpdateEventRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.UpdateEvent(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  ports.MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Event deleted"})
}
