package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// ContactHandler handles address book requests
type ContactHandler struct {
	contactService ports.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService ports.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// CreateContact godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      ports.CreateContactRequest  true  "Contact"
// @Success      201      {object}  entities.Contact
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /contacts [post]
func (h *ContactHandler) CreateContact(c echo.Context) error {
	var req ports.CreateContactRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	contact, err := h.contactService.CreateContact(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, contact)
}

// ListContacts godoc
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Param        search  query     string  false  "Substring of name, email or phone"
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {array}   entities.Contact
// @Router       /contacts [get]
func (h *ContactHandler) ListContacts(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return respondError(c, h.logger, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	contacts, err := h.contactService.ListContacts(c.Request().Context(), ports.ContactFilter{
		Search: queryString(c, "search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, contacts)
}

// GetContact godoc
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  entities.Contact
// @Failure      404  {object}  ErrorResponse
// @Router       /contacts/{id} [get]
func (h *ContactHandler) GetContact(c echo.Context) error {
	contact, err := h.contactService.GetContact(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  ports.MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	if err := h.contactService.DeleteContact(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Contact deleted"})
}
