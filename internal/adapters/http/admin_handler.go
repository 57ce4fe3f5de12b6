package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// AdminHandler handles administrative authentication
type AdminHandler struct {
	adminService ports.AdminService
	logger       *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService ports.AdminService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// Login godoc
// @Summary      Obtain an admin token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        credentials  body      ports.AdminLoginRequest  true  "Admin password"
// @Success      200          {object}  ports.TokenResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  ErrorResponse
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req ports.AdminLoginRequest
	if err := bindStrict(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	token, err := h.adminService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.LogSecurityEvent("admin_login_failed", "admin", c.RealIP(), nil)
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, token)
}
