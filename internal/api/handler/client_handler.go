package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// ClientHandler serves the admin-only client account management routes.
// The admin Auth middleware runs before every one of these.
type ClientHandler struct {
	clients ports.ClientDirectory
}

func NewClientHandler(clients ports.ClientDirectory) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientCreateRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
}

type clientUpdateRequest struct {
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
}

// Create provisions a new client account.
//
// @Summary      Create client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      clientCreateRequest  true  "Client account details"
// @Success      201   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.clients.Create(c.Request().Context(), ports.ClientCreateInput{
		Username:    req.Username,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns all client accounts, newest first.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200   {array}   domain.Identity
// @Failure      401   {object}  map[string]string
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context())
	if err != nil {
		return err
	}
	if clients == nil {
		clients = []domain.Identity{}
	}
	return c.JSON(http.StatusOK, clients)
}

// Get returns one client account.
//
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        id    path      string  true  "Client ID"
// @Success      200   {object}  domain.Identity
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	identity, err := h.clients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Update rewrites a client's profile fields.
//
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Client ID"
// @Param        body  body      clientUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.Identity
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.clients.Update(c.Request().Context(), c.Param("id"), ports.ClientUpdateInput{
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Deactivate soft-deletes a client account. The record stays in the store
// but no longer matches at login.
//
// @Summary      Deactivate client
// @Tags         clients
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Deactivate(c echo.Context) error {
	if err := h.clients.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
