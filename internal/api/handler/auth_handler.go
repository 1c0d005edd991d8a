package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// AuthHandler serves login, whoami, and logout for one realm. The same
// handler type backs /api/admin/auth and /api/client/auth; only the injected
// service and realm differ.
type AuthHandler struct {
	authService ports.AuthService
	realm       domain.Realm
}

func NewAuthHandler(authService ports.AuthService, realm domain.Realm) *AuthHandler {
	return &AuthHandler{authService: authService, realm: realm}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the realm in its field name: admin logins return the
// identity under "admin", client logins under "client".
type loginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	Admin       *domain.Identity `json:"admin,omitempty"`
	Client      *domain.Identity `json:"client,omitempty"`
}

type logoutResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Login authenticates a user against the realm store and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, identity, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	resp := loginResponse{AccessToken: token, TokenType: "bearer"}
	if h.realm == domain.RealmAdmin {
		resp.Admin = identity
	} else {
		resp.Client = identity
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the caller's current identity, re-read from the realm store so
// edits and deactivations since token issuance are reflected.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200   {object}  domain.Identity
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	identity, err := h.authService.WhoAmI(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Logout acknowledges a client-side token discard. Tokens are stateless
// bearer credentials; nothing is revoked server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200   {object}  logoutResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{
		Message:   "Successfully logged out",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Status reports the authenticated client's claim set and static permission
// grants, as consumed by the client UI.
//
// @Summary      Client status
// @Tags         auth
// @Produce      json
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"client_id":    claims.SubjectID,
		"username":     claims.Username,
		"company_name": claims.CompanyName,
		"status":       "active",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"permissions": map[string]bool{
			"view_cameras":    true,
			"receive_alerts":  true,
			"control_ptz":     true,
			"view_recordings": true,
		},
	})
}
