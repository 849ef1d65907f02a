package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thapelomagqazana/accounts-api/internal/api/metrics"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for signin and signout.
type AuthHandler struct {
	service ports.AccountService
}

func NewAuthHandler(service ports.AccountService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signin authenticates credentials and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.service.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, signinResponse{AccessToken: token, TokenType: "bearer"})
}

// Signout acknowledges a signout. Tokens are stateless: nothing is
// invalidated server-side and repeating the call with the same still-valid
// token succeeds every time.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  signoutResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	if err := h.service.SignOut(c.Request().Context(), requester); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signoutResponse{Message: "signed out"})
}
