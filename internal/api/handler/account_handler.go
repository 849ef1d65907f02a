package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thapelomagqazana/accounts-api/internal/api/metrics"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

// Default pagination applied when the query string omits skip/limit.
const (
	defaultListSkip  = 0
	defaultListLimit = 100
)

// AccountHandler handles HTTP requests for account CRUD.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create registers a new account. No authentication required.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(account.Role).Inc()
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// List returns one page of accounts. No authentication required.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Param        skip   query     int  false  "Rows to skip"       default(0)
// @Param        limit  query     int  false  "Max rows per page"  default(100)
// @Success      200    {array}   accountResponse
// @Failure      400    {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	skip, err := queryInt(c, "skip", defaultListSkip)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "skip must be an integer")
	}
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	accounts, err := h.service.List(c.Request().Context(), ports.ListAccountsInput{Skip: skip, Limit: limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountListResponse(accounts))
}

// Get returns a single account by id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	if _, err := ctxRequester(c); err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Update applies a partial update to an account. Owner or admin only.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Update(c.Request().Context(), requester, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Delete permanently removes an account. Owner or admin only.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), requester, c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
