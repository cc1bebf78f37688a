package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	ClientName     string `json:"clientName" validate:"required"`
	CaseID         string `json:"caseId" validate:"required"`
	BirthDate      string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Address        string `json:"address"`
	TargetLanguage string `json:"targetLanguage"`
	AssignedTo     string `json:"assignedTo"`
}

type assignSpecialistRequest struct {
	FachkraftID string `json:"fachkraftId" validate:"required"`
}

// Create handles POST /clients (Verwaltung).
//
// @Summary      Create a client case record
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateClientInput{
		Name:               req.ClientName,
		CaseID:             req.CaseID,
		Address:            req.Address,
		TargetLanguage:     req.TargetLanguage,
		AssignedSpecialist: req.AssignedTo,
	}
	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid birth date")
		}
		input.BirthDate = &bd
	}

	client, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Assign handles PUT /clients/:id/assign (Verwaltung).
//
// @Summary      Assign a specialist to a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Client id"
// @Param        body  body      assignSpecialistRequest  true  "Specialist id"
// @Success      200   {object}  domain.Client
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/assign [put]
func (h *ClientHandler) Assign(c echo.Context) error {
	var req assignSpecialistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.Assign(c.Request().Context(), c.Param("id"), req.FachkraftID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// List handles GET /clients (Verwaltung).
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// ListMine handles GET /clients/mine (Fachkraft): the caller's assigned
// clients.
func (h *ClientHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	clients, err := h.service.ListMine(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// ListSpecialists handles GET /users/specialists (Verwaltung): active
// specialists for the assignment view.
func (h *ClientHandler) ListSpecialists(c echo.Context) error {
	users, err := h.service.ListSpecialists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
