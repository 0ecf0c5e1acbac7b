package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planets-api/internal/api/dto"
	"github.com/spec-kit/planets-api/internal/auth"
	"github.com/spec-kit/planets-api/internal/service"
	apperrors "github.com/spec-kit/planets-api/pkg/util"
)

// PlanetsHandler manages planet CRUD endpoints.
type PlanetsHandler struct {
	service *service.PlanetService
}

// NewPlanetsHandler constructs handler.
func NewPlanetsHandler(planetService *service.PlanetService) *PlanetsHandler {
	return &PlanetsHandler{service: planetService}
}

// List handles GET /planets. Public.
func (h *PlanetsHandler) List(c *fiber.Ctx) error {
	planets, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.PlanetResponse, 0, len(planets))
	for i := range planets {
		items = append(items, dto.NewPlanetResponse(&planets[i]))
	}
	return c.JSON(items)
}

// Get handles GET /planets/:id. Public.
func (h *PlanetsHandler) Get(c *fiber.Ctx) error {
	id, err := parsePlanetID(c)
	if err != nil {
		return err
	}
	planet, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlanetResponse(planet))
}

// Create handles POST /planets. Requires authentication.
func (h *PlanetsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreatePlanetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("invalid payload", validationFields(err))
	}

	planet, err := h.service.Create(c.Context(), identity.Username, service.PlanetCreateInput{
		Name:            req.Name,
		PlanetType:      req.PlanetType,
		DistanceFromSun: req.DistanceFromSun,
		Radius:          req.Radius,
		Mass:            req.Mass,
		OrbitalPeriod:   req.OrbitalPeriod,
		Description:     req.Description,
		Color:           req.Color,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPlanetResponse(planet))
}

// Update handles PUT /planets/:id. Requires authentication.
func (h *PlanetsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parsePlanetID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePlanetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("invalid payload", validationFields(err))
	}

	planet, err := h.service.Update(c.Context(), identity.Username, id, service.PlanetUpdateInput{
		Name:            req.Name,
		PlanetType:      req.PlanetType,
		DistanceFromSun: req.DistanceFromSun,
		Radius:          req.Radius,
		Mass:            req.Mass,
		OrbitalPeriod:   req.OrbitalPeriod,
		Description:     req.Description,
		Color:           req.Color,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPlanetResponse(planet))
}

// Delete handles DELETE /planets/:id. Requires authentication.
func (h *PlanetsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parsePlanetID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), identity.Username, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePlanetID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid planet id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
