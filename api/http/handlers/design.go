package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/buildings/api/http/presenter"
	"github.com/artem13815/buildings/pkg/design"
	"github.com/artem13815/buildings/pkg/security/jwt"
)

type DesignHandler struct {
	uc design.UseCase
}

func NewDesignHandler(uc design.UseCase) *DesignHandler { return &DesignHandler{uc: uc} }

// @Summary  List buildings
// @Tags     design
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} design.Building
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /api/buildings [get]
func (h *DesignHandler) ListBuildings(c *fiber.Ctx) error {
	items, err := h.uc.ListBuildings(c.UserContext())
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// @Summary  Create building
// @Tags     design
// @Accept   json
// @Produce  json
// @Param    input body object true "building"
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /api/buildings [post]
func (h *DesignHandler) CreateBuilding(c *fiber.Ctx) error {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Authentication required")
	}
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	created, err := h.uc.CreateBuilding(c.UserContext(), id.Email, data)
	if err != nil {
		var verr design.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return err
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "success", "data": created})
}

// @Summary  List projects
// @Tags     design
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} design.Project
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /api/projects [get]
func (h *DesignHandler) ListProjects(c *fiber.Ctx) error {
	items, err := h.uc.ListProjects(c.UserContext())
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// CurrentUser returns the identity resolved from the token.
// @Summary  Current user
// @Tags     design
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} jwt.Identity
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /api/user [get]
func (h *DesignHandler) CurrentUser(c *fiber.Ctx) error {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Authentication required")
	}
	return presenter.JSON(c, http.StatusOK, id)
}
