package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
)

// PlantillaHandler maneja las peticiones HTTP de plantillas de facturación.
type PlantillaHandler struct {
	uc *padron.PlantillasUseCase
}

// NewPlantillaHandler construye el handler.
func NewPlantillaHandler(uc *padron.PlantillasUseCase) *PlantillaHandler {
	return &PlantillaHandler{uc: uc}
}

// List GET /api/templates
func (h *PlantillaHandler) List(c *fiber.Ctx) error {
	plantillas, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(plantillas)
}

// SaveAll POST /api/templates/guardar
func (h *PlantillaHandler) SaveAll(c *fiber.Ctx) error {
	var in dto.GuardarTemplatesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.GuardarTodas(c.Context(), in.Templates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
