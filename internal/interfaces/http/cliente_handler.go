package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
)

// ClienteHandler maneja las peticiones HTTP del padrón de clientes.
type ClienteHandler struct {
	uc *padron.ClientesUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *padron.ClientesUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// List GET /api/clientes
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	clientes, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(clientes)
}

// Add POST /api/clientes/agregar
func (h *ClienteHandler) Add(c *fiber.Ctx) error {
	var in dto.AgregarClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Agregar(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y documento son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// SaveAll POST /api/clientes/guardar
func (h *ClienteHandler) SaveAll(c *fiber.Ctx) error {
	var in dto.GuardarClientesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.GuardarTodos(c.Context(), in.Clientes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
