package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/facturacion"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
)

// FacturacionHandler maneja el envío de lotes y el diagnóstico contra
// TusFacturas.
type FacturacionHandler struct {
	uc *facturacion.EnviarLoteUseCase
}

// NewFacturacionHandler construye el handler.
func NewFacturacionHandler(uc *facturacion.EnviarLoteUseCase) *FacturacionHandler {
	return &FacturacionHandler{uc: uc}
}

// EnviarFacturas POST /api/enviar-facturas
// Procesa el lote de plantillas seleccionadas. Un lote ya en curso responde
// 409: las facturas son documentos fiscales reales y no se duplican.
func (h *FacturacionHandler) EnviarFacturas(c *fiber.Ctx) error {
	var in dto.EnviarFacturasRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resumen, err := h.uc.EnviarLote(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrLoteEnCurso) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOTE_EN_CURSO", Message: "ya hay un lote de facturación en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resumen)
}

// Test GET /api/test
// Chequeo de conectividad y credenciales contra el proveedor.
func (h *FacturacionHandler) Test(c *fiber.Ctx) error {
	raw, err := h.uc.ProbarConexion(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROVEEDOR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
