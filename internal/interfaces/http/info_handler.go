package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
)

// InfoHandler responde el banner raíz con el estado del servicio.
type InfoHandler struct {
	clientesUC   *padron.ClientesUseCase
	plantillasUC *padron.PlantillasUseCase
	almacen      string
}

// NewInfoHandler construye el handler. almacen es el driver de persistencia
// activo (memoria, jsonbin o postgres).
func NewInfoHandler(clientesUC *padron.ClientesUseCase, plantillasUC *padron.PlantillasUseCase, almacen string) *InfoHandler {
	return &InfoHandler{clientesUC: clientesUC, plantillasUC: plantillasUC, almacen: almacen}
}

// Root GET /
func (h *InfoHandler) Root(c *fiber.Ctx) error {
	totalClientes := -1
	if clientes, err := h.clientesUC.Listar(c.Context()); err == nil {
		totalClientes = len(clientes)
	}
	totalPlantillas := -1
	if plantillas, err := h.plantillasUC.Listar(c.Context()); err == nil {
		totalPlantillas = len(plantillas)
	}
	return c.JSON(fiber.Map{
		"servicio":  "tusfacturas-backend",
		"estado":    "ok",
		"almacen":   h.almacen,
		"clientes":  totalClientes,
		"templates": totalPlantillas,
		"endpoints": []string{
			"GET /health",
			"GET /api/clientes",
			"POST /api/clientes/agregar",
			"POST /api/clientes/guardar",
			"GET /api/templates",
			"POST /api/templates/guardar",
			"POST /api/enviar-facturas",
			"GET /api/test",
		},
	})
}

// Health GET /health
func (h *InfoHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
