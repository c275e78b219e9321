package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/facturacion"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientesUC   *padron.ClientesUseCase
	PlantillasUC *padron.PlantillasUseCase
	EnviarLote   *facturacion.EnviarLoteUseCase
	Almacen      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	infoHandler := NewInfoHandler(deps.ClientesUC, deps.PlantillasUC, deps.Almacen)
	app.Get("/", infoHandler.Root)
	app.Get("/health", infoHandler.Health)

	api := app.Group("/api")

	// Padrón de clientes
	clientes := api.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClientesUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Post("/agregar", clienteHandler.Add)
	clientes.Post("/guardar", clienteHandler.SaveAll)

	// Plantillas de facturación recurrente
	templates := api.Group("/templates")
	plantillaHandler := NewPlantillaHandler(deps.PlantillasUC)
	templates.Get("/", plantillaHandler.List)
	templates.Post("/guardar", plantillaHandler.SaveAll)

	// Facturación
	facturacionHandler := NewFacturacionHandler(deps.EnviarLote)
	api.Post("/enviar-facturas", facturacionHandler.EnviarFacturas)
	api.Get("/test", facturacionHandler.Test)
}
