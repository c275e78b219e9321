package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/facturacion"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/memoria"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/tusfacturas"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

// submitterAceptaTodo acepta cualquier comprobante. Para tests de handlers.
type submitterAceptaTodo struct{}

func (submitterAceptaTodo) EnviarComprobante(ctx context.Context, req *tusfacturas.ComprobanteRequest) (*tusfacturas.RespuestaEnvio, error) {
	return &tusfacturas.RespuestaEnvio{
		Error:  "N",
		Numero: "0003-00000001",
		CAE:    "75310000000001",
		PDFURL: "https://tusfacturas.app/pdf/1",
	}, nil
}

func (submitterAceptaTodo) BuscarComprobantes(ctx context.Context, cred tusfacturas.Credenciales, desde, hasta time.Time) (json.RawMessage, error) {
	return json.RawMessage(`{"error":"N","total":3}`), nil
}

func appDePrueba(t *testing.T) (*fiber.App, *memoria.ClienteRepo, *memoria.PlantillaRepo) {
	t.Helper()
	clienteRepo := memoria.NewClienteRepo([]entity.Cliente{
		{ID: 1, Nombre: "Acme SA", Documento: "30123456789"},
	})
	plantillaRepo := memoria.NewPlantillaRepo([]entity.Plantilla{
		{ID: 10, ClienteID: 1, Concepto: "Abono", Monto: decimal.NewFromInt(100), Selected: true},
	})
	log := logger.Nop()

	app := fiber.New()
	Router(app, RouterDeps{
		ClientesUC:   padron.NewClientesUseCase(clienteRepo, log),
		PlantillasUC: padron.NewPlantillasUseCase(plantillaRepo, log),
		EnviarLote: facturacion.NewEnviarLoteUseCase(
			clienteRepo, plantillaRepo, submitterAceptaTodo{},
			facturacion.Opciones{PuntoVenta: "0003", Pausa: time.Millisecond},
			log,
		),
		Almacen: "memoria",
	})
	return app, clienteRepo, plantillaRepo
}

func TestRutaRaiz(t *testing.T) {
	app, _, _ := appDePrueba(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "memoria", body["almacen"])
	assert.Equal(t, float64(1), body["clientes"])
	assert.Equal(t, float64(1), body["templates"])
}

func TestHealth(t *testing.T) {
	app, _, _ := appDePrueba(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListarClientes(t *testing.T) {
	app, _, _ := appDePrueba(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/clientes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var clientes []entity.Cliente
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&clientes))
	require.Len(t, clientes, 1)
	assert.Equal(t, "Acme SA", clientes[0].Nombre)
}

func TestAgregarCliente(t *testing.T) {
	app, clienteRepo, _ := appDePrueba(t)

	body := `{"cliente":{"nombre":"Beta SRL","documento":"30-98765432-1"}}`
	req := httptest.NewRequest("POST", "/api/clientes/agregar", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	clientes, err := clienteRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, clientes, 2)
	assert.Equal(t, "30987654321", clientes[1].Documento)
}

func TestAgregarClienteInvalido(t *testing.T) {
	app, _, _ := appDePrueba(t)

	req := httptest.NewRequest("POST", "/api/clientes/agregar", bytes.NewBufferString(`{"cliente":{"nombre":""}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGuardarTemplates(t *testing.T) {
	app, _, plantillaRepo := appDePrueba(t)

	body := `{"templates":[{"id":20,"clienteId":1,"concepto":"Nuevo abono","monto":"150","selected":false}]}`
	req := httptest.NewRequest("POST", "/api/templates/guardar", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	plantillas, err := plantillaRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, plantillas, 1)
	assert.Equal(t, int64(20), plantillas[0].ID)
	assert.Equal(t, "150", plantillas[0].Monto.String())
}

func TestEnviarFacturas(t *testing.T) {
	app, _, _ := appDePrueba(t)

	body := `{"templates":[{"id":10,"clienteId":1,"concepto":"Abono","monto":"100","selected":true}]}`
	req := httptest.NewRequest("POST", "/api/enviar-facturas", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resumen map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resumen))
	assert.Equal(t, true, resumen["success"])
	assert.Equal(t, float64(1), resumen["exitosas"])
	assert.Equal(t, float64(0), resumen["fallidas"])
}

func TestEnviarFacturasCuerpoInvalido(t *testing.T) {
	app, _, _ := appDePrueba(t)

	req := httptest.NewRequest("POST", "/api/enviar-facturas", bytes.NewBufferString(`{no es json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConectividadProveedor(t *testing.T) {
	app, _, _ := appDePrueba(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"N","total":3}`, string(raw))
}
