package tusfacturas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BaseURLProduccion es el endpoint productivo de la API v2.
const BaseURLProduccion = "https://www.tusfacturas.app/app/api/v2"

// ComprobanteSubmitter define el puerto de salida hacia TusFacturas.
// La implementación concreta usa HTTP/JSON; para tests se inyecta un fake.
type ComprobanteSubmitter interface {
	// EnviarComprobante postea el comprobante a facturacion/nuevo. Un
	// rechazo del proveedor (error="S") se devuelve en la respuesta, no
	// como error de Go; error se reserva para fallas de transporte.
	EnviarComprobante(ctx context.Context, req *ComprobanteRequest) (*RespuestaEnvio, error)

	// BuscarComprobantes consulta facturacion/buscar por rango de fechas.
	// Se usa como chequeo de conectividad; devuelve el cuerpo crudo.
	BuscarComprobantes(ctx context.Context, cred Credenciales, desde, hasta time.Time) (json.RawMessage, error)
}

// Client implementación HTTP de ComprobanteSubmitter.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ComprobanteSubmitter = (*Client)(nil)

// NewClient construye el cliente. El timeout acota cada llamada al
// proveedor; el caller además pasa un context con su propio límite.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURLProduccion
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// EnviarComprobante postea el comprobante y decodifica la respuesta.
// En un status no-2xx intenta rescatar los errores estructurados del cuerpo
// antes de degradar a un error de transporte plano.
func (c *Client) EnviarComprobante(ctx context.Context, req *ComprobanteRequest) (*RespuestaEnvio, error) {
	raw, status, err := c.post(ctx, "/facturacion/nuevo", req)
	if err != nil {
		return nil, err
	}

	var resp RespuestaEnvio
	decodeErr := json.Unmarshal(raw, &resp)

	if status < 200 || status > 299 {
		if decodeErr == nil && resp.EsError() {
			return &resp, nil
		}
		return nil, fmt.Errorf("tusfacturas: HTTP %d: %s", status, recortar(raw, 512))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("tusfacturas: respuesta inesperada: %w", decodeErr)
	}
	return &resp, nil
}

// BuscarComprobantes consulta comprobantes emitidos en el rango dado.
func (c *Client) BuscarComprobantes(ctx context.Context, cred Credenciales, desde, hasta time.Time) (json.RawMessage, error) {
	body := BusquedaRequest{
		Credenciales: cred,
		FechaDesde:   FormatearFecha(desde),
		FechaHasta:   FormatearFecha(hasta),
	}
	raw, status, err := c.post(ctx, "/facturacion/buscar", body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("tusfacturas: HTTP %d: %s", status, recortar(raw, 512))
	}
	return json.RawMessage(raw), nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (raw []byte, status int, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("tusfacturas: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("tusfacturas: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("tusfacturas: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("tusfacturas: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, 0, fmt.Errorf("tusfacturas: leer respuesta: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func recortar(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
