// Package jsonbin implementa la persistencia contra JSONBin.io, un
// key-value store remoto sobre HTTPS. Cada colección (clientes, plantillas)
// vive en un bin propio y se lee/escribe completa.
package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BaseURLDefecto es el endpoint v3 de JSONBin.io.
const BaseURLDefecto = "https://api.jsonbin.io/v3"

// Client cliente HTTP mínimo para los endpoints de bins.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient construye el cliente. apiKey es la X-Master-Key de la cuenta.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURLDefecto
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Leer trae la última versión del bin y decodifica el campo record en v.
func (c *Client) Leer(ctx context.Context, binID string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/b/"+binID+"/latest", nil)
	if err != nil {
		return fmt.Errorf("jsonbin: crear request: %w", err)
	}
	c.cabeceras(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jsonbin: leer bin %s: %w", binID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("jsonbin: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("jsonbin: HTTP %d leyendo bin %s", resp.StatusCode, binID)
	}

	// La API envuelve el contenido en {"record": ..., "metadata": ...}.
	var envoltura struct {
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(raw, &envoltura); err != nil {
		return fmt.Errorf("jsonbin: respuesta inesperada: %w", err)
	}
	if err := json.Unmarshal(envoltura.Record, v); err != nil {
		return fmt.Errorf("jsonbin: decodificar record: %w", err)
	}
	return nil
}

// Guardar reemplaza el contenido del bin con v.
func (c *Client) Guardar(ctx context.Context, binID string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonbin: serializar: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/b/"+binID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("jsonbin: crear request: %w", err)
	}
	c.cabeceras(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jsonbin: guardar bin %s: %w", binID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("jsonbin: HTTP %d guardando bin %s", resp.StatusCode, binID)
	}
	return nil
}

func (c *Client) cabeceras(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", c.apiKey)
}
