package dto

import "github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"

// AgregarClienteRequest body para POST /api/clientes/agregar.
type AgregarClienteRequest struct {
	Cliente entity.Cliente `json:"cliente"`
}

// AgregarClienteResponse respuesta del alta. Si el documento ya existía se
// devuelve el cliente existente con Message informativo (alta idempotente).
type AgregarClienteResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Cliente *entity.Cliente `json:"cliente"`
}

// GuardarClientesRequest body para POST /api/clientes/guardar (replace-all).
type GuardarClientesRequest struct {
	Clientes []entity.Cliente `json:"clientes"`
}

// GuardarTemplatesRequest body para POST /api/templates/guardar (replace-all).
type GuardarTemplatesRequest struct {
	Templates []entity.Plantilla `json:"templates"`
}

// GuardarResponse respuesta de los replace-all.
type GuardarResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
}
