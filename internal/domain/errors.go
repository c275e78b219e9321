package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// ErrClienteNoEncontrado: la plantilla referencia un clienteId inexistente.
	ErrClienteNoEncontrado = errors.New("cliente no encontrado")
	// ErrCalculoInvalido: el total del comprobante dio 0 o negativo; la
	// factura se rechaza antes de contactar a TusFacturas.
	ErrCalculoInvalido = errors.New("el total calculado es 0 o negativo")
	// ErrLoteEnCurso: ya hay un lote de facturación en vuelo sobre la misma
	// colección de plantillas.
	ErrLoteEnCurso = errors.New("ya hay un lote de facturación en curso")
)
