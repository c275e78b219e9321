package entity

// Cliente representa un cliente local al que se le emiten facturas recurrentes.
// Documento es el CUIT en dígitos, sin guiones. Provincia y CondicionIVA usan
// los códigos que espera TusFacturas ("1" = CABA, "RI" = Responsable Inscripto).
type Cliente struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Documento     string `json:"documento"`
	Email         string `json:"email,omitempty"`
	TipoDocumento string `json:"tipo_documento,omitempty"`
	Domicilio     string `json:"domicilio,omitempty"`
	Provincia     string `json:"provincia,omitempty"`
	CondicionIVA  string `json:"condicion_iva,omitempty"`
	CondicionPago string `json:"condicion_pago,omitempty"`
	Origen        string `json:"origen,omitempty"`
}
