package dto

import "github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"

// EnviarFacturasRequest body para POST /api/enviar-facturas. Se facturan las
// plantillas que vienen con selected=true, en el orden recibido.
type EnviarFacturasRequest struct {
	Templates []entity.Plantilla `json:"templates"`
}

// ResultadoEnvio es el resultado del envío de una plantilla dentro de un
// lote. Exactamente uno por plantilla seleccionada.
type ResultadoEnvio struct {
	TemplateID     int64  `json:"templateId"`
	Success        bool   `json:"success"`
	Cliente        string `json:"cliente,omitempty"`
	FacturaNumero  string `json:"facturaNumero,omitempty"`
	CAE            string `json:"cae,omitempty"`
	VencimientoCAE string `json:"vencimiento_cae,omitempty"`
	PDFURL         string `json:"pdf_url,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ResumenLote es el reporte del lote completo. Success refleja que el lote
// corrió; los fallos por plantilla van en Detalles[].Success.
// Advertencia se completa si la persistencia posterior al lote falló: las
// facturas ya aceptadas por TusFacturas existen igual.
type ResumenLote struct {
	Success     bool             `json:"success"`
	LoteID      string           `json:"lote_id"`
	Total       int              `json:"total"`
	Exitosas    int              `json:"exitosas"`
	Fallidas    int              `json:"fallidas"`
	Detalles    []ResultadoEnvio `json:"detalles"`
	Advertencia string           `json:"advertencia,omitempty"`
}
