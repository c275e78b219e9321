package entity

import "github.com/shopspring/decimal"

// Plantilla es un ítem de facturación recurrente asociado a un cliente.
// Selected marca las plantillas a incluir en el próximo lote; se limpia
// cuando TusFacturas acepta la factura.
//
// Los campos Monto/Precio/Cantidad/Alicuota son el formato legado de una
// sola línea; si Items viene con entradas, tiene prioridad y permite
// representar facturas multilínea.
type Plantilla struct {
	ID                     int64            `json:"id"`
	ClienteID              int64            `json:"clienteId"`
	Concepto               string           `json:"concepto"`
	Monto                  decimal.Decimal  `json:"monto"`
	Precio                 decimal.Decimal  `json:"precio"` // alias legado de Monto
	Cantidad               decimal.Decimal  `json:"cantidad"`
	Alicuota               *decimal.Decimal `json:"alicuota,omitempty"` // nil = alícuota general (21)
	BonificacionPorcentaje decimal.Decimal  `json:"bonificacion_porcentaje"`
	CondicionPago          string           `json:"condicion_pago,omitempty"`
	Percepciones           []Percepcion     `json:"percepciones,omitempty"`
	Items                  []ItemPlantilla  `json:"items,omitempty"`
	Rubro                  string           `json:"rubro,omitempty"`
	RubroGrupoContable     string           `json:"rubro_grupo_contable,omitempty"`
	LeyendaGral            string           `json:"leyenda_gral,omitempty"`
	Selected               bool             `json:"selected"`
}

// ItemPlantilla es una entrada del arreglo Items de la plantilla.
// Precio y PrecioUnitarioSinIVA son alias (el frontend histórico usó ambos).
type ItemPlantilla struct {
	Cantidad             decimal.Decimal  `json:"cantidad"`
	Precio               decimal.Decimal  `json:"precio"`
	PrecioUnitarioSinIVA decimal.Decimal  `json:"precio_unitario_sin_iva"`
	Alicuota             *decimal.Decimal `json:"alicuota,omitempty"` // nil = hereda la de la plantilla
	Descripcion          string           `json:"descripcion,omitempty"`
}

// Percepcion es una percepción impositiva que se suma al total del
// comprobante. Solo las entradas con Importe > 0 se facturan.
type Percepcion struct {
	Tipo        string          `json:"tipo"`
	Descripcion string          `json:"descripcion,omitempty"`
	Importe     decimal.Decimal `json:"importe"`
}
