package tusfacturas

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Credenciales viaja embebida en cada payload: la API v2 de TusFacturas no
// usa headers de autenticación.
type Credenciales struct {
	APIKey    string `json:"apikey"`
	APIToken  string `json:"apitoken"`
	UserToken string `json:"usertoken"`
}

// ComprobanteRequest es el documento completo que se postea a
// facturacion/nuevo. Todos los importes van como strings con 2 decimales;
// las fechas en DD/MM/YYYY. El armado es 1:1 con el esquema del proveedor y
// no debe cambiar sin un test de contrato que lo acompañe.
type ComprobanteRequest struct {
	Credenciales
	Cliente     ClientePayload     `json:"cliente"`
	Comprobante ComprobantePayload `json:"comprobante"`
}

// ClientePayload bloque de cliente del comprobante.
type ClientePayload struct {
	DocumentoTipo string `json:"documento_tipo"` // fijo "CUIT"
	DocumentoNro  string `json:"documento_nro"`
	RazonSocial   string `json:"razon_social"`
	Email         string `json:"email"`
	Domicilio     string `json:"domicilio"`
	Provincia     string `json:"provincia"`
	EnviaPorMail  string `json:"envia_por_mail"` // "S" o "N"
	CondicionIVA  string `json:"condicion_iva"`
	CondicionPago string `json:"condicion_pago"`
}

// ComprobantePayload bloque del comprobante propiamente dicho.
// Percepciones se omite por completo (no arreglo vacío) cuando no hay
// percepciones con importe positivo.
type ComprobantePayload struct {
	Fecha                  string              `json:"fecha"`       // DD/MM/YYYY
	Vencimiento            string              `json:"vencimiento"` // DD/MM/YYYY
	Tipo                   string              `json:"tipo"`        // fijo "FACTURA A"
	Operacion              string              `json:"operacion"`   // fijo "V"
	PuntoVenta             string              `json:"punto_venta"`
	Moneda                 string              `json:"moneda"`     // fijo "PES"
	Cotizacion             string              `json:"cotizacion"` // fijo "1"
	Idioma                 string              `json:"idioma"`     // fijo "1"
	PeriodoFacturadoDesde  string              `json:"periodo_facturado_desde"`
	PeriodoFacturadoHasta  string              `json:"periodo_facturado_hasta"`
	Rubro                  string              `json:"rubro"`
	RubroGrupoContable     string              `json:"rubro_grupo_contable"`
	Detalle                []DetallePayload    `json:"detalle"`
	Bonificacion           string              `json:"bonificacion"`
	ImporteNetoGravado     string              `json:"importe_neto_gravado"`
	ImporteExento          string              `json:"importe_exento"`
	ImporteNoGravado       string              `json:"importe_no_gravado"`
	ImporteIVA             string              `json:"importe_iva"`
	ImpuestosInternos      string              `json:"impuestos_internos"`
	Percepciones           []PercepcionPayload `json:"percepciones,omitempty"`
	Total                  string              `json:"total"`
	LeyendaGral            string              `json:"leyenda_gral"`
}

// DetallePayload una línea del comprobante.
type DetallePayload struct {
	Cantidad                string          `json:"cantidad"`
	AfectaStock             string          `json:"afecta_stock"`            // fijo "N": servicios
	BonificacionPorcentaje  string          `json:"bonificacion_porcentaje"` // la bonificación va a nivel comprobante
	Producto                ProductoPayload `json:"producto"`
	Leyenda                 string          `json:"leyenda"`
}

// ProductoPayload el producto/servicio anidado en cada línea de detalle.
type ProductoPayload struct {
	Descripcion          string `json:"descripcion"`
	UnidadBulto          string `json:"unidad_bulto"` // fijo "1"
	ListaPrecios         string `json:"lista_precios"`
	Codigo               string `json:"codigo"`
	PrecioUnitarioSinIVA string `json:"precio_unitario_sin_iva"`
	Alicuota             string `json:"alicuota"`
	UnidadMedida         string `json:"unidad_medida"` // fijo "7" (unidades)
	ActualizaPrecio      string `json:"actualiza_precio"`
	RG5329               string `json:"rg5329"`
}

// PercepcionPayload una percepción del comprobante, importe con 2 decimales.
type PercepcionPayload struct {
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
	Importe     string `json:"importe"`
}

// BusquedaRequest body de facturacion/buscar (chequeo de conectividad).
type BusquedaRequest struct {
	Credenciales
	FechaDesde string `json:"fecha_desde"`
	FechaHasta string `json:"fecha_hasta"`
}

// RespuestaEnvio es la respuesta de facturacion/nuevo. El flag error viene
// como "S"/"N"; errores puede llegar como arreglo o como string suelto según
// el tipo de falla, por eso ListaErrores normaliza ambos.
type RespuestaEnvio struct {
	Error          string       `json:"error"`
	Errores        ListaErrores `json:"errores"`
	Numero         string       `json:"numero"`
	CAE            string       `json:"cae"`
	VencimientoCAE string       `json:"vencimiento_cae"`
	PDFURL         string       `json:"pdf_url"`
}

// EsError indica si TusFacturas marcó el comprobante como rechazado.
func (r *RespuestaEnvio) EsError() bool {
	return r.Error == "S" || len(r.Errores) > 0
}

// MensajeError devuelve los mensajes de rechazo unidos con " | ", o un
// mensaje genérico si el proveedor no detalló nada.
func (r *RespuestaEnvio) MensajeError() string {
	if len(r.Errores) == 0 {
		return "Error API"
	}
	return strings.Join(r.Errores, " | ")
}

// PrimerError devuelve el primer mensaje de rechazo, si lo hay.
func (r *RespuestaEnvio) PrimerError() string {
	if len(r.Errores) == 0 {
		return ""
	}
	return r.Errores[0]
}

// ListaErrores acepta tanto ["msg1","msg2"] como "msg" en el JSON del
// proveedor.
type ListaErrores []string

func (l *ListaErrores) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = []string{s}
	return nil
}
