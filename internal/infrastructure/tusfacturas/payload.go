package tusfacturas

import (
	"time"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/fiscal"
)

// Valores por defecto del comprobante cuando la plantilla o el cliente no
// los traen cargados.
const (
	domicilioDefecto    = "Ciudad Autónoma de Buenos Aires"
	provinciaDefecto    = "1"
	condicionIVADefecto = "RI"
	rubroDefecto        = "Servicios Profesionales"
	rubroGrupoDefecto   = "servicios"
)

// FormatearFecha serializa una fecha al formato DD/MM/YYYY del proveedor.
func FormatearFecha(t time.Time) string {
	return t.Format("02/01/2006")
}

// ArmarComprobante ensambla el documento de facturacion/nuevo a partir del
// cliente, la plantilla, las líneas expandidas y el desglose ya calculado.
// Es un paso de pura serialización: no calcula nada, y su salida es
// reproducible campo a campo (hay un test de contrato que la fija).
func ArmarComprobante(
	cred Credenciales,
	cliente *entity.Cliente,
	plantilla *entity.Plantilla,
	lineas []fiscal.Linea,
	desglose *fiscal.Desglose,
	fecha, vencimiento time.Time,
	condicionPago, puntoVenta string,
) *ComprobanteRequest {
	detalle := make([]DetallePayload, 0, len(lineas))
	for _, l := range lineas {
		detalle = append(detalle, DetallePayload{
			Cantidad:               l.Cantidad.String(),
			AfectaStock:            "N",
			BonificacionPorcentaje: "0",
			Producto: ProductoPayload{
				Descripcion:          l.Descripcion,
				UnidadBulto:          "1",
				ListaPrecios:         "SERVICIOS",
				Codigo:               "",
				PrecioUnitarioSinIVA: l.PrecioUnitarioSinIVA.StringFixed(2),
				Alicuota:             l.Alicuota.String(),
				UnidadMedida:         "7",
				ActualizaPrecio:      "N",
				RG5329:               "N",
			},
			Leyenda: "",
		})
	}

	var percepciones []PercepcionPayload
	for _, p := range plantilla.Percepciones {
		importe := fiscal.Redondear2(p.Importe)
		if !importe.IsPositive() {
			continue
		}
		tipo := p.Tipo
		if tipo == "" {
			tipo = "PER"
		}
		descripcion := p.Descripcion
		if descripcion == "" {
			descripcion = p.Tipo
		}
		if descripcion == "" {
			descripcion = "Percepción"
		}
		percepciones = append(percepciones, PercepcionPayload{
			Tipo:        tipo,
			Descripcion: descripcion,
			Importe:     importe.StringFixed(2),
		})
	}

	enviaPorMail := "N"
	if cliente.Email != "" {
		enviaPorMail = "S"
	}

	return &ComprobanteRequest{
		Credenciales: cred,
		Cliente: ClientePayload{
			DocumentoTipo: "CUIT",
			DocumentoNro:  cliente.Documento,
			RazonSocial:   cliente.Nombre,
			Email:         cliente.Email,
			Domicilio:     oDefecto(cliente.Domicilio, domicilioDefecto),
			Provincia:     oDefecto(cliente.Provincia, provinciaDefecto),
			EnviaPorMail:  enviaPorMail,
			CondicionIVA:  oDefecto(cliente.CondicionIVA, condicionIVADefecto),
			CondicionPago: condicionPago,
		},
		Comprobante: ComprobantePayload{
			Fecha:                 FormatearFecha(fecha),
			Vencimiento:           FormatearFecha(vencimiento),
			Tipo:                  "FACTURA A",
			Operacion:             "V",
			PuntoVenta:            puntoVenta,
			Moneda:                "PES",
			Cotizacion:            "1",
			Idioma:                "1",
			PeriodoFacturadoDesde: FormatearFecha(fecha),
			PeriodoFacturadoHasta: FormatearFecha(fecha),
			Rubro:                 oDefecto(plantilla.Rubro, rubroDefecto),
			RubroGrupoContable:    oDefecto(plantilla.RubroGrupoContable, rubroGrupoDefecto),
			Detalle:               detalle,
			Bonificacion:          desglose.Bonificacion.StringFixed(2),
			ImporteNetoGravado:    desglose.ImporteNetoGravado.StringFixed(2),
			ImporteExento:         desglose.ImporteExento.StringFixed(2),
			ImporteNoGravado:      desglose.ImporteNoGravado.StringFixed(2),
			ImporteIVA:            desglose.ImporteIVA.StringFixed(2),
			ImpuestosInternos:     desglose.ImpuestosInternos.StringFixed(2),
			Percepciones:          percepciones,
			Total:                 desglose.Total.StringFixed(2),
			LeyendaGral:           plantilla.LeyendaGral,
		},
	}
}

func oDefecto(valor, defecto string) string {
	if valor == "" {
		return defecto
	}
	return valor
}
