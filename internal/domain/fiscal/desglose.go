package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// Desglose agrupa los importes agregados que exige un comprobante FACTURA A,
// todos redondeados a 2 decimales. ImpuestosInternos se informa siempre,
// aunque hoy es 0 (reservado para impuestos internos a futuro).
//
// Invariante: Total == Redondear2(NetoGravado + Exento + NoGravado + IVA +
// ImpuestosInternos + PercepcionesTotal).
type Desglose struct {
	ImporteNetoGravado decimal.Decimal
	ImporteExento      decimal.Decimal
	ImporteNoGravado   decimal.Decimal
	ImporteIVA         decimal.Decimal
	ImpuestosInternos  decimal.Decimal
	Bonificacion       decimal.Decimal
	PercepcionesTotal  decimal.Decimal
	Total              decimal.Decimal
}

// CalcularDesglose agrega las líneas en los importes del comprobante.
// Función pura: mismos inputs, mismo desglose.
//
// Reglas:
//   - Una línea con alícuota 0 suma al importe exento; el resto suma al neto
//     gravado y su IVA se calcula sobre el subtotal de línea.
//   - El IVA se calcula sobre el subtotal previo a la bonificación; la
//     bonificación descuenta únicamente el neto gravado, nunca el exento.
//   - Las percepciones con importe <= 0 se descartan sin error.
//
// Retorna domain.ErrCalculoInvalido si el total resultante es <= 0: una
// plantilla mal cargada (precio en cero) no debe llegar a TusFacturas.
func CalcularDesglose(lineas []Linea, bonificacionPorcentaje decimal.Decimal, percepciones []entity.Percepcion) (*Desglose, error) {
	var d Desglose

	for _, l := range lineas {
		subtotal := Redondear2(l.PrecioUnitarioSinIVA.Mul(l.Cantidad))
		if l.Alicuota.IsZero() {
			d.ImporteExento = d.ImporteExento.Add(subtotal)
		} else {
			d.ImporteNetoGravado = d.ImporteNetoGravado.Add(subtotal)
			d.ImporteIVA = d.ImporteIVA.Add(Redondear2(subtotal.Mul(l.Alicuota).Div(cien)))
		}
	}

	d.Bonificacion = Redondear2(d.ImporteNetoGravado.Mul(bonificacionPorcentaje).Div(cien))
	d.ImporteNetoGravado = Redondear2(d.ImporteNetoGravado.Sub(d.Bonificacion))

	for _, p := range percepciones {
		importe := Redondear2(p.Importe)
		if importe.IsPositive() {
			d.PercepcionesTotal = d.PercepcionesTotal.Add(importe)
		}
	}

	d.ImporteExento = Redondear2(d.ImporteExento)
	d.ImporteNoGravado = Redondear2(d.ImporteNoGravado)
	d.ImporteIVA = Redondear2(d.ImporteIVA)
	d.ImpuestosInternos = Redondear2(d.ImpuestosInternos)
	d.PercepcionesTotal = Redondear2(d.PercepcionesTotal)

	d.Total = Redondear2(d.ImporteNetoGravado.
		Add(d.ImporteExento).
		Add(d.ImporteNoGravado).
		Add(d.ImporteIVA).
		Add(d.ImpuestosInternos).
		Add(d.PercepcionesTotal))

	if !d.Total.IsPositive() {
		return nil, domain.ErrCalculoInvalido
	}
	return &d, nil
}
