package fiscal

import "github.com/shopspring/decimal"

// Redondear2 redondea un importe a 2 decimales, mitad alejándose de cero.
// Se aplica en cada punto donde se combinan dos o más importes (subtotal de
// línea, IVA por línea, bonificación, percepciones, total) para que el
// comprobante cierre centavo a centavo.
func Redondear2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
