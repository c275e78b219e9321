package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
)

// Linea es una línea explícita de factura derivada de una plantilla.
type Linea struct {
	Cantidad             decimal.Decimal
	PrecioUnitarioSinIVA decimal.Decimal
	Alicuota             decimal.Decimal
	Descripcion          string
}

var (
	uno             = decimal.NewFromInt(1)
	alicuotaGeneral = decimal.NewFromInt(21) // alícuota general de IVA en Argentina
)

// ExpandirLineas normaliza una plantilla en una o más líneas explícitas,
// nunca cero. Si la plantilla trae Items, cada entrada se mapea aplicando
// sus defaults (cantidad 1, alícuota de la plantilla, descripción del
// concepto); si no, se sintetiza una única línea con los campos legados.
// Así el resto del cálculo no distingue factura simple de multilínea.
func ExpandirLineas(p *entity.Plantilla) []Linea {
	alicuotaPlantilla := alicuotaGeneral
	if p.Alicuota != nil {
		alicuotaPlantilla = *p.Alicuota
	}

	if len(p.Items) > 0 {
		lineas := make([]Linea, 0, len(p.Items))
		for _, it := range p.Items {
			cantidad := it.Cantidad
			if cantidad.IsZero() {
				cantidad = uno
			}
			precio := it.Precio
			if precio.IsZero() {
				precio = it.PrecioUnitarioSinIVA
			}
			alicuota := alicuotaPlantilla
			if it.Alicuota != nil {
				alicuota = *it.Alicuota
			}
			descripcion := it.Descripcion
			if descripcion == "" {
				descripcion = p.Concepto
			}
			if descripcion == "" {
				descripcion = "Servicio"
			}
			lineas = append(lineas, Linea{
				Cantidad:             cantidad,
				PrecioUnitarioSinIVA: precio,
				Alicuota:             alicuota,
				Descripcion:          descripcion,
			})
		}
		return lineas
	}

	cantidad := p.Cantidad
	if cantidad.IsZero() {
		cantidad = uno
	}
	precio := p.Monto
	if precio.IsZero() {
		precio = p.Precio
	}
	descripcion := p.Concepto
	if descripcion == "" {
		descripcion = "Servicio"
	}
	return []Linea{{
		Cantidad:             cantidad,
		PrecioUnitarioSinIVA: precio,
		Alicuota:             alicuotaPlantilla,
		Descripcion:          descripcion,
	}}
}
