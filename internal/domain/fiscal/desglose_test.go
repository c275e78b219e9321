package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/fiscal"
)

func lineaSimple(cantidad, precio, alicuota string) fiscal.Linea {
	return fiscal.Linea{
		Cantidad:             dec(cantidad),
		PrecioUnitarioSinIVA: dec(precio),
		Alicuota:             dec(alicuota),
		Descripcion:          "Servicio",
	}
}

// Escenario de referencia: 2 x $100 al 21% sin bonificación ni percepciones.
func TestCalcularDesglose_LineaGravada(t *testing.T) {
	d, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{lineaSimple("2", "100", "21")},
		decimal.Zero, nil,
	)
	require.NoError(t, err)

	assert.True(t, d.ImporteNetoGravado.Equal(dec("200")), "neto gravado: %s", d.ImporteNetoGravado)
	assert.True(t, d.ImporteIVA.Equal(dec("42")), "IVA: %s", d.ImporteIVA)
	assert.True(t, d.ImporteExento.IsZero())
	assert.True(t, d.ImpuestosInternos.IsZero(), "impuestos internos viaja siempre como 0 explícito")
	assert.True(t, d.Total.Equal(dec("242")), "total: %s", d.Total)
}

// La bonificación descuenta el neto gravado pero el IVA queda calculado sobre
// el subtotal previo a la bonificación (comportamiento histórico del sistema).
func TestCalcularDesglose_BonificacionNoReduceIVA(t *testing.T) {
	d, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{lineaSimple("2", "100", "21")},
		dec("10"), nil,
	)
	require.NoError(t, err)

	assert.True(t, d.Bonificacion.Equal(dec("20")), "bonificación: %s", d.Bonificacion)
	assert.True(t, d.ImporteNetoGravado.Equal(dec("180")), "neto tras bonificación: %s", d.ImporteNetoGravado)
	assert.True(t, d.ImporteIVA.Equal(dec("42")), "el IVA no cambia con la bonificación: %s", d.ImporteIVA)
	assert.True(t, d.Total.Equal(dec("222")), "total: %s", d.Total)
}

// Una línea con alícuota 0 suma solo al exento, nunca al neto ni al IVA.
func TestCalcularDesglose_LineaExenta(t *testing.T) {
	d, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{lineaSimple("1", "500", "0")},
		decimal.Zero, nil,
	)
	require.NoError(t, err)

	assert.True(t, d.ImporteExento.Equal(dec("500")))
	assert.True(t, d.ImporteNetoGravado.IsZero())
	assert.True(t, d.ImporteIVA.IsZero())
	assert.True(t, d.Total.Equal(dec("500")))
}

// La bonificación aplica solo al bucket gravado: el exento queda intacto.
func TestCalcularDesglose_BonificacionNoTocaExento(t *testing.T) {
	d, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{
			lineaSimple("1", "1000", "21"),
			lineaSimple("1", "500", "0"),
		},
		dec("50"), nil,
	)
	require.NoError(t, err)

	assert.True(t, d.Bonificacion.Equal(dec("500")), "bonificación sobre el gravado: %s", d.Bonificacion)
	assert.True(t, d.ImporteNetoGravado.Equal(dec("500")))
	assert.True(t, d.ImporteExento.Equal(dec("500")), "el exento no se bonifica")
	assert.True(t, d.ImporteIVA.Equal(dec("210")))
}

// Percepciones: las de importe <= 0 se descartan en silencio.
func TestCalcularDesglose_PercepcionesFiltradas(t *testing.T) {
	d, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{lineaSimple("1", "100", "21")},
		decimal.Zero,
		[]entity.Percepcion{
			{Tipo: "IIBB", Importe: decimal.Zero},
			{Tipo: "IIBB CABA", Importe: dec("50")},
			{Tipo: "RET", Importe: dec("-10")},
		},
	)
	require.NoError(t, err)

	assert.True(t, d.PercepcionesTotal.Equal(dec("50")), "solo la percepción positiva suma: %s", d.PercepcionesTotal)
	assert.True(t, d.Total.Equal(dec("171")))
}

// Plantilla con precio 0: el total da 0 y el cálculo se rechaza antes de
// llegar al proveedor.
func TestCalcularDesglose_TotalCeroRechazado(t *testing.T) {
	_, err := fiscal.CalcularDesglose(
		[]fiscal.Linea{lineaSimple("1", "0", "21")},
		decimal.Zero, nil,
	)
	require.ErrorIs(t, err, domain.ErrCalculoInvalido)
}

// Invariante de cierre: el total es la suma redondeada de todos los buckets.
func TestCalcularDesglose_InvarianteDeTotal(t *testing.T) {
	casos := [][]fiscal.Linea{
		{lineaSimple("3", "33.33", "21")},
		{lineaSimple("1", "99.99", "10.5"), lineaSimple("7", "0.07", "21")},
		{lineaSimple("2", "150.555", "0"), lineaSimple("1", "200.01", "27")},
	}
	percepciones := []entity.Percepcion{{Tipo: "IIBB", Importe: dec("12.345")}}

	for i, lineas := range casos {
		d, err := fiscal.CalcularDesglose(lineas, dec("5"), percepciones)
		require.NoError(t, err, "caso %d", i)

		suma := d.ImporteNetoGravado.
			Add(d.ImporteExento).
			Add(d.ImporteNoGravado).
			Add(d.ImporteIVA).
			Add(d.ImpuestosInternos).
			Add(d.PercepcionesTotal)
		assert.True(t, d.Total.Equal(fiscal.Redondear2(suma)),
			"caso %d: total %s != suma de buckets %s", i, d.Total, suma)
	}
}

// Mismo input, mismo desglose: requisito para reintentos idempotentes.
func TestCalcularDesglose_Determinista(t *testing.T) {
	lineas := []fiscal.Linea{lineaSimple("3", "33.33", "21"), lineaSimple("1", "10", "0")}
	perc := []entity.Percepcion{{Tipo: "IIBB", Importe: dec("5.55")}}

	d1, err1 := fiscal.CalcularDesglose(lineas, dec("10"), perc)
	d2, err2 := fiscal.CalcularDesglose(lineas, dec("10"), perc)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, d1, d2, "el cálculo debe ser determinista")
}
