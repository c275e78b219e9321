package fiscal

import (
	"strconv"
	"strings"
	"time"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
)

// CalcularVencimiento deriva la fecha de vencimiento del comprobante desde la
// fecha de emisión y el código de condición de pago (días). Un código no
// numérico o <= 0 significa contado: el vencimiento es la fecha de emisión.
func CalcularVencimiento(fecha time.Time, condicionPago string) time.Time {
	dias, ok := parseDias(condicionPago)
	if !ok || dias <= 0 {
		return fecha
	}
	return fecha.AddDate(0, 0, dias)
}

// ResolverCondicionPago resuelve el código de condición de pago con prioridad
// plantilla → cliente → "0" (contado).
func ResolverCondicionPago(p *entity.Plantilla, c *entity.Cliente) string {
	if p.CondicionPago != "" {
		return p.CondicionPago
	}
	if c != nil && c.CondicionPago != "" {
		return c.CondicionPago
	}
	return "0"
}

// parseDias toma el prefijo entero del código: "30" → 30, "30 días" → 30,
// "contado" → sin valor.
func parseDias(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}
