package facturacion

import (
	"context"
	"encoding/json"
)

// ProbarConexion verifica credenciales y conectividad contra TusFacturas
// consultando los comprobantes del día. Devuelve el cuerpo crudo del
// proveedor para diagnóstico.
func (uc *EnviarLoteUseCase) ProbarConexion(ctx context.Context) (json.RawMessage, error) {
	ctxEnvio, cancel := context.WithTimeout(ctx, uc.opciones.TimeoutEnvio)
	defer cancel()

	hoy := uc.ahora()
	return uc.submitter.BuscarComprobantes(ctxEnvio, uc.opciones.Credenciales, hoy.AddDate(0, 0, -1), hoy)
}
