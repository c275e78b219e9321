package facturacion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/fiscal"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/tusfacturas"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

// Opciones parametriza el envío de lotes.
type Opciones struct {
	Credenciales tusfacturas.Credenciales
	PuntoVenta   string
	// Pausa entre envíos consecutivos. TusFacturas limita el ritmo de
	// facturacion/nuevo; el default de 1200ms lo respeta con margen.
	Pausa time.Duration
	// TimeoutEnvio acota cada llamada individual al proveedor.
	TimeoutEnvio time.Duration
}

const (
	pausaDefecto        = 1200 * time.Millisecond
	timeoutEnvioDefecto = 30 * time.Second
)

// EnviarLoteUseCase orquesta la facturación de un lote de plantillas:
// expande cada plantilla a un comprobante FACTURA A, lo envía a TusFacturas
// de a uno por vez y reconcilia la selección al final.
type EnviarLoteUseCase struct {
	clienteRepo   repository.ClienteRepository
	plantillaRepo repository.PlantillaRepository
	submitter     tusfacturas.ComprobanteSubmitter
	opciones      Opciones
	log           *logger.Logger

	// enVuelo garantiza un solo lote en curso por proceso: dos lotes
	// simultáneos duplicarían facturas reales.
	enVuelo sync.Mutex

	// ahora es inyectable para fijar la fecha de emisión en tests.
	ahora func() time.Time
}

// NewEnviarLoteUseCase construye el caso de uso.
func NewEnviarLoteUseCase(
	clienteRepo repository.ClienteRepository,
	plantillaRepo repository.PlantillaRepository,
	submitter tusfacturas.ComprobanteSubmitter,
	opciones Opciones,
	log *logger.Logger,
) *EnviarLoteUseCase {
	if opciones.Pausa <= 0 {
		opciones.Pausa = pausaDefecto
	}
	if opciones.TimeoutEnvio <= 0 {
		opciones.TimeoutEnvio = timeoutEnvioDefecto
	}
	return &EnviarLoteUseCase{
		clienteRepo:   clienteRepo,
		plantillaRepo: plantillaRepo,
		submitter:     submitter,
		opciones:      opciones,
		log:           log,
		ahora:         time.Now,
	}
}

// EnviarLote factura las plantillas seleccionadas del request, en el orden
// recibido y estrictamente de a una. Cada plantilla produce exactamente un
// resultado: un fallo individual (cliente inexistente, cálculo inválido,
// rechazo del proveedor, transporte) no corta el lote. Al final limpia el
// flag selected de las plantillas facturadas con éxito.
//
// Retorna domain.ErrLoteEnCurso si ya hay otro lote en vuelo.
func (uc *EnviarLoteUseCase) EnviarLote(ctx context.Context, in dto.EnviarFacturasRequest) (*dto.ResumenLote, error) {
	if !uc.enVuelo.TryLock() {
		return nil, domain.ErrLoteEnCurso
	}
	defer uc.enVuelo.Unlock()

	loteID := uuid.New().String()
	fecha := uc.ahora()

	resumen := &dto.ResumenLote{
		Success:  true,
		LoteID:   loteID,
		Detalles: make([]dto.ResultadoEnvio, 0, len(in.Templates)),
	}

	uc.log.Info().
		Str("lote_id", loteID).
		Int("plantillas", len(in.Templates)).
		Msg("inicio de lote de facturación")

	for i := range in.Templates {
		plantilla := &in.Templates[i]
		if !plantilla.Selected {
			continue
		}
		resumen.Total++

		resultado := uc.procesar(ctx, plantilla, fecha)
		resumen.Detalles = append(resumen.Detalles, resultado)
		if resultado.Success {
			resumen.Exitosas++
		} else {
			resumen.Fallidas++
		}

		// Pausa entre envíos, sensible a la cancelación del lote.
		if err := uc.pausar(ctx); err != nil {
			uc.log.Warn().Err(err).Str("lote_id", loteID).Msg("lote interrumpido por cancelación")
			break
		}
	}

	// Las plantillas seleccionadas que no llegaron a procesarse (lote
	// cancelado) quedan sin resultado y conservan su selección.
	exitosas := make(map[int64]bool, resumen.Exitosas)
	for _, det := range resumen.Detalles {
		if det.Success {
			exitosas[det.TemplateID] = true
		}
	}
	if err := uc.reconciliarSeleccion(ctx, exitosas); err != nil {
		resumen.Advertencia = fmt.Sprintf(
			"Las facturas fueron emitidas pero no se pudo actualizar la selección de plantillas: %v. Deseleccionarlas a mano antes del próximo lote.", err)
		uc.log.Error().Err(err).Str("lote_id", loteID).Msg("fallo al persistir la reconciliación del lote")
	}

	uc.log.Info().
		Str("lote_id", loteID).
		Int("total", resumen.Total).
		Int("exitosas", resumen.Exitosas).
		Int("fallidas", resumen.Fallidas).
		Msg("lote de facturación finalizado")

	return resumen, nil
}

// procesar factura una plantilla: resuelve el cliente, calcula el desglose,
// arma el comprobante y lo envía. Nunca retorna error: toda falla queda
// registrada en el ResultadoEnvio.
func (uc *EnviarLoteUseCase) procesar(ctx context.Context, plantilla *entity.Plantilla, fecha time.Time) dto.ResultadoEnvio {
	resultado := dto.ResultadoEnvio{TemplateID: plantilla.ID}

	cliente, err := uc.clienteRepo.GetByID(ctx, plantilla.ClienteID)
	if err != nil {
		resultado.Error = fmt.Sprintf("consultar cliente %d: %v", plantilla.ClienteID, err)
		return resultado
	}
	if cliente == nil {
		resultado.Error = fmt.Sprintf("cliente %d: %v", plantilla.ClienteID, domain.ErrClienteNoEncontrado)
		return resultado
	}
	resultado.Cliente = cliente.Nombre

	lineas := fiscal.ExpandirLineas(plantilla)
	desglose, err := fiscal.CalcularDesglose(lineas, plantilla.BonificacionPorcentaje, plantilla.Percepciones)
	if err != nil {
		resultado.Error = fmt.Sprintf("cálculo inválido para %q: %v", plantilla.Concepto, err)
		return resultado
	}

	condicionPago := fiscal.ResolverCondicionPago(plantilla, cliente)
	vencimiento := fiscal.CalcularVencimiento(fecha, condicionPago)

	comprobante := tusfacturas.ArmarComprobante(
		uc.opciones.Credenciales, cliente, plantilla, lineas, desglose,
		fecha, vencimiento, condicionPago, uc.opciones.PuntoVenta,
	)

	ctxEnvio, cancel := context.WithTimeout(ctx, uc.opciones.TimeoutEnvio)
	defer cancel()

	resp, err := uc.submitter.EnviarComprobante(ctxEnvio, comprobante)
	if err != nil {
		resultado.Error = err.Error()
		uc.log.Warn().Err(err).Int64("template_id", plantilla.ID).Msg("fallo de transporte con TusFacturas")
		return resultado
	}
	if resp.EsError() {
		resultado.Error = resp.MensajeError()
		uc.log.Warn().
			Int64("template_id", plantilla.ID).
			Str("motivo", resultado.Error).
			Msg("comprobante rechazado por TusFacturas")
		return resultado
	}

	resultado.Success = true
	resultado.FacturaNumero = resp.Numero
	resultado.CAE = resp.CAE
	resultado.VencimientoCAE = resp.VencimientoCAE
	resultado.PDFURL = resp.PDFURL
	uc.log.Info().
		Int64("template_id", plantilla.ID).
		Str("cliente", cliente.Nombre).
		Str("numero", resp.Numero).
		Str("cae", resp.CAE).
		Msg("factura emitida")
	return resultado
}

// pausar espera el intervalo configurado entre envíos, abortando si el
// contexto del lote se cancela.
func (uc *EnviarLoteUseCase) pausar(ctx context.Context) error {
	t := time.NewTimer(uc.opciones.Pausa)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// reconciliarSeleccion limpia selected en las plantillas facturadas con
// éxito y persiste la colección completa en una sola escritura. Las
// fallidas conservan su selección para reintentar en el próximo lote.
func (uc *EnviarLoteUseCase) reconciliarSeleccion(ctx context.Context, exitosas map[int64]bool) error {
	if len(exitosas) == 0 {
		return nil
	}
	plantillas, err := uc.plantillaRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("leer plantillas: %w", err)
	}
	for i := range plantillas {
		if exitosas[plantillas[i].ID] {
			plantillas[i].Selected = false
		}
	}
	if err := uc.plantillaRepo.ReplaceAll(ctx, plantillas); err != nil {
		return fmt.Errorf("guardar plantillas: %w", err)
	}
	return nil
}
