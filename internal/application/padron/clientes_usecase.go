package padron

import (
	"context"
	"strings"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

// ClientesUseCase administra el padrón de clientes facturables.
type ClientesUseCase struct {
	repo repository.ClienteRepository
	log  *logger.Logger
}

// NewClientesUseCase construye el caso de uso.
func NewClientesUseCase(repo repository.ClienteRepository, log *logger.Logger) *ClientesUseCase {
	return &ClientesUseCase{repo: repo, log: log}
}

// Listar devuelve todos los clientes del padrón.
func (uc *ClientesUseCase) Listar(ctx context.Context) ([]entity.Cliente, error) {
	return uc.repo.GetAll(ctx)
}

// Agregar da de alta un cliente. El CUIT se normaliza sin guiones; si ya
// existe un cliente con ese documento el alta es idempotente y devuelve el
// existente. El ID se asigna como max(id)+1 sobre el padrón actual.
func (uc *ClientesUseCase) Agregar(ctx context.Context, in dto.AgregarClienteRequest) (*dto.AgregarClienteResponse, error) {
	nuevo := in.Cliente
	nuevo.Nombre = strings.TrimSpace(nuevo.Nombre)
	nuevo.Documento = NormalizarCUIT(nuevo.Documento)
	if nuevo.Nombre == "" || nuevo.Documento == "" {
		return nil, domain.ErrInvalidInput
	}

	clientes, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for i := range clientes {
		if clientes[i].Documento == nuevo.Documento {
			existente := clientes[i]
			return &dto.AgregarClienteResponse{
				Success: true,
				Message: "El cliente ya existía en el padrón",
				Cliente: &existente,
			}, nil
		}
		if clientes[i].ID > maxID {
			maxID = clientes[i].ID
		}
	}

	nuevo.ID = maxID + 1
	if nuevo.TipoDocumento == "" {
		nuevo.TipoDocumento = "CUIT"
	}
	if nuevo.Origen == "" {
		nuevo.Origen = "manual"
	}

	clientes = append(clientes, nuevo)
	if err := uc.repo.ReplaceAll(ctx, clientes); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("cliente_id", nuevo.ID).Str("documento", nuevo.Documento).Msg("cliente agregado al padrón")
	return &dto.AgregarClienteResponse{Success: true, Cliente: &nuevo}, nil
}

// GuardarTodos reemplaza el padrón completo (sincronización desde el
// frontend, que es el dueño del estado editado).
func (uc *ClientesUseCase) GuardarTodos(ctx context.Context, clientes []entity.Cliente) (*dto.GuardarResponse, error) {
	for i := range clientes {
		clientes[i].Documento = NormalizarCUIT(clientes[i].Documento)
	}
	if err := uc.repo.ReplaceAll(ctx, clientes); err != nil {
		return nil, err
	}
	uc.log.Info().Int("total", len(clientes)).Msg("padrón de clientes reemplazado")
	return &dto.GuardarResponse{Success: true, Total: len(clientes)}, nil
}

// NormalizarCUIT deja el documento solo con dígitos (quita guiones y
// espacios). TusFacturas espera el CUIT sin separadores.
func NormalizarCUIT(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
