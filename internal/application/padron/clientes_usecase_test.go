package padron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/memoria"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

func TestAgregarCliente_NormalizaYAsignaID(t *testing.T) {
	repo := memoria.NewClienteRepo([]entity.Cliente{
		{ID: 3, Nombre: "Acme SA", Documento: "30123456789"},
		{ID: 7, Nombre: "Beta SRL", Documento: "30987654321"},
	})
	uc := NewClientesUseCase(repo, logger.Nop())

	resp, err := uc.Agregar(context.Background(), dto.AgregarClienteRequest{
		Cliente: entity.Cliente{Nombre: "  Gamma SA  ", Documento: "30-55555555-9"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Cliente)
	assert.Equal(t, int64(8), resp.Cliente.ID, "el ID es max(id)+1")
	assert.Equal(t, "Gamma SA", resp.Cliente.Nombre)
	assert.Equal(t, "30555555559", resp.Cliente.Documento, "el CUIT se guarda sin guiones")
	assert.Equal(t, "CUIT", resp.Cliente.TipoDocumento)
	assert.Equal(t, "manual", resp.Cliente.Origen)

	clientes, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, clientes, 3)
}

func TestAgregarCliente_DocumentoDuplicadoEsIdempotente(t *testing.T) {
	repo := memoria.NewClienteRepo([]entity.Cliente{
		{ID: 1, Nombre: "Acme SA", Documento: "30123456789"},
	})
	uc := NewClientesUseCase(repo, logger.Nop())

	resp, err := uc.Agregar(context.Background(), dto.AgregarClienteRequest{
		Cliente: entity.Cliente{Nombre: "Acme duplicado", Documento: "30-12345678-9"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, int64(1), resp.Cliente.ID, "devuelve el cliente existente")
	assert.Equal(t, "Acme SA", resp.Cliente.Nombre)

	clientes, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, clientes, 1, "no se agrega un segundo registro")
}

func TestAgregarCliente_DatosObligatorios(t *testing.T) {
	uc := NewClientesUseCase(memoria.NewClienteRepo(nil), logger.Nop())

	_, err := uc.Agregar(context.Background(), dto.AgregarClienteRequest{
		Cliente: entity.Cliente{Nombre: "Sin documento"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Agregar(context.Background(), dto.AgregarClienteRequest{
		Cliente: entity.Cliente{Documento: "30123456789"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGuardarTodos_NormalizaDocumentos(t *testing.T) {
	repo := memoria.NewClienteRepo(nil)
	uc := NewClientesUseCase(repo, logger.Nop())

	resp, err := uc.GuardarTodos(context.Background(), []entity.Cliente{
		{ID: 1, Nombre: "Acme SA", Documento: "30-12345678-9"},
		{ID: 2, Nombre: "Beta SRL", Documento: "30 98765432 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	clientes, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "30123456789", clientes[0].Documento)
	assert.Equal(t, "30987654321", clientes[1].Documento)
}

func TestNormalizarCUIT(t *testing.T) {
	casos := map[string]string{
		"30-12345678-9":  "30123456789",
		"30123456789":    "30123456789",
		" 30 12345678 9": "30123456789",
		"":               "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, NormalizarCUIT(entrada), "entrada %q", entrada)
	}
}
