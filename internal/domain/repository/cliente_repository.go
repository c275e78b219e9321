package repository

import (
	"context"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para clientes.
// GetByID retorna (nil, nil) si el cliente no existe.
type ClienteRepository interface {
	GetAll(ctx context.Context) ([]entity.Cliente, error)
	GetByID(ctx context.Context, id int64) (*entity.Cliente, error)
	ReplaceAll(ctx context.Context, clientes []entity.Cliente) error
}
