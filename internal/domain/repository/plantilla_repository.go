package repository

import (
	"context"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
)

// PlantillaRepository define el puerto de persistencia para plantillas de
// facturación. La colección se lee y escribe completa: el contrato del lote
// es de un solo escritor por corrida (ver EnviarLoteUseCase).
type PlantillaRepository interface {
	GetAll(ctx context.Context) ([]entity.Plantilla, error)
	ReplaceAll(ctx context.Context, plantillas []entity.Plantilla) error
}
