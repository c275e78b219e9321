package padron

import (
	"context"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/dto"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

// PlantillasUseCase administra las plantillas de facturación recurrente.
type PlantillasUseCase struct {
	repo repository.PlantillaRepository
	log  *logger.Logger
}

// NewPlantillasUseCase construye el caso de uso.
func NewPlantillasUseCase(repo repository.PlantillaRepository, log *logger.Logger) *PlantillasUseCase {
	return &PlantillasUseCase{repo: repo, log: log}
}

// Listar devuelve todas las plantillas.
func (uc *PlantillasUseCase) Listar(ctx context.Context) ([]entity.Plantilla, error) {
	return uc.repo.GetAll(ctx)
}

// GuardarTodas reemplaza la colección completa de plantillas.
func (uc *PlantillasUseCase) GuardarTodas(ctx context.Context, plantillas []entity.Plantilla) (*dto.GuardarResponse, error) {
	if err := uc.repo.ReplaceAll(ctx, plantillas); err != nil {
		return nil, err
	}
	uc.log.Info().Int("total", len(plantillas)).Msg("plantillas reemplazadas")
	return &dto.GuardarResponse{Success: true, Total: len(plantillas)}, nil
}
