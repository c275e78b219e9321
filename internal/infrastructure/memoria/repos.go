// Package memoria implementa los repositorios sobre slices en memoria,
// protegidos con mutex. Es el almacén por defecto cuando no hay JSONBin ni
// PostgreSQL configurados, y el doble de pruebas de los casos de uso.
package memoria

import (
	"context"
	"sync"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
)

var (
	_ repository.ClienteRepository   = (*ClienteRepo)(nil)
	_ repository.PlantillaRepository = (*PlantillaRepo)(nil)
)

// ClienteRepo repositorio de clientes en memoria.
type ClienteRepo struct {
	mu       sync.RWMutex
	clientes []entity.Cliente
}

// NewClienteRepo construye el repositorio, opcionalmente con datos iniciales.
func NewClienteRepo(iniciales []entity.Cliente) *ClienteRepo {
	return &ClienteRepo{clientes: append([]entity.Cliente(nil), iniciales...)}
}

// GetAll devuelve una copia de la colección.
func (r *ClienteRepo) GetAll(ctx context.Context) ([]entity.Cliente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Cliente(nil), r.clientes...), nil
}

// GetByID devuelve (nil, nil) si el cliente no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.clientes {
		if r.clientes[i].ID == id {
			c := r.clientes[i]
			return &c, nil
		}
	}
	return nil, nil
}

// ReplaceAll reemplaza la colección completa en una sola escritura.
func (r *ClienteRepo) ReplaceAll(ctx context.Context, clientes []entity.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientes = append([]entity.Cliente(nil), clientes...)
	return nil
}

// PlantillaRepo repositorio de plantillas en memoria.
type PlantillaRepo struct {
	mu         sync.RWMutex
	plantillas []entity.Plantilla
}

// NewPlantillaRepo construye el repositorio, opcionalmente con datos iniciales.
func NewPlantillaRepo(iniciales []entity.Plantilla) *PlantillaRepo {
	return &PlantillaRepo{plantillas: append([]entity.Plantilla(nil), iniciales...)}
}

// GetAll devuelve una copia de la colección.
func (r *PlantillaRepo) GetAll(ctx context.Context) ([]entity.Plantilla, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Plantilla(nil), r.plantillas...), nil
}

// ReplaceAll reemplaza la colección completa en una sola escritura.
func (r *PlantillaRepo) ReplaceAll(ctx context.Context, plantillas []entity.Plantilla) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plantillas = append([]entity.Plantilla(nil), plantillas...)
	return nil
}
