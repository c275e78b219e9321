package jsonbin

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

// ClienteRepo repositorio de clientes sobre un bin de JSONBin.io.
// Mantiene la última lectura buena en caché: si el servicio remoto no
// responde, GetAll degrada a la caché en vez de fallar (el lote en curso
// vale más que una lectura fresca).
type ClienteRepo struct {
	kv    *Client
	binID string

	mu    sync.RWMutex
	cache []entity.Cliente
	cargo bool // hubo al menos una lectura exitosa
}

// NewClienteRepo construye el adaptador para el bin de clientes.
func NewClienteRepo(kv *Client, binID string) *ClienteRepo {
	return &ClienteRepo{kv: kv, binID: binID}
}

// GetAll lee el bin remoto; ante una falla devuelve la última lectura buena.
func (r *ClienteRepo) GetAll(ctx context.Context) ([]entity.Cliente, error) {
	var clientes []entity.Cliente
	if err := r.kv.Leer(ctx, r.binID, &clientes); err != nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.cargo {
			return append([]entity.Cliente(nil), r.cache...), nil
		}
		return nil, err
	}

	r.mu.Lock()
	r.cache = clientes
	r.cargo = true
	r.mu.Unlock()
	return append([]entity.Cliente(nil), clientes...), nil
}

// GetByID busca en la colección completa; (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	clientes, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clientes {
		if clientes[i].ID == id {
			c := clientes[i]
			return &c, nil
		}
	}
	return nil, nil
}

// ReplaceAll actualiza la caché y escribe el bin. Un error remoto se
// reporta al caller (que decide si degrada a advertencia).
func (r *ClienteRepo) ReplaceAll(ctx context.Context, clientes []entity.Cliente) error {
	r.mu.Lock()
	r.cache = append([]entity.Cliente(nil), clientes...)
	r.cargo = true
	r.mu.Unlock()
	return r.kv.Guardar(ctx, r.binID, clientes)
}

// PlantillaRepo repositorio de plantillas sobre un bin de JSONBin.io.
// Misma política de caché que ClienteRepo.
type PlantillaRepo struct {
	kv    *Client
	binID string

	mu    sync.RWMutex
	cache []entity.Plantilla
	cargo bool
}

// NewPlantillaRepo construye el adaptador para el bin de plantillas.
func NewPlantillaRepo(kv *Client, binID string) *PlantillaRepo {
	return &PlantillaRepo{kv: kv, binID: binID}
}

// GetAll lee el bin remoto; ante una falla devuelve la última lectura buena.
func (r *PlantillaRepo) GetAll(ctx context.Context) ([]entity.Plantilla, error) {
	var plantillas []entity.Plantilla
	if err := r.kv.Leer(ctx, r.binID, &plantillas); err != nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.cargo {
			return append([]entity.Plantilla(nil), r.cache...), nil
		}
		return nil, err
	}

	r.mu.Lock()
	r.cache = plantillas
	r.cargo = true
	r.mu.Unlock()
	return append([]entity.Plantilla(nil), plantillas...), nil
}

// ReplaceAll actualiza la caché y escribe el bin.
func (r *PlantillaRepo) ReplaceAll(ctx context.Context, plantillas []entity.Plantilla) error {
	r.mu.Lock()
	r.cache = append([]entity.Plantilla(nil), plantillas...)
	r.cargo = true
	r.mu.Unlock()
	return r.kv.Guardar(ctx, r.binID, plantillas)
}
