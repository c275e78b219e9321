package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
)

var _ repository.PlantillaRepository = (*PlantillaRepo)(nil)

// PlantillaRepo implementación PostgreSQL de PlantillaRepository.
// Items y percepciones se guardan como JSONB: son documentos chicos que
// siempre viajan junto con la plantilla.
type PlantillaRepo struct {
	pool *pgxpool.Pool
}

// NewPlantillaRepository construye el adaptador.
func NewPlantillaRepository(pool *pgxpool.Pool) *PlantillaRepo {
	return &PlantillaRepo{pool: pool}
}

// GetAll lista todas las plantillas ordenadas por id.
func (r *PlantillaRepo) GetAll(ctx context.Context) ([]entity.Plantilla, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cliente_id, concepto, monto, precio, cantidad, alicuota,
		       bonificacion_porcentaje, condicion_pago, percepciones, items,
		       rubro, rubro_grupo_contable, leyenda_gral, selected
		FROM plantillas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list plantillas: %w", err)
	}
	defer rows.Close()

	var list []entity.Plantilla
	for rows.Next() {
		var (
			p            entity.Plantilla
			alicuota     decimal.NullDecimal
			percepciones []byte
			items        []byte
		)
		if err := rows.Scan(
			&p.ID, &p.ClienteID, &p.Concepto, &p.Monto, &p.Precio, &p.Cantidad, &alicuota,
			&p.BonificacionPorcentaje, &p.CondicionPago, &percepciones, &items,
			&p.Rubro, &p.RubroGrupoContable, &p.LeyendaGral, &p.Selected,
		); err != nil {
			return nil, fmt.Errorf("scan plantilla: %w", err)
		}
		if alicuota.Valid {
			a := alicuota.Decimal
			p.Alicuota = &a
		}
		if err := json.Unmarshal(percepciones, &p.Percepciones); err != nil {
			return nil, fmt.Errorf("decodificar percepciones de plantilla %d: %w", p.ID, err)
		}
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, fmt.Errorf("decodificar items de plantilla %d: %w", p.ID, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ReplaceAll reemplaza la colección completa dentro de una transacción:
// la reconciliación post-lote es una única escritura atómica.
func (r *PlantillaRepo) ReplaceAll(ctx context.Context, plantillas []entity.Plantilla) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM plantillas`); err != nil {
		return fmt.Errorf("limpiar plantillas: %w", err)
	}
	for _, p := range plantillas {
		percepciones, err := json.Marshal(p.Percepciones)
		if err != nil {
			return fmt.Errorf("serializar percepciones de plantilla %d: %w", p.ID, err)
		}
		items, err := json.Marshal(p.Items)
		if err != nil {
			return fmt.Errorf("serializar items de plantilla %d: %w", p.ID, err)
		}
		alicuota := decimal.NullDecimal{}
		if p.Alicuota != nil {
			alicuota = decimal.NewNullDecimal(*p.Alicuota)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO plantillas (
				id, cliente_id, concepto, monto, precio, cantidad, alicuota,
				bonificacion_porcentaje, condicion_pago, percepciones, items,
				rubro, rubro_grupo_contable, leyenda_gral, selected
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			p.ID, p.ClienteID, p.Concepto, p.Monto, p.Precio, p.Cantidad, alicuota,
			p.BonificacionPorcentaje, p.CondicionPago, percepciones, items,
			p.Rubro, p.RubroGrupoContable, p.LeyendaGral, p.Selected,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert plantilla %d: %w", p.ID, err)
		}
	}
	return tx.Commit(ctx)
}
