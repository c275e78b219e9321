package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación PostgreSQL de ClienteRepository.
type ClienteRepo struct {
	pool *pgxpool.Pool
}

// NewClienteRepository construye el adaptador.
func NewClienteRepository(pool *pgxpool.Pool) *ClienteRepo {
	return &ClienteRepo{pool: pool}
}

const columnasCliente = `id, nombre, documento, email, tipo_documento, domicilio, provincia, condicion_iva, condicion_pago, origen`

// GetAll lista todos los clientes ordenados por id.
func (r *ClienteRepo) GetAll(ctx context.Context) ([]entity.Cliente, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columnasCliente+` FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var list []entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(
			&c.ID, &c.Nombre, &c.Documento, &c.Email, &c.TipoDocumento,
			&c.Domicilio, &c.Provincia, &c.CondicionIVA, &c.CondicionPago, &c.Origen,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.pool.QueryRow(ctx, `SELECT `+columnasCliente+` FROM clientes WHERE id = $1`, id).Scan(
		&c.ID, &c.Nombre, &c.Documento, &c.Email, &c.TipoDocumento,
		&c.Domicilio, &c.Provincia, &c.CondicionIVA, &c.CondicionPago, &c.Origen,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// ReplaceAll reemplaza la colección completa dentro de una transacción.
func (r *ClienteRepo) ReplaceAll(ctx context.Context, clientes []entity.Cliente) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM clientes`); err != nil {
		return fmt.Errorf("limpiar clientes: %w", err)
	}
	for _, c := range clientes {
		_, err := tx.Exec(ctx, `
			INSERT INTO clientes (`+columnasCliente+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.Nombre, c.Documento, c.Email, c.TipoDocumento,
			c.Domicilio, c.Provincia, c.CondicionIVA, c.CondicionPago, c.Origen,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert cliente %d: %w", c.ID, err)
		}
	}
	return tx.Commit(ctx)
}
