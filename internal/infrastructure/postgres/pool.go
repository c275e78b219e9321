package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matiasmusu2018/tusfacturas-backend/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL a partir de la configuración.
// Registra el codec NUMERIC/DECIMAL -> shopspring/decimal en todas las
// conexiones para que los importes viajen sin pasar por float64.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// EnsureSchema crea las tablas si no existen. El esquema es chico y estable;
// no justifica todavía un sistema de migraciones.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS clientes (
		id              BIGINT PRIMARY KEY,
		nombre          TEXT NOT NULL,
		documento       TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		tipo_documento  TEXT NOT NULL DEFAULT 'CUIT',
		domicilio       TEXT NOT NULL DEFAULT '',
		provincia       TEXT NOT NULL DEFAULT '',
		condicion_iva   TEXT NOT NULL DEFAULT '',
		condicion_pago  TEXT NOT NULL DEFAULT '',
		origen          TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS plantillas (
		id                       BIGINT PRIMARY KEY,
		cliente_id               BIGINT NOT NULL,
		concepto                 TEXT NOT NULL DEFAULT '',
		monto                    NUMERIC(14,2) NOT NULL DEFAULT 0,
		precio                   NUMERIC(14,2) NOT NULL DEFAULT 0,
		cantidad                 NUMERIC(14,3) NOT NULL DEFAULT 0,
		alicuota                 NUMERIC(5,2),
		bonificacion_porcentaje  NUMERIC(5,2) NOT NULL DEFAULT 0,
		condicion_pago           TEXT NOT NULL DEFAULT '',
		percepciones             JSONB NOT NULL DEFAULT '[]',
		items                    JSONB NOT NULL DEFAULT '[]',
		rubro                    TEXT NOT NULL DEFAULT '',
		rubro_grupo_contable     TEXT NOT NULL DEFAULT '',
		leyenda_gral             TEXT NOT NULL DEFAULT '',
		selected                 BOOLEAN NOT NULL DEFAULT FALSE
	);`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
