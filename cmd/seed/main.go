// seed carga un padrón de ejemplo (clientes y plantillas) en el almacén
// configurado. Pensado para levantar un entorno de desarrollo con datos
// facturables sin pasar por el frontend.
//
// Uso: go run ./cmd/seed
// Respeta ALMACEN_DRIVER igual que el servidor; con memoria no tiene sentido
// (el proceso termina y se pierde), así que exige jsonbin o postgres.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/entity"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/jsonbin"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/postgres"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clienteRepo, plantillaRepo, err := repos(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	clientes := clientesEjemplo()
	plantillas := plantillasEjemplo()

	if err := clienteRepo.ReplaceAll(ctx, clientes); err != nil {
		fmt.Fprintf(os.Stderr, "guardar clientes: %v\n", err)
		os.Exit(1)
	}
	if err := plantillaRepo.ReplaceAll(ctx, plantillas); err != nil {
		fmt.Fprintf(os.Stderr, "guardar plantillas: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed completo: %d clientes, %d plantillas (%s)\n", len(clientes), len(plantillas), cfg.Almacen.Driver)
}

func repos(ctx context.Context, cfg *config.Config) (repository.ClienteRepository, repository.PlantillaRepository, error) {
	switch cfg.Almacen.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return nil, nil, err
		}
		return postgres.NewClienteRepository(pool), postgres.NewPlantillaRepository(pool), nil
	case "jsonbin":
		if !cfg.JSONBin.Configurado() {
			return nil, nil, fmt.Errorf("JSONBin sin configurar: faltan JSONBIN_API_KEY y los bin IDs")
		}
		kv := jsonbin.NewClient(cfg.JSONBin.BaseURL, cfg.JSONBin.APIKey, 0)
		return jsonbin.NewClienteRepo(kv, cfg.JSONBin.ClientesBinID), jsonbin.NewPlantillaRepo(kv, cfg.JSONBin.TemplatesBinID), nil
	default:
		return nil, nil, fmt.Errorf("ALMACEN_DRIVER=%q: el seed requiere jsonbin o postgres", cfg.Almacen.Driver)
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func clientesEjemplo() []entity.Cliente {
	return []entity.Cliente{
		{ID: 1, Nombre: "Estudio Contable García SA", Documento: "30712345678", Email: "admin@garcia.test", CondicionIVA: "RI", CondicionPago: "30"},
		{ID: 2, Nombre: "Logística del Sur SRL", Documento: "30787654321", Email: "pagos@logsur.test", CondicionIVA: "RI"},
		{ID: 3, Nombre: "Consultora Andina SAS", Documento: "30755555559", CondicionIVA: "RI", CondicionPago: "15"},
	}
}

func plantillasEjemplo() []entity.Plantilla {
	alicuotaDiez := dec("10.5")
	return []entity.Plantilla{
		{ID: 1, ClienteID: 1, Concepto: "Abono mensual de soporte", Monto: dec("150000"), Cantidad: dec("1"), Selected: false},
		{ID: 2, ClienteID: 2, Concepto: "Servicio de consultoría", Monto: dec("85000"), Cantidad: dec("2"), BonificacionPorcentaje: dec("10"), Selected: false},
		{ID: 3, ClienteID: 3, Concepto: "Mantenimiento de sistemas", Items: []entity.ItemPlantilla{
			{Cantidad: dec("1"), Precio: dec("120000"), Descripcion: "Mantenimiento base"},
			{Cantidad: dec("4"), Precio: dec("15000"), Alicuota: &alicuotaDiez, Descripcion: "Horas adicionales"},
		}, Selected: false},
	}
}
