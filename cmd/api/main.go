package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/facturacion"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/application/padron"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/domain/repository"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/jsonbin"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/memoria"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/postgres"
	"github.com/matiasmusu2018/tusfacturas-backend/internal/infrastructure/tusfacturas"
	httpRouter "github.com/matiasmusu2018/tusfacturas-backend/internal/interfaces/http"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/config"
	"github.com/matiasmusu2018/tusfacturas-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if !cfg.TusFacturas.Configuradas() {
		log.Warn().Msg("credenciales de TusFacturas incompletas: los envíos de lote van a fallar")
	}

	ctx := context.Background()
	clienteRepo, plantillaRepo, almacen, cerrar := construirAlmacen(ctx, cfg, log)
	defer cerrar()

	submitter := tusfacturas.NewClient(
		cfg.TusFacturas.BaseURL,
		time.Duration(cfg.TusFacturas.TimeoutSegundos)*time.Second,
	)

	clientesUC := padron.NewClientesUseCase(clienteRepo, log)
	plantillasUC := padron.NewPlantillasUseCase(plantillaRepo, log)
	enviarLoteUC := facturacion.NewEnviarLoteUseCase(
		clienteRepo, plantillaRepo, submitter,
		facturacion.Opciones{
			Credenciales: tusfacturas.Credenciales{
				APIKey:    cfg.TusFacturas.APIKey,
				APIToken:  cfg.TusFacturas.APIToken,
				UserToken: cfg.TusFacturas.UserToken,
			},
			PuntoVenta:   cfg.TusFacturas.PuntoVenta,
			Pausa:        time.Duration(cfg.TusFacturas.PausaMs) * time.Millisecond,
			TimeoutEnvio: time.Duration(cfg.TusFacturas.TimeoutSegundos) * time.Second,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		// Un lote grande tarda: n envíos con pausa de por medio.
		WriteTimeout: time.Minute * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TusFacturas Backend API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientesUC:   clientesUC,
		PlantillasUC: plantillasUC,
		EnviarLote:   enviarLoteUC,
		Almacen:      almacen,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// construirAlmacen arma los repositorios según el driver configurado.
// jsonbin sin credenciales degrada a memoria para poder levantar en
// desarrollo sin configurar nada.
func construirAlmacen(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.ClienteRepository, repository.PlantillaRepository, string, func()) {
	switch cfg.Almacen.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		log.Info().Msg("almacén: PostgreSQL")
		return postgres.NewClienteRepository(pool), postgres.NewPlantillaRepository(pool), "postgres", pool.Close

	case "jsonbin":
		if cfg.JSONBin.Configurado() {
			cliente := jsonbin.NewClient(cfg.JSONBin.BaseURL, cfg.JSONBin.APIKey, 0)
			log.Info().Msg("almacén: JSONBin")
			return jsonbin.NewClienteRepo(cliente, cfg.JSONBin.ClientesBinID),
				jsonbin.NewPlantillaRepo(cliente, cfg.JSONBin.TemplatesBinID),
				"jsonbin", func() {}
		}
		log.Warn().Msg("JSONBin sin configurar, usando almacén en memoria")
		fallthrough

	default:
		log.Info().Msg("almacén: memoria")
		return memoria.NewClienteRepo(nil), memoria.NewPlantillaRepo(nil), "memoria", func() {}
	}
}
