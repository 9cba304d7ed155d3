// @title        Gestor de Ventas API
// @version      1.0
// @description  Vendedores, clientes, pedidos y líneas con estadísticas de ingresos.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestorventas/deposito-api/internal/application/auth"
	"github.com/gestorventas/deposito-api/internal/application/usecase"
	"github.com/gestorventas/deposito-api/internal/infrastructure/mail"
	"github.com/gestorventas/deposito-api/internal/infrastructure/metrics"
	infrapdf "github.com/gestorventas/deposito-api/internal/infrastructure/pdf"
	"github.com/gestorventas/deposito-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorventas/deposito-api/internal/interfaces/http"
	"github.com/gestorventas/deposito-api/pkg/config"
	"github.com/gestorventas/deposito-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	vendorRepo := postgres.NewVendorRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	lineRepo := postgres.NewOrderLineRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	collectors := metrics.New()
	mailer := mail.New(cfg.SMTP, log.Component("mail"))
	guard := usecase.NewOwnershipGuard(vendorRepo, clientRepo, orderRepo, lineRepo)

	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	clientUC := usecase.NewClientUseCase(clientRepo, guard)
	productUC := usecase.NewProductUseCase(productRepo)
	orderUC := usecase.NewOrderUseCase(usecase.OrderDeps{
		Orders:   orderRepo,
		Lines:    lineRepo,
		Products: productRepo,
		Vendors:  vendorRepo,
		Clients:  clientRepo,
		Guard:    guard,
		Notifier: mail.NewOrderMailer(mailer),
		Renderer: infrapdf.NewMarotoOrderReport(cfg.App.Name),
		Metrics:  collectors,
		Log:      log.Component("pedidos"),
	})
	lineUC := usecase.NewOrderLineUseCase(lineRepo, productRepo, guard, txRunner, collectors)
	statsUC := usecase.NewStatsUseCase(statsRepo, vendorRepo, clientRepo)
	authUC := auth.NewAuthUseCase(vendorRepo, mailer, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	}, time.Duration(cfg.Auth.ResetCodeTTL)*time.Minute, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), collectors))

	// Swagger UI en local: http://localhost:<port>/docs (generar con `swag init -g cmd/api/main.go`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gestor de Ventas API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: falta la especificación")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(collectors.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		VendorUC:  vendorUC,
		ClientUC:  clientUC,
		ProductUC: productUC,
		OrderUC:   orderUC,
		LineUC:    lineUC,
		StatsUC:   statsUC,
		JWTSecret: cfg.JWT.Secret,
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
