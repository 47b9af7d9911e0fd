package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Comercia-api/internal/application/analytics"
	"github.com/jhoicas/Comercia-api/internal/application/auth"
	"github.com/jhoicas/Comercia-api/internal/application/catalog"
	"github.com/jhoicas/Comercia-api/internal/application/documents"
	"github.com/jhoicas/Comercia-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Comercia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comercia-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Comercia-api/internal/interfaces/http"
	"github.com/jhoicas/Comercia-api/pkg/config"
	"github.com/jhoicas/Comercia-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variationRepo := postgres.NewVariationRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	imageStore := storage.NewImageStore(cfg.Storage.PublicDir)

	authUC := auth.NewAuthUseCase(txRunner, userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, txRunner, imageStore)
	userUC := usecase.NewUserUseCase(txRunner, userRepo, imageStore)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, variationRepo, imageStore)
	orderUC := usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo)
	settingUC := usecase.NewSettingUseCase(settingRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)

	// PDF: resumen descargable del pedido
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := documents.NewOrderPDFUseCase(
		orderRepo, companyRepo, customerRepo, productRepo, pdfGenerator,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware entra
	// en pánico si el archivo no existe, así que solo se monta cuando el
	// swagger.json generado está presente.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Comercia API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imágenes persistidas (logos, productos, variaciones, avatares)
	app.Static("/images", cfg.Storage.PublicDir+"/images")

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		OrderUC:     orderUC,
		OrderPDFUC:  orderPDFUC,
		SettingUC:   settingUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
