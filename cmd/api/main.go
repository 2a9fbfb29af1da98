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
	zlog "github.com/rs/zerolog/log"

	appanalytics "github.com/jhoicas/Orcamentos-api/internal/application/analytics"
	"github.com/jhoicas/Orcamentos-api/internal/application/auth"
	"github.com/jhoicas/Orcamentos-api/internal/application/maintenance"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/application/storefront"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Orcamentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/storage"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/Orcamentos-api/internal/interfaces/http"
	"github.com/jhoicas/Orcamentos-api/pkg/config"
	"github.com/jhoicas/Orcamentos-api/pkg/logger"
)

const (
	bodyLimit      = 8 << 20 // imágenes de hasta 5 MB más el overhead de multipart
	sweepTimeout   = 5 * time.Minute
	shutdownWindow = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	// writeError usa el logger global
	zlog.Logger = log.Zerolog()
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

	if !cfg.Storage.Enabled() {
		log.Fatal().Msg("STORAGE_ENDPOINT es obligatorio")
	}
	imageStorage, err := storage.NewMinIOStorage(ctx, cfg.Storage, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al storage de imágenes")
	}

	var settingsCache ports.SettingsCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		settingsCache = cache.NewRedisSettingsCache(rdb, cfg.Redis.SettingsTTL)
	}

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	tierRepo := postgres.NewPriceTierRepository(pool)
	imageRepo := postgres.NewProductImageRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	paymentRepo := postgres.NewPaymentMethodRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	settingUC := usecase.NewSettingUseCase(settingRepo, txRunner, settingsCache, log.Component("settings"))
	productUC := usecase.NewProductUseCase(usecase.ProductDeps{
		Tx:         txRunner,
		Products:   productRepo,
		PriceTiers: tierRepo,
		Images:     imageRepo,
		Categories: categoryRepo,
		Storage:    imageStorage,
		Exporter:   export.NewProductSheetExporter(),
		Log:        log.Component("products"),
	})
	imageUC := usecase.NewProductImageUseCase(txRunner, productRepo, imageRepo, imageStorage, log.Component("images"))
	quoteUC := quoting.NewUseCase(quoting.Deps{
		Tx:             txRunner,
		Quotes:         quoteRepo,
		Products:       productRepo,
		PriceTiers:     tierRepo,
		Clients:        clientRepo,
		Users:          userRepo,
		PaymentMethods: paymentRepo,
		Settings:       settingUC,
		PDF:            infrapdf.NewQuotePDFGenerator(),
		XML:            ubl.NewQuotationBuilder(),
		PublicURL:      cfg.App.PublicURL,
	})
	storefrontUC := storefront.NewUseCase(storefront.Deps{
		Products:   productRepo,
		PriceTiers: tierRepo,
		Images:     imageRepo,
		Categories: categoryRepo,
		Storage:    imageStorage,
		Settings:   settingUC,
		Quotes:     quoteUC,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    bodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Orçamentos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CategoryUC:      usecase.NewCategoryUseCase(categoryRepo, txRunner),
		ProductUC:       productUC,
		ProductImageUC:  imageUC,
		ClientUC:        usecase.NewClientUseCase(clientRepo),
		PaymentMethodUC: usecase.NewPaymentMethodUseCase(paymentRepo),
		UserUC:          usecase.NewUserUseCase(userRepo),
		SettingUC:       settingUC,
		QuoteUC:         quoteUC,
		StorefrontUC:    storefrontUC,
		DashboardUC:     appanalytics.NewDashboardUseCase(analyticsRepo),
		JWTSecret:       cfg.JWT.Secret,
	})

	// Limpieza de imágenes huérfanas (subidas cuya fila no llegó a escribirse o borradas a medias).
	jobs := scheduler.New(log.Component("scheduler"), sweepTimeout)
	if cfg.Maintenance.OrphanSweepCron != "" {
		sweeper := maintenance.NewOrphanSweeper(imageRepo, imageStorage, cfg.Maintenance.OrphanGrace, log.Component("sweeper"))
		err := jobs.Add("orphan-images", cfg.Maintenance.OrphanSweepCron, func(ctx context.Context) error {
			_, err := sweeper.Sweep(ctx)
			return err
		})
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Maintenance.OrphanSweepCron).Msg("programar limpieza de imágenes")
		}
	}
	jobs.Start()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tareas programadas sin terminar")
	}

	log.Info().Msg("aplicación detenida")
}
