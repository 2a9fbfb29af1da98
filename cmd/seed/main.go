// seed crea el primer administrador y las formas de pago iniciales.
//
// Uso: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Es idempotente: si el email ya existe o ya hay formas de pago, no hace nada.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Orcamentos-api/pkg/config"
	"github.com/jhoicas/Orcamentos-api/pkg/logger"
)

var defaultPaymentMethods = []dto.PaymentMethodRequest{
	{Name: "Pix", Description: "Pagamento instantâneo via Pix"},
	{Name: "Boleto", Description: "Boleto bancário com vencimento em 3 dias úteis"},
	{Name: "Cartão de crédito", Description: "Parcelamento conforme condições da loja"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	in := dto.CreateUserRequest{
		Name:                 envOr("SEED_ADMIN_NAME", "Administrador"),
		Email:                os.Getenv("SEED_ADMIN_EMAIL"),
		Password:             password,
		PasswordConfirmation: password,
		Role:                 entity.RoleAdmin,
	}
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	u, err := users.Create(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", in.Email).Msg("administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador (SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios)")
	default:
		log.Info().Str("id", u.ID).Str("email", u.Email).Msg("administrador creado")
	}

	methods := usecase.NewPaymentMethodUseCase(postgres.NewPaymentMethodRepository(pool))
	existing, err := methods.List(ctx, dto.PageRequest{Limit: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("listar formas de pago")
	}
	if existing.Page.Total > 0 {
		log.Info().Int("total", existing.Page.Total).Msg("formas de pago ya cargadas")
		return
	}
	active := true
	for _, pm := range defaultPaymentMethods {
		pm.IsActive = &active
		if _, err := methods.Create(ctx, pm); err != nil {
			log.Fatal().Err(err).Str("name", pm.Name).Msg("crear forma de pago")
		}
	}
	log.Info().Int("total", len(defaultPaymentMethods)).Msg("formas de pago creadas")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
