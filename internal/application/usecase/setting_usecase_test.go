package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
)

func str(s string) *string { return &s }

func TestSettingUseCase_SaveParcial(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewSettingUseCase(db.Repos().Settings, db, nil, zerolog.Nop())

	_, err := uc.Save(ctx, dto.SettingsRequest{"company_name": str("Loja"), "company_phone": str("1199")})
	require.NoError(t, err)

	got, err := uc.Save(ctx, dto.SettingsRequest{"company_phone": str(" 2133 ")})
	require.NoError(t, err)
	assert.Equal(t, "Loja", *got["company_name"], "las claves no enviadas no cambian")
	assert.Equal(t, "2133", *got["company_phone"])

	got, err = uc.Save(ctx, dto.SettingsRequest{"company_phone": str("  ")})
	require.NoError(t, err)
	v, ok := got["company_phone"]
	assert.True(t, ok)
	assert.Nil(t, v, "un valor vacío se guarda como nulo")
}

func TestSettingUseCase_SaveValida(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewSettingUseCase(db.Repos().Settings, db, nil, zerolog.Nop())

	_, err := uc.Save(ctx, dto.SettingsRequest{
		"company_name":     str("Loja"),
		"company_email":    str("no-es-email"),
		"social_instagram": str("instagram.com/loja"),
		"hacker":           str("x"),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "clave desconocida", verr.Fields["hacker"])
	assert.Contains(t, verr.Fields, "company_email")
	assert.Contains(t, verr.Fields, "social_instagram")
	assert.NotContains(t, verr.Fields, "company_name")

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nada se escribe si hay errores")
}

func TestSettingUseCase_SaveAtomico(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewSettingUseCase(db.Repos().Settings, db, nil, zerolog.Nop())
	db.FailOn("settings.Upsert:company_phone", errors.New("db caída"))

	_, err := uc.Save(ctx, dto.SettingsRequest{"company_name": str("Loja"), "company_phone": str("1")})
	require.Error(t, err)

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, "company_name")
}

func TestSettingUseCase_Cache(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	cache := &memdb.Cache{}
	uc := usecase.NewSettingUseCase(db.Repos().Settings, db, cache, zerolog.Nop())

	_, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, cache.Has, "la lectura llena la caché")

	cache.Entry = map[string]*string{"company_name": str("desde caché")}
	got, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "desde caché", *got["company_name"])

	got, err = uc.Save(ctx, dto.SettingsRequest{"company_name": str("Loja")})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Invalidated)
	assert.Equal(t, "Loja", *got["company_name"])
}

func TestSettingKeys(t *testing.T) {
	keys := usecase.SettingKeys()
	assert.Contains(t, keys, "company_name")
	assert.Contains(t, keys, "social_linkedin")
	assert.IsIncreasing(t, keys)
}

func TestSettingUseCase_CNPJ(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewSettingUseCase(db.Repos().Settings, db, nil, zerolog.Nop())

	_, err := uc.Save(ctx, dto.SettingsRequest{"company_cnpj": str("11.222.333/0001-80")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "debe ser un CNPJ válido", verr.Fields["company_cnpj"])

	got, err := uc.Save(ctx, dto.SettingsRequest{"company_cnpj": str("11222333000181")})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", *got["company_cnpj"], "se guarda con máscara")

	got, err = uc.Save(ctx, dto.SettingsRequest{"company_cnpj": str("  ")})
	require.NoError(t, err)
	assert.Nil(t, got["company_cnpj"], "vacío lo borra")
}
