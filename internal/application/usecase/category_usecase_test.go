package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
)

func TestCategoryUseCase_CreateDuplicado(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewCategoryUseCase(db.Repos().Categories, db)

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "  Brindes "})
	require.NoError(t, err)
	assert.Equal(t, "Brindes", c.Name)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Brindes"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "   "})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
}

func TestCategoryUseCase_DeleteDejaProductosSinCategoria(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repos := db.Repos()
	uc := usecase.NewCategoryUseCase(repos.Categories, db)

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Canecas"})
	require.NoError(t, err)
	catID := c.ID
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Caneca", Slug: "caneca", Price: decimal.NewFromInt(10), CategoryID: &catID}))

	require.NoError(t, uc.Delete(ctx, c.ID))

	p, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p, "el producto sobrevive")
	assert.Nil(t, p.CategoryID)

	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestCategoryUseCase_DeleteFallidoNoTocaProductos(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repos := db.Repos()
	uc := usecase.NewCategoryUseCase(repos.Categories, db)

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: "Canecas"})
	require.NoError(t, err)
	catID := c.ID
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Caneca", Slug: "caneca", Price: decimal.NewFromInt(10), CategoryID: &catID}))

	db.FailOn("categories.Delete", errors.New("lock timeout"))
	require.Error(t, uc.Delete(ctx, c.ID))

	p, _ := repos.Products.GetByID(ctx, "p1")
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, catID, *p.CategoryID)
}

func TestCategoryUseCase_ListPaginado(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	uc := usecase.NewCategoryUseCase(db.Repos().Categories, db)
	for _, n := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, dto.CategoryRequest{Name: n})
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "A", res.Items[0].Name)

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", all[0].Name)
	assert.Len(t, all, 3)
}
