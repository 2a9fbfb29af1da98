package storefront_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/application/storefront"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
)

type settings map[string]*string

func (s settings) GetAll(context.Context) (dto.SettingsResponse, error) { return dto.SettingsResponse(s), nil }

func newStore(t *testing.T) (*storefront.UseCase, *memdb.DB) {
	t.Helper()
	db := memdb.New()
	r := db.Repos()
	st := memdb.NewStorage()
	name := "Loja"
	cfg := settings{"company_name": &name}
	quotes := quoting.NewUseCase(quoting.Deps{
		Tx: db, Quotes: r.Quotes, Products: r.Products, PriceTiers: r.PriceTiers,
		Clients: r.Clients, Users: db.Users(), PaymentMethods: db.PaymentMethods(),
		Settings: cfg, PublicURL: "https://loja.test",
	})
	return storefront.NewUseCase(storefront.Deps{
		Products: r.Products, PriceTiers: r.PriceTiers, Images: r.Images,
		Categories: r.Categories, Storage: st, Settings: cfg, Quotes: quotes,
	}), db
}

// seedProducts crea n productos con slug "p00".."pNN" (prefijado con prefix si no es vacío)
// y devuelve sus ids en orden de creación.
func seedProducts(t *testing.T, db *memdb.DB, n int, categoryID *string, prefix string) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		slug := fmt.Sprintf("p%02d", i)
		if prefix != "" {
			slug = prefix + "-" + slug
		}
		id := uuid.NewString()
		require.NoError(t, db.Repos().Products.Create(ctx, &entity.Product{
			ID: id, Name: "Produto " + slug, Slug: slug, Price: decimal.NewFromInt(10),
			CategoryID: categoryID, CreatedAt: time.Now(),
		}))
		ids = append(ids, id)
	}
	return ids
}

func TestProducts_Paginacion(t *testing.T) {
	uc, db := newStore(t)
	ids := seedProducts(t, db, 30, nil, "")

	res, err := uc.Products(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Len(t, res.Items, 6)
	assert.Equal(t, dto.StorefrontPage{Page: 3, PerPage: storefront.PerPage, Total: 30, LastPage: 3}, res.Page)

	res, err = uc.Products(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page.Page)
	require.Len(t, res.Items, 12)
	assert.Equal(t, ids[29], res.Items[0].ID, "más recientes primero")
	assert.Equal(t, "p29", res.Items[0].Slug)
}

func TestProducts_PaginaPosteriorALaUltima(t *testing.T) {
	uc, db := newStore(t)
	seedProducts(t, db, 5, nil, "")

	for _, page := range []int{2, 1 << 40, math.MaxInt} {
		res, err := uc.Products(context.Background(), "", page)
		require.NoError(t, err, "page %d", page)
		assert.Empty(t, res.Items)
		assert.Equal(t, 5, res.Page.Total)
		assert.Equal(t, 1, res.Page.LastPage)
		assert.Equal(t, page, res.Page.Page)
	}
}

func TestProducts_CategoriaMalFormada(t *testing.T) {
	uc, db := newStore(t)
	seedProducts(t, db, 1, nil, "")

	_, err := uc.Products(context.Background(), "abc", 1)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "err = %v", err)
	assert.Contains(t, verr.Fields, "category_id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProducts_FiltroCategoriaEImagenPrincipal(t *testing.T) {
	uc, db := newStore(t)
	ctx := context.Background()
	repos := db.Repos()
	cat := uuid.NewString()
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: cat, Name: "Canecas"}))
	seedProducts(t, db, 3, nil, "")
	inCat := seedProducts(t, db, 2, &cat, "cat")
	require.NoError(t, repos.Images.Create(ctx, &entity.ProductImage{
		ID: uuid.NewString(), ProductID: inCat[0], Path: "products/" + inCat[0] + "/a.jpg", IsMain: true,
	}))

	res, err := uc.Products(ctx, cat, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.Total)
	require.Len(t, res.Categories, 1)
	for _, p := range res.Items {
		assert.Equal(t, "Canecas", p.CategoryName)
		if p.ID == inCat[0] {
			assert.Equal(t, "http://cdn.test/products/"+inCat[0]+"/a.jpg", p.MainImageURL)
		} else {
			assert.Empty(t, p.MainImageURL)
		}
	}

	empty, err := uc.Products(ctx, uuid.NewString(), 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 1, empty.Page.LastPage)
}

func TestProductBySlug(t *testing.T) {
	uc, db := newStore(t)
	ctx := context.Background()
	ids := seedProducts(t, db, 1, nil, "")
	require.NoError(t, db.Repos().PriceTiers.Replace(ctx, ids[0], []entity.PriceTier{
		{ID: uuid.NewString(), ProductID: ids[0], MinQuantity: 10, Price: decimal.NewFromInt(8)},
	}))

	p, err := uc.ProductBySlug(ctx, "p00")
	require.NoError(t, err)
	assert.Len(t, p.PriceTiers, 1)

	_, err = uc.ProductBySlug(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartYEnvio(t *testing.T) {
	uc, db := newStore(t)
	ctx := context.Background()
	ids := seedProducts(t, db, 2, nil, "")

	cart, err := uc.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Products, 2)
	assert.Equal(t, "Loja", *cart.Settings["company_name"])

	items := []dto.QuoteItemInput{{ProductID: ids[0], Quantity: 3}}
	preview, err := uc.PreviewCart(ctx, dto.QuotePreviewRequest{Items: items})
	require.NoError(t, err)
	assert.True(t, preview.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 0, db.QuoteCount())

	created, err := uc.SubmitQuote(ctx, dto.SelfServiceQuoteRequest{ClientName: "Maria", ClientContact: "maria@example.com", Items: items})
	require.NoError(t, err)
	assert.Equal(t, "https://loja.test/orcamento/"+created.UniqueHash, created.PublicURL)
	assert.Equal(t, 1, db.QuoteCount())
	assert.Equal(t, 1, db.ClientCount())
}
