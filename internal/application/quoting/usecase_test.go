package quoting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/pricing"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
)

type staticSettings map[string]*string

func (s staticSettings) GetAll(context.Context) (dto.SettingsResponse, error) {
	return dto.SettingsResponse(s), nil
}

type fakeDocs struct{ got *dto.PublicQuoteResponse }

func (f *fakeDocs) GenerateQuotePDF(_ context.Context, q *dto.PublicQuoteResponse) ([]byte, error) {
	f.got = q
	return []byte("%PDF-fake"), nil
}

func (f *fakeDocs) GenerateQuoteXML(_ context.Context, q *dto.PublicQuoteResponse) ([]byte, error) {
	f.got = q
	return []byte("<Quotation/>"), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	db     *memdb.DB
	uc     *quoting.UseCase
	docs   *fakeDocs
	ctx    context.Context
	client *entity.Client
	seller *entity.User
	// productos sembrados
	tiered, plain, other *entity.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memdb.New()
	repos := db.Repos()
	now := time.Now()

	f := &fixture{db: db, ctx: ctx, docs: &fakeDocs{}}
	f.tiered = &entity.Product{ID: uuid.NewString(), Name: "Caneca", Slug: "caneca", Price: d("10.00"), CreatedAt: now}
	f.plain = &entity.Product{ID: uuid.NewString(), Name: "Adesivo", Slug: "adesivo", Price: d("3.25"), CreatedAt: now}
	f.other = &entity.Product{ID: uuid.NewString(), Name: "Boné", Slug: "bone", Price: d("25.00"), CreatedAt: now}
	for _, p := range []*entity.Product{f.tiered, f.plain, f.other} {
		require.NoError(t, repos.Products.Create(ctx, p))
	}
	require.NoError(t, repos.PriceTiers.Replace(ctx, f.tiered.ID, []entity.PriceTier{
		{ID: uuid.NewString(), ProductID: f.tiered.ID, MinQuantity: 10, Price: d("9.00")},
		{ID: uuid.NewString(), ProductID: f.tiered.ID, MinQuantity: 50, Price: d("7.50")},
	}))
	f.client = &entity.Client{ID: uuid.NewString(), Name: "Padaria Central", ContactMain: "11 99999-0000"}
	require.NoError(t, repos.Clients.Create(ctx, f.client))
	f.seller = &entity.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@loja.com", Role: entity.RoleVendedor}
	require.NoError(t, db.Users().Create(ctx, f.seller))

	name := "Loja Exemplo"
	f.uc = quoting.NewUseCase(quoting.Deps{
		Tx:             db,
		Quotes:         repos.Quotes,
		Products:       repos.Products,
		PriceTiers:     repos.PriceTiers,
		Clients:        repos.Clients,
		Users:          db.Users(),
		PaymentMethods: db.PaymentMethods(),
		Settings:       staticSettings{"company_name": &name},
		PDF:            f.docs,
		XML:            f.docs,
		PublicURL:      "https://loja.test/",
	})
	return f
}

func TestCreate_TotalEsSumaDeLineas(t *testing.T) {
	f := setup(t)
	q, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID:     f.client.ID,
		PaymentTerms: "30 dias",
		Items: []dto.QuoteItemInput{
			{ProductID: f.tiered.ID, Quantity: 75},
			{ProductID: f.plain.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.True(t, q.TotalAmount.Equal(d("575.50")), "total %s", q.TotalAmount)
	assert.Equal(t, entity.QuoteStatusDefault, q.Status)
	require.NotNil(t, q.UserID)
	assert.Equal(t, f.seller.ID, *q.UserID)
	assert.Len(t, q.UniqueHash, 32)
	assert.Equal(t, "https://loja.test/orcamento/"+q.UniqueHash, q.PublicURL)
	require.Len(t, q.Items, 2)

	sum := decimal.Zero
	for _, it := range q.Items {
		sum = sum.Add(it.Subtotal)
		if it.ProductID == f.tiered.ID {
			assert.True(t, it.UnitPrice.Equal(d("7.50")))
		}
	}
	assert.True(t, sum.Equal(q.TotalAmount))
}

func TestCreate_ProductoInexistenteNoEscribeNada(t *testing.T) {
	f := setup(t)
	_, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items: []dto.QuoteItemInput{
			{ProductID: f.tiered.ID, Quantity: 1},
			{ProductID: uuid.NewString(), Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "items[1].product_id")

	assert.Equal(t, 0, f.db.QuoteCount())
	assert.Equal(t, 0, f.db.ItemCount())
}

func TestCreate_FalloAMitadHaceRollback(t *testing.T) {
	f := setup(t)
	f.db.FailOn("quotes.ReplaceItems", errors.New("conexión perdida"))

	_, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 0, f.db.QuoteCount(), "la cabecera no debe quedar sin líneas")
	assert.Equal(t, 0, f.db.ItemCount())
}

func TestCreate_ValidaEntrada(t *testing.T) {
	f := setup(t)
	cases := []struct {
		name  string
		in    dto.CreateQuoteRequest
		field string
	}{
		{"sin items", dto.CreateQuoteRequest{ClientID: f.client.ID}, "items"},
		{"cantidad cero", dto.CreateQuoteRequest{ClientID: f.client.ID, Items: []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 0}}}, "items[0].quantity"},
		{"cliente inexistente", dto.CreateQuoteRequest{ClientID: uuid.NewString(), Items: []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}}}, "client_id"},
		{"cliente mal formado", dto.CreateQuoteRequest{ClientID: "abc", Items: []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}}}, "client_id"},
		{"producto mal formado", dto.CreateQuoteRequest{ClientID: f.client.ID, Items: []dto.QuoteItemInput{{ProductID: "abc", Quantity: 1}}}, "items[0].product_id"},
		{"cantidad enorme", dto.CreateQuoteRequest{ClientID: f.client.ID, Items: []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: pricing.MaxQuantity + 1}}}, "items[0].quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(f.ctx, f.seller.ID, tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
	assert.Equal(t, 0, f.db.QuoteCount())
}

func TestCreate_FusionaProductosRepetidos(t *testing.T) {
	f := setup(t)
	q, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items: []dto.QuoteItemInput{
			{ProductID: f.tiered.ID, Quantity: 6},
			{ProductID: f.tiered.ID, Quantity: 6},
		},
	})
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 12, q.Items[0].Quantity)
	assert.True(t, q.Items[0].UnitPrice.Equal(d("9.00")), "12 unidades alcanzan el tramo de 10")
	assert.True(t, q.TotalAmount.Equal(d("108")))
}

func TestCreate_FusionNoSuperaCantidadMaxima(t *testing.T) {
	f := setup(t)
	_, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items: []dto.QuoteItemInput{
			{ProductID: f.plain.ID, Quantity: pricing.MaxQuantity},
			{ProductID: f.tiered.ID, Quantity: 1},
			{ProductID: f.plain.ID, Quantity: 1},
		},
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "err = %v", err)
	assert.Contains(t, verr.Fields, "items[2].quantity")
	assert.Equal(t, 0, f.db.QuoteCount())

	q, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items: []dto.QuoteItemInput{
			{ProductID: f.plain.ID, Quantity: pricing.MaxQuantity - 1},
			{ProductID: f.plain.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, q.Items, 1)
	assert.Equal(t, pricing.MaxQuantity, q.Items[0].Quantity)
}

func TestCreate_TotalFueraDeRango(t *testing.T) {
	f := setup(t)
	caro := &entity.Product{ID: uuid.NewString(), Name: "Painel", Slug: "painel", Price: d("99999999.99"), CreatedAt: time.Now()}
	require.NoError(t, f.db.Repos().Products.Create(f.ctx, caro))

	_, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: caro.ID, Quantity: 1000}},
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "err = %v", err)
	assert.Contains(t, verr.Fields, "items")
	assert.Equal(t, 0, f.db.QuoteCount())

	_, err = f.uc.Preview(f.ctx, dto.QuotePreviewRequest{Items: []dto.QuoteItemInput{{ProductID: caro.ID, Quantity: 100}}})
	assert.NoError(t, err)
}

func TestUpdate_ReemplazaTodasLasLineas(t *testing.T) {
	f := setup(t)
	created, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items: []dto.QuoteItemInput{
			{ProductID: f.tiered.ID, Quantity: 10},
			{ProductID: f.plain.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(f.ctx, created.ID, dto.UpdateQuoteRequest{
		ClientID:     f.client.ID,
		Status:       "Aprovado",
		DeliveryInfo: "Retirada na loja",
		Items:        []dto.QuoteItemInput{{ProductID: f.other.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, f.other.ID, updated.Items[0].ProductID)
	assert.Equal(t, 1, f.db.ItemCount(), "no deben quedar líneas anteriores")
	assert.True(t, updated.TotalAmount.Equal(d("75")))
	assert.Equal(t, "Aprovado", updated.Status)
	assert.Equal(t, "Retirada na loja", updated.DeliveryInfo)
	assert.Equal(t, created.UniqueHash, updated.UniqueHash)
	require.NotNil(t, updated.UserID)
}

func TestUpdate_FalloConservaEstadoAnterior(t *testing.T) {
	f := setup(t)
	created, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	f.db.FailOn("quotes.ReplaceItems", errors.New("timeout"))
	_, err = f.uc.Update(f.ctx, created.ID, dto.UpdateQuoteRequest{
		ClientID: f.client.ID,
		Status:   "Cancelado",
		Items:    []dto.QuoteItemInput{{ProductID: f.other.ID, Quantity: 1}},
	})
	require.Error(t, err)

	got, err := f.uc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusDefault, got.Status)
	assert.True(t, got.TotalAmount.Equal(d("6.50")))
	require.Len(t, got.Items, 1)
	assert.Equal(t, f.plain.ID, got.Items[0].ProductID)
}

func TestUpdate_RequiereEstadoYExistencia(t *testing.T) {
	f := setup(t)
	_, err := f.uc.Update(f.ctx, "q-x", dto.UpdateQuoteRequest{
		ClientID: f.client.ID,
		Status:   "Aprovado",
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Update(f.ctx, "q-x", dto.UpdateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
}

func TestCreateSelfService_ReutilizaClientePorContacto(t *testing.T) {
	f := setup(t)
	res, err := f.uc.CreateSelfService(f.ctx, dto.SelfServiceQuoteRequest{
		ClientName:    "Outro nome",
		ClientContact: f.client.ContactMain,
		Items:         []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.db.ClientCount())
	assert.Equal(t, "https://loja.test/orcamento/"+res.UniqueHash, res.PublicURL)

	pub, err := f.uc.GetPublic(f.ctx, res.UniqueHash)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, pub.Quote.ClientID)
	assert.Nil(t, pub.Quote.UserID)
	assert.Nil(t, pub.Seller)
	assert.Equal(t, "Padaria Central", pub.Client.Name)
}

func TestCreateSelfService_CreaClienteNuevo(t *testing.T) {
	f := setup(t)
	res, err := f.uc.CreateSelfService(f.ctx, dto.SelfServiceQuoteRequest{
		ClientName:    "Maria",
		ClientContact: "maria@example.com",
		Items:         []dto.QuoteItemInput{{ProductID: f.tiered.ID, Quantity: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.db.ClientCount())
	assert.True(t, res.Total.Equal(d("375")))
}

func TestCreateSelfService_ProductoInvalidoNoCreaCliente(t *testing.T) {
	f := setup(t)
	_, err := f.uc.CreateSelfService(f.ctx, dto.SelfServiceQuoteRequest{
		ClientName:    "Maria",
		ClientContact: "maria@example.com",
		Items:         []dto.QuoteItemInput{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 1, f.db.ClientCount())
	assert.Equal(t, 0, f.db.QuoteCount())
}

func TestGetPublic(t *testing.T) {
	f := setup(t)
	created, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	pub, err := f.uc.GetPublic(f.ctx, created.UniqueHash)
	require.NoError(t, err)
	require.NotNil(t, pub.Seller)
	assert.Equal(t, "Ana", pub.Seller.Name)
	require.NotNil(t, pub.Settings["company_name"])
	assert.Equal(t, "Loja Exemplo", *pub.Settings["company_name"])
	assert.Equal(t, "Adesivo", pub.Quote.Items[0].ProductName)

	_, err = f.uc.GetPublic(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el id interno no sirve como token")
	_, err = f.uc.GetPublic(f.ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreview_NoPersiste(t *testing.T) {
	f := setup(t)
	res, err := f.uc.Preview(f.ctx, dto.QuotePreviewRequest{Items: []dto.QuoteItemInput{
		{ProductID: f.tiered.ID, Quantity: 5},
		{ProductID: f.tiered.ID, Quantity: 5},
	}})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(d("90")))
	assert.Equal(t, 0, f.db.QuoteCount())
}

func TestDelete(t *testing.T) {
	f := setup(t)
	created, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(f.ctx, created.ID))
	assert.Equal(t, 0, f.db.QuoteCount())
	assert.Equal(t, 0, f.db.ItemCount())
	assert.ErrorIs(t, f.uc.Delete(f.ctx, created.ID), domain.ErrNotFound)
}

func TestList_MasRecientesPrimero(t *testing.T) {
	f := setup(t)
	var ids []string
	for i := 0; i < 3; i++ {
		q, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
			ClientID: f.client.ID,
			Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: i + 1}},
		})
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}
	res, err := f.uc.List(f.ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, ids[2], res.Items[0].ID)
	assert.Equal(t, "Padaria Central", res.Items[0].ClientName)
	assert.Equal(t, "Ana", res.Items[0].UserName)
}

func TestFormData(t *testing.T) {
	f := setup(t)
	ctx := f.ctx
	pm := f.db.PaymentMethods()
	require.NoError(t, pm.Create(ctx, &entity.PaymentMethod{ID: uuid.NewString(), Name: "PIX", IsActive: true}))
	require.NoError(t, pm.Create(ctx, &entity.PaymentMethod{ID: uuid.NewString(), Name: "Cheque", IsActive: false}))

	res, err := f.uc.FormData(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)
	assert.Equal(t, "Adesivo", res.Products[0].Name)
	for _, p := range res.Products {
		if p.ID == f.tiered.ID {
			assert.Len(t, p.PriceTiers, 2)
		}
	}
	require.Len(t, res.PaymentMethods, 1)
	assert.Equal(t, "PIX", res.PaymentMethods[0].Name)
	assert.Len(t, res.Clients, 1)
}

func TestDocuments(t *testing.T) {
	f := setup(t)
	created, err := f.uc.Create(f.ctx, f.seller.ID, dto.CreateQuoteRequest{
		ClientID: f.client.ID,
		Items:    []dto.QuoteItemInput{{ProductID: f.plain.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	pdf, name, err := f.uc.PDF(f.ctx, created.UniqueHash)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, "orcamento-"+created.UniqueHash[:8]+".pdf", name)
	assert.Equal(t, created.ID, f.docs.got.Quote.ID)

	xml, name, err := f.uc.XML(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "<Quotation/>", string(xml))
	assert.Equal(t, "orcamento-"+created.UniqueHash[:8]+".xml", name)

	_, _, err = f.uc.XML(f.ctx, "q-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := quoting.NewToken()
		assert.Len(t, tok, 32)
		assert.Regexp(t, "^[0-9a-f]{32}$", tok)
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
