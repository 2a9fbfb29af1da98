package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/Orcamentos-api/internal/application/analytics"
	"github.com/jhoicas/Orcamentos-api/internal/application/auth"
	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/application/storefront"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/export"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Orcamentos-api/internal/infrastructure/ubl"
	apphttp "github.com/jhoicas/Orcamentos-api/internal/interfaces/http"
	"github.com/jhoicas/Orcamentos-api/internal/testutil/memdb"
	pkgjwt "github.com/jhoicas/Orcamentos-api/pkg/jwt"
)

type fixedAnalytics struct{}

func (fixedAnalytics) Counts(context.Context) (repository.CatalogCounts, error) {
	return repository.CatalogCounts{Products: 2, Clients: 1, Quotes: 0}, nil
}
func (fixedAnalytics) QuotesByStatus(context.Context) ([]repository.StatusCount, error) {
	return nil, nil
}
func (fixedAnalytics) QuotedAmount(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (fixedAnalytics) RecentQuotes(context.Context, int) ([]*entity.Quote, error) {
	return nil, nil
}

type server struct {
	app     *fiber.App
	db      *memdb.DB
	storage *memdb.Storage
	admin   *entity.User
	seller  *entity.User
}

func newServer(t *testing.T) *server {
	t.Helper()
	ctx := context.Background()
	db := memdb.New()
	repos := db.Repos()
	storage := memdb.NewStorage()
	log := zerolog.Nop()

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	s := &server{db: db, storage: storage}
	s.admin = &entity.User{ID: uuid.NewString(), Name: "Admin", Email: "admin@loja.test", PasswordHash: string(hash), Role: entity.RoleAdmin}
	s.seller = &entity.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@loja.test", PasswordHash: string(hash), Role: entity.RoleVendedor}
	require.NoError(t, db.Users().Create(ctx, s.admin))
	require.NoError(t, db.Users().Create(ctx, s.seller))

	settingUC := usecase.NewSettingUseCase(repos.Settings, db, nil, log)
	quoteUC := quoting.NewUseCase(quoting.Deps{
		Tx:             db,
		Quotes:         repos.Quotes,
		Products:       repos.Products,
		PriceTiers:     repos.PriceTiers,
		Clients:        repos.Clients,
		Users:          db.Users(),
		PaymentMethods: db.PaymentMethods(),
		Settings:       settingUC,
		PDF:            pdf.NewQuotePDFGenerator(),
		XML:            ubl.NewQuotationBuilder(),
		PublicURL:      "https://loja.test",
	})

	s.app = fiber.New()
	apphttp.Router(s.app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(db.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		CategoryUC: usecase.NewCategoryUseCase(repos.Categories, db),
		ProductUC: usecase.NewProductUseCase(usecase.ProductDeps{
			Tx: db, Products: repos.Products, PriceTiers: repos.PriceTiers, Images: repos.Images,
			Categories: repos.Categories, Storage: storage, Exporter: export.NewProductSheetExporter(), Log: log,
		}),
		ProductImageUC:  usecase.NewProductImageUseCase(db, repos.Products, repos.Images, storage, log),
		ClientUC:        usecase.NewClientUseCase(repos.Clients),
		PaymentMethodUC: usecase.NewPaymentMethodUseCase(db.PaymentMethods()),
		UserUC:          usecase.NewUserUseCase(db.Users()),
		SettingUC:       settingUC,
		QuoteUC:         quoteUC,
		StorefrontUC: storefront.NewUseCase(storefront.Deps{
			Products: repos.Products, PriceTiers: repos.PriceTiers, Images: repos.Images,
			Categories: repos.Categories, Storage: storage, Settings: settingUC, Quotes: quoteUC,
		}),
		DashboardUC: appanalytics.NewDashboardUseCase(fixedAnalytics{}),
		JWTSecret:   testJWTSecret,
	})
	return s
}

func (s *server) token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func (s *server) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *server) createProduct(t *testing.T, tok string, body map[string]any) dto.ProductResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/products", tok, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestLogin_YRutaProtegida(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@loja.test", "password": "segredo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = s.do(t, http.MethodGet, "/api/categories", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@loja.test", "password": "errada123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCategories_ValidacionYDuplicado(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.seller)

	resp := s.do(t, http.MethodPost, "/api/categories", tok, map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "name")

	resp = s.do(t, http.MethodPost, "/api/categories", tok, map[string]string{"name": "Canecas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/categories", tok, map[string]string{"name": "Canecas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for _, id := range []string{"no-existe", uuid.NewString()} {
		resp = s.do(t, http.MethodGet, "/api/categories/"+id, tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
		resp.Body.Close()
	}
}

func TestProducts_CuerpoInvalidoYValidacion(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.seller)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPost, "/api/products", tok, map[string]any{"name": "Caneca"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "price")
}

func TestQuotes_FlujoCompletoConEnlacePublico(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.seller)

	caneca := s.createProduct(t, tok, map[string]any{
		"name":  "Caneca Térmica",
		"price": "10.00",
		"price_tiers": []map[string]any{
			{"min_quantity": 10, "price": "9.00"},
			{"min_quantity": 50, "price": "7.50"},
		},
	})
	assert.Equal(t, "caneca-termica", caneca.Slug)
	adesivo := s.createProduct(t, tok, map[string]any{"name": "Adesivo", "price": "3.25"})

	resp := s.do(t, http.MethodPost, "/api/clients", tok, map[string]string{"name": "Padaria", "contact_main": "11 99999-0000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	client := decode[dto.ClientResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/api/quotes", tok, map[string]any{
		"client_id": client.ID,
		"items": []map[string]any{
			{"product_id": caneca.ID, "quantity": 75},
			{"product_id": adesivo.ID, "quantity": 4},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	quote := decode[dto.QuoteResponse](t, resp)
	assert.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("575.50")), "total %s", quote.TotalAmount)
	require.NotNil(t, quote.UserID)
	assert.Equal(t, s.seller.ID, *quote.UserID)
	assert.Equal(t, "https://loja.test/orcamento/"+quote.UniqueHash, quote.PublicURL)

	// vista pública sin sesión
	resp = s.do(t, http.MethodGet, "/orcamento/"+quote.UniqueHash, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pub := decode[dto.PublicQuoteResponse](t, resp)
	assert.Equal(t, "Padaria", pub.Client.Name)
	require.NotNil(t, pub.Seller)
	assert.Equal(t, "Ana", pub.Seller.Name)

	resp = s.do(t, http.MethodGet, "/orcamento/"+quote.UniqueHash+"/pdf", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orcamento-"+quote.UniqueHash[:8]+".pdf")
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = s.do(t, http.MethodGet, "/api/quotes/"+quote.ID+"/xml", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), "<Quotation")
	assert.Contains(t, string(raw), quote.UniqueHash)

	resp = s.do(t, http.MethodGet, "/orcamento/ffffffffffffffffffffffffffffffff", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// revisión: reemplaza las líneas y recalcula
	resp = s.do(t, http.MethodPut, "/api/quotes/"+quote.ID, tok, map[string]any{
		"client_id": client.ID,
		"status":    "Aprovado",
		"items":     []map[string]any{{"product_id": adesivo.ID, "quantity": 10}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	revised := decode[dto.QuoteResponse](t, resp)
	assert.Equal(t, "Aprovado", revised.Status)
	assert.True(t, revised.TotalAmount.Equal(decimal.RequireFromString("32.50")))
	assert.Equal(t, 1, s.db.ItemCount())

	resp = s.do(t, http.MethodDelete, "/api/quotes/"+quote.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, s.db.QuoteCount())
}

func TestUsers_SoloAdminYSinAutoEliminacion(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/users", s.token(t, s.seller), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	admin := s.token(t, s.admin)
	resp = s.do(t, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.UserListResponse](t, resp)
	assert.Equal(t, 2, list.Page.Total)

	resp = s.do(t, http.MethodDelete, "/api/users/"+s.admin.ID, admin, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 2, s.db.UserCount())

	resp = s.do(t, http.MethodDelete, "/api/users/"+s.seller.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, s.db.UserCount())
}

func TestSettings_EscrituraAdminYLecturaPublica(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/settings", s.token(t, s.seller), map[string]string{"company_name": "Loja"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	admin := s.token(t, s.admin)
	resp = s.do(t, http.MethodPost, "/api/settings", admin, map[string]string{"company_email": "no-es-email"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "company_email")

	resp = s.do(t, http.MethodPost, "/api/settings", admin, map[string]string{"company_name": "Loja Exemplo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/storefront/settings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[map[string]*string](t, resp)
	require.NotNil(t, settings["company_name"])
	assert.Equal(t, "Loja Exemplo", *settings["company_name"])
}

func TestStorefront_EnvioDeCotizacion(t *testing.T) {
	s := newServer(t)
	p := s.createProduct(t, s.token(t, s.seller), map[string]any{"name": "Boné", "price": "25.00"})

	resp := s.do(t, http.MethodGet, "/api/storefront/products/"+p.Slug, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/storefront/quotes", "", map[string]any{
		"client_name":    "Maria",
		"client_contact": "maria@cliente.test",
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.QuoteCreatedResponse](t, resp)
	assert.True(t, created.Total.Equal(decimal.RequireFromString("75")))
	assert.Equal(t, "https://loja.test/orcamento/"+created.UniqueHash, created.PublicURL)
	assert.Equal(t, 1, s.db.ClientCount())

	resp = s.do(t, http.MethodPost, "/api/storefront/quotes", "", map[string]any{
		"client_name":    "Maria",
		"client_contact": "maria@cliente.test",
		"items":          []map[string]any{{"product_id": uuid.NewString(), "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "el producto no existe", decode[dto.ErrorResponse](t, resp).Fields["items[0].product_id"])

	resp = s.do(t, http.MethodPost, "/api/storefront/quotes", "", map[string]any{
		"client_name":    "Maria",
		"client_contact": "maria@cliente.test",
		"items":          []map[string]any{{"product_id": "abc", "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "debe ser un identificador válido", decode[dto.ErrorResponse](t, resp).Fields["items[0].product_id"])

	resp = s.do(t, http.MethodPost, "/api/storefront/cart/preview", "", map[string]any{
		"items": []map[string]any{{"product_id": p.ID, "quantity": 1 << 40}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "items[0].quantity")
	assert.Equal(t, 1, s.db.QuoteCount())
}

func TestStorefront_FiltrosDeVitrina(t *testing.T) {
	s := newServer(t)
	s.createProduct(t, s.token(t, s.seller), map[string]any{"name": "Boné", "price": "25.00"})

	resp := s.do(t, http.MethodGet, "/api/storefront/products?category_id=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "category_id")

	resp = s.do(t, http.MethodGet, "/api/storefront/products?page=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StorefrontProductsResponse](t, resp)
	assert.Empty(t, out.Items)
	assert.Equal(t, 1, out.Page.Total)
}

func TestRutas_IdNoUUIDResponde404(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.admin)
	p := s.createProduct(t, tok, map[string]any{"name": "Caneca", "price": "10"})
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/quotes/abc"},
		{http.MethodPut, "/api/quotes/abc"},
		{http.MethodDelete, "/api/quotes/abc"},
		{http.MethodGet, "/api/quotes/abc/xml"},
		{http.MethodGet, "/api/products/abc"},
		{http.MethodDelete, "/api/products/abc"},
		{http.MethodGet, "/api/products/abc/price-tiers"},
		{http.MethodGet, "/api/products/abc/images"},
		{http.MethodPut, "/api/products/" + p.ID + "/images/abc/main"},
		{http.MethodDelete, "/api/products/" + p.ID + "/images/abc"},
		{http.MethodGet, "/api/clients/abc"},
		{http.MethodDelete, "/api/payment-methods/abc"},
		{http.MethodGet, "/api/users/abc"},
		{http.MethodGet, "/api/categories/" + strings.ReplaceAll(p.ID, "-", "")},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := s.do(t, tc.method, tc.path, tok, map[string]any{})
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestProductImages_Upload(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.seller)
	p := s.createProduct(t, tok, map[string]any{"name": "Caneca", "price": "10"})

	upload := func(contentType string, withFile bool) *http.Response {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if withFile {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", `form-data; name="image"; filename="foto.png"`)
			h.Set("Content-Type", contentType)
			part, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = part.Write([]byte("\x89PNG fake"))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/products/"+p.ID+"/images", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload("image/png", true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	img := decode[dto.ProductImageResponse](t, resp)
	assert.True(t, img.IsMain)
	assert.True(t, strings.HasPrefix(img.Path, "products/"+p.ID+"/"))
	assert.Equal(t, "http://cdn.test/"+img.Path, img.URL)
	assert.Len(t, s.storage.Objects, 1)

	resp = upload("application/pdf", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = upload("", false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "image")
	assert.Len(t, s.storage.Objects, 1)
}

func TestProducts_Export(t *testing.T) {
	s := newServer(t)
	tok := s.token(t, s.seller)
	s.createProduct(t, tok, map[string]any{"name": "Caneca", "price": "10"})

	resp := s.do(t, http.MethodGet, "/api/products/export", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestDashboard(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/dashboard", s.token(t, s.seller), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 2, summary.ProductCount)
	assert.NotEmpty(t, summary.DateLabel)
}
