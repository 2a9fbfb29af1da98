// Package quoting arma, revisa y publica cotizaciones: resolución de precio por volumen,
// escritura atómica de cabecera y líneas, y vistas públicas por token.
package quoting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/pkg/validation"
)

// SettingsProvider lectura de la configuración de la empresa (implementado por usecase.SettingUseCase).
type SettingsProvider interface {
	GetAll(ctx context.Context) (dto.SettingsResponse, error)
}

// Deps dependencias del caso de uso.
type Deps struct {
	Tx             ports.TxRunner
	Quotes         repository.QuoteRepository
	Products       repository.ProductRepository
	PriceTiers     repository.PriceTierRepository
	Clients        repository.ClientRepository
	Users          repository.UserRepository
	PaymentMethods repository.PaymentMethodRepository
	Settings       SettingsProvider
	PDF            ports.QuotePDFGenerator
	XML            ports.QuoteXMLGenerator
	// PublicURL base de los enlaces públicos, sin barra final (ej. https://loja.com.br).
	PublicURL string
}

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	tx        ports.TxRunner
	quotes    repository.QuoteRepository
	products  repository.ProductRepository
	tiers     repository.PriceTierRepository
	clients   repository.ClientRepository
	users     repository.UserRepository
	payments  repository.PaymentMethodRepository
	settings  SettingsProvider
	pdf       ports.QuotePDFGenerator
	xml       ports.QuoteXMLGenerator
	publicURL string
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		tx:        d.Tx,
		quotes:    d.Quotes,
		products:  d.Products,
		tiers:     d.PriceTiers,
		clients:   d.Clients,
		users:     d.Users,
		payments:  d.PaymentMethods,
		settings:  d.Settings,
		pdf:       d.PDF,
		xml:       d.XML,
		publicURL: strings.TrimRight(d.PublicURL, "/"),
	}
}

// Create arma la cotización del panel. userID es el vendedor autenticado.
// Cabecera y líneas se escriben en una sola transacción; cualquier producto inexistente
// aborta antes de escribir.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var id string
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := requireClient(ctx, r.Clients, in.ClientID); err != nil {
			return err
		}
		items, total, err := priceItems(ctx, r.Products, r.PriceTiers, in.Items)
		if err != nil {
			return err
		}
		q := newQuote(in.ClientID, total)
		if userID != "" {
			q.UserID = &userID
		}
		q.PaymentTerms = strings.TrimSpace(in.PaymentTerms)
		q.DeliveryInfo = strings.TrimSpace(in.DeliveryInfo)
		if err := r.Quotes.Create(ctx, q); err != nil {
			return err
		}
		id = q.ID
		return r.Quotes.ReplaceItems(ctx, q.ID, withQuoteID(items, q.ID))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// CreateSelfService arma la cotización enviada desde la tienda. El cliente se busca por
// contacto principal (o se crea) dentro de la misma transacción; no hay vendedor.
func (uc *UseCase) CreateSelfService(ctx context.Context, in dto.SelfServiceQuoteRequest) (*dto.QuoteCreatedResponse, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientContact = strings.TrimSpace(in.ClientContact)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var q *entity.Quote
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		items, total, err := priceItems(ctx, r.Products, r.PriceTiers, in.Items)
		if err != nil {
			return err
		}
		client, err := usecase.FindOrCreateClient(ctx, r.Clients, in.ClientContact, in.ClientName)
		if err != nil {
			return err
		}
		q = newQuote(client.ID, total)
		if err := r.Quotes.Create(ctx, q); err != nil {
			return err
		}
		return r.Quotes.ReplaceItems(ctx, q.ID, withQuoteID(items, q.ID))
	})
	if err != nil {
		return nil, err
	}
	return &dto.QuoteCreatedResponse{
		ID:         q.ID,
		UniqueHash: q.UniqueHash,
		PublicURL:  uc.publicLink(q.UniqueHash),
		Total:      q.TotalAmount,
	}, nil
}

// Update revisa la cotización: sobrescribe cliente, estado, condiciones y total, y
// reemplaza todas las líneas por las enviadas (misma garantía atómica que Create).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	in.Status = strings.TrimSpace(in.Status)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		q, err := r.Quotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if err := requireClient(ctx, r.Clients, in.ClientID); err != nil {
			return err
		}
		items, total, err := priceItems(ctx, r.Products, r.PriceTiers, in.Items)
		if err != nil {
			return err
		}
		q.ClientID = in.ClientID
		q.Status = in.Status
		q.PaymentTerms = strings.TrimSpace(in.PaymentTerms)
		q.DeliveryInfo = strings.TrimSpace(in.DeliveryInfo)
		q.TotalAmount = total
		q.UpdatedAt = time.Now()
		if err := r.Quotes.Update(ctx, q); err != nil {
			return err
		}
		return r.Quotes.ReplaceItems(ctx, q.ID, withQuoteID(items, q.ID))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina la cotización y sus líneas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		q, err := r.Quotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if err := r.Quotes.ReplaceItems(ctx, id, nil); err != nil {
			return err
		}
		return r.Quotes.Delete(ctx, id)
	})
}

// Get detalle de la cotización con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withItems(ctx, q)
}

// List lista cotizaciones con cliente y vendedor, más recientes primero.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.QuoteListResponse, error) {
	page.DefaultPage()
	list, err := uc.quotes.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.quotes.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, uc.ToQuoteResponse(q, nil))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetPublic vista pública por token: cotización, cliente, vendedor y configuración.
func (uc *UseCase) GetPublic(ctx context.Context, token string) (*dto.PublicQuoteResponse, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}
	q, err := uc.quotes.GetByHash(ctx, token)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return uc.public(ctx, q)
}

// Preview calcula líneas y total de un carrito sin persistir nada.
func (uc *UseCase) Preview(ctx context.Context, in dto.QuotePreviewRequest) (*dto.QuotePreviewResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	items, total, err := priceItems(ctx, uc.products, uc.tiers, in.Items)
	if err != nil {
		return nil, err
	}
	return &dto.QuotePreviewResponse{Items: toLines(items), Total: total}, nil
}

// FormData productos con tramos, clientes y formas de pago activas para los formularios.
func (uc *UseCase) FormData(ctx context.Context) (*dto.QuoteFormDataResponse, error) {
	products, err := ProductsWithTiers(ctx, uc.products, uc.tiers)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	methods, err := uc.payments.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteFormDataResponse{
		Products:       products,
		Clients:        usecase.ToClientResponses(clients),
		PaymentMethods: usecase.ToPaymentMethodResponses(methods),
	}, nil
}

// ProductsWithTiers todos los productos por nombre con sus tramos.
func ProductsWithTiers(ctx context.Context, products repository.ProductRepository, tiers repository.PriceTierRepository) ([]dto.ProductResponse, error) {
	list, err := products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	byProduct, err := tiers.ListByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		r := usecase.ToProductResponse(p)
		r.PriceTiers = usecase.ToPriceTierResponses(byProduct[p.ID])
		out = append(out, r)
	}
	return out, nil
}

// ToQuoteResponse mapea la cabecera; items puede ser nil (listados).
func (uc *UseCase) ToQuoteResponse(q *entity.Quote, items []entity.QuoteItem) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:           q.ID,
		UniqueHash:   q.UniqueHash,
		PublicURL:    uc.publicLink(q.UniqueHash),
		ClientID:     q.ClientID,
		ClientName:   q.ClientName,
		UserID:       q.UserID,
		UserName:     q.UserName,
		Status:       q.Status,
		TotalAmount:  q.TotalAmount,
		PaymentTerms: q.PaymentTerms,
		DeliveryInfo: q.DeliveryInfo,
		Items:        toLines(items),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func (uc *UseCase) withItems(ctx context.Context, q *entity.Quote) (*dto.QuoteResponse, error) {
	items, err := uc.quotes.Items(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	out := uc.ToQuoteResponse(q, items)
	if out.Items == nil {
		out.Items = []dto.QuoteLineResponse{}
	}
	return &out, nil
}

func (uc *UseCase) public(ctx context.Context, q *entity.Quote) (*dto.PublicQuoteResponse, error) {
	detail, err := uc.withItems(ctx, q)
	if err != nil {
		return nil, err
	}
	client, err := uc.clients.GetByID(ctx, q.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.PublicQuoteResponse{
		Quote:  *detail,
		Client: usecase.ToClientResponse(client),
	}
	if q.UserID != nil {
		u, err := uc.users.GetByID(ctx, *q.UserID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			out.Seller = &dto.SellerResponse{Name: u.Name, Email: u.Email}
		}
	}
	settings, err := uc.settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out.Settings = settings
	return out, nil
}

func (uc *UseCase) publicLink(hash string) string {
	return uc.publicURL + "/orcamento/" + hash
}

func newQuote(clientID string, total decimal.Decimal) *entity.Quote {
	now := time.Now()
	return &entity.Quote{
		ID:          uuid.New().String(),
		UniqueHash:  NewToken(),
		ClientID:    clientID,
		Status:      entity.QuoteStatusDefault,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewToken genera el token público: 32 caracteres hexadecimales de un UUID v4 (122 bits aleatorios).
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func requireClient(ctx context.Context, clients repository.ClientRepository, id string) error {
	c, err := clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("client_id", "el cliente no existe")
	}
	return nil
}

func withQuoteID(items []entity.QuoteItem, quoteID string) []entity.QuoteItem {
	for i := range items {
		items[i].QuoteID = quoteID
	}
	return items
}

func toLines(items []entity.QuoteItem) []dto.QuoteLineResponse {
	if items == nil {
		return nil
	}
	out := make([]dto.QuoteLineResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.QuoteLineResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}
