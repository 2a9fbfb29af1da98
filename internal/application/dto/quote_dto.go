package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemInput línea enviada en formularios de cotización o carrito.
// El máximo de quantity es pricing.MaxQuantity.
type QuoteItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1,max=1000000"`
}

// CreateQuoteRequest entrada del panel para crear una cotización.
type CreateQuoteRequest struct {
	ClientID     string           `json:"client_id" validate:"required,uuid"`
	PaymentTerms string           `json:"payment_terms"`
	DeliveryInfo string           `json:"delivery_info"`
	Items        []QuoteItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest entrada del panel para revisar una cotización. Items reemplaza todas las líneas.
type UpdateQuoteRequest struct {
	ClientID     string           `json:"client_id" validate:"required,uuid"`
	PaymentTerms string           `json:"payment_terms"`
	DeliveryInfo string           `json:"delivery_info"`
	Status       string           `json:"status" validate:"required,max=255"`
	Items        []QuoteItemInput `json:"items" validate:"required,min=1,dive"`
}

// SelfServiceQuoteRequest cotización enviada desde la tienda sin sesión.
type SelfServiceQuoteRequest struct {
	ClientName    string           `json:"client_name" validate:"required,max=255"`
	ClientContact string           `json:"client_contact" validate:"required,max=255"`
	Items         []QuoteItemInput `json:"items" validate:"required,min=1,dive"`
}

// QuotePreviewRequest carrito a cotizar sin persistir.
type QuotePreviewRequest struct {
	Items []QuoteItemInput `json:"items" validate:"required,min=1,dive"`
}

// QuoteLineResponse línea con precio resuelto.
type QuoteLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// QuoteResponse salida de una cotización. Items solo se llena en el detalle.
type QuoteResponse struct {
	ID           string              `json:"id"`
	UniqueHash   string              `json:"unique_hash"`
	PublicURL    string              `json:"public_url"`
	ClientID     string              `json:"client_id"`
	ClientName   string              `json:"client_name"`
	UserID       *string             `json:"user_id"`
	UserName     string              `json:"user_name,omitempty"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	PaymentTerms string              `json:"payment_terms"`
	DeliveryInfo string              `json:"delivery_info"`
	Items        []QuoteLineResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// SellerResponse vendedor mostrado en la vista pública.
type SellerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicQuoteResponse vista pública por token: cotización, cliente, vendedor y datos de la empresa.
type PublicQuoteResponse struct {
	Quote    QuoteResponse      `json:"quote"`
	Client   ClientResponse     `json:"client"`
	Seller   *SellerResponse    `json:"seller"`
	Settings map[string]*string `json:"settings"`
}

// QuotePreviewResponse carrito con precios resueltos.
type QuotePreviewResponse struct {
	Items []QuoteLineResponse `json:"items"`
	Total decimal.Decimal     `json:"total"`
}

// QuoteFormDataResponse datos para los formularios de cotización del panel.
type QuoteFormDataResponse struct {
	Products       []ProductResponse       `json:"products"`
	Clients        []ClientResponse        `json:"clients"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
}

// QuoteCreatedResponse respuesta de la creación por autoservicio.
type QuoteCreatedResponse struct {
	ID         string          `json:"id"`
	UniqueHash string          `json:"unique_hash"`
	PublicURL  string          `json:"public_url"`
	Total      decimal.Decimal `json:"total"`
}
