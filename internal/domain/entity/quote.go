package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatusDefault estado inicial de toda cotización. El estado es texto libre.
const QuoteStatusDefault = "Pendente"

// Quote cabecera de una cotización.
// UniqueHash es el token público (no adivinable) con el que se consulta sin sesión.
type Quote struct {
	ID           string
	UniqueHash   string
	ClientID     string
	UserID       *string // nil: originada en la tienda (autoservicio)
	Status       string
	TotalAmount  decimal.Decimal
	PaymentTerms string
	DeliveryInfo string
	ClientName   string // solo lectura (JOIN)
	UserName     string // solo lectura (JOIN)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// QuoteItem línea de la cotización (pivote quote_product).
// UnitPrice queda congelado al momento de cotizar.
type QuoteItem struct {
	QuoteID     string
	ProductID   string
	ProductName string // solo lectura (JOIN)
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal devuelve UnitPrice * Quantity.
func (i QuoteItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
