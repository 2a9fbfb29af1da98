package quoting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/pricing"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

// priceItems resuelve el precio unitario de cada línea y acumula el total.
// Las líneas con el mismo producto se fusionan sumando cantidades antes de resolver el
// tramo, de modo que las líneas persistidas y el total siempre coinciden.
// Un producto inexistente, una cantidad fusionada mayor que pricing.MaxQuantity o un
// total que no cabe en la columna devuelven *domain.ValidationError sin efectos.
func priceItems(
	ctx context.Context,
	products repository.ProductRepository,
	tiers repository.PriceTierRepository,
	in []dto.QuoteItemInput,
) ([]entity.QuoteItem, decimal.Decimal, error) {
	type merged struct {
		index     int // posición de la primera aparición (para el mensaje de error)
		productID string
		quantity  int
	}
	order := make([]*merged, 0, len(in))
	byID := make(map[string]*merged, len(in))
	verr := &domain.ValidationError{}
	for i, it := range in {
		if m, ok := byID[it.ProductID]; ok {
			if it.Quantity > pricing.MaxQuantity-m.quantity {
				verr.Add(fmt.Sprintf("items[%d].quantity", i),
					fmt.Sprintf("la cantidad total del producto no puede superar %d", pricing.MaxQuantity))
				continue
			}
			m.quantity += it.Quantity
			continue
		}
		m := &merged{index: i, productID: it.ProductID, quantity: it.Quantity}
		byID[it.ProductID] = m
		order = append(order, m)
	}

	if err := verr.OrNil(); err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	items := make([]entity.QuoteItem, 0, len(order))
	for _, m := range order {
		p, err := products.GetByID(ctx, m.productID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if p == nil {
			verr.Add(fmt.Sprintf("items[%d].product_id", m.index), "el producto no existe")
			continue
		}
		pt, err := tiers.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		unit := pricing.ResolveUnitPrice(p.Price, pt, m.quantity)
		total = total.Add(pricing.LineTotal(unit, m.quantity))
		items = append(items, entity.QuoteItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    m.quantity,
			UnitPrice:   unit,
		})
	}
	if err := verr.OrNil(); err != nil {
		return nil, decimal.Zero, err
	}
	if !pricing.TotalFits(total) {
		return nil, decimal.Zero, domain.NewValidationError("items", "el total de la cotización supera el máximo permitido")
	}
	return items, total, nil
}
