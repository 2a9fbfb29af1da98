// Package pricing resuelve el precio unitario por volumen (servicio de dominio, sin I/O).
package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// MaxQuantity cantidad máxima de una línea de cotización, ya fusionada, y de los
// límites de un tramo.
const MaxQuantity = 1_000_000

// Cotas exclusivas de las columnas NUMERIC(10,2) de precios y NUMERIC(12,2) del total.
var (
	maxPrice = decimal.New(1, 8)
	maxTotal = decimal.New(1, 10)
)

// PriceProblem devuelve el motivo por el que p no es un precio almacenable, o "".
// Un precio válido es >= 0, tiene como mucho dos decimales y es menor que 100.000.000.
func PriceProblem(p decimal.Decimal) string {
	switch {
	case p.IsNegative():
		return "debe ser mayor o igual a 0"
	case !p.Equal(p.Truncate(2)):
		return "admite como máximo 2 decimales"
	case p.GreaterThanOrEqual(maxPrice):
		return "debe ser menor que 100000000"
	}
	return ""
}

// TotalFits informa si el total de una cotización cabe en su columna.
func TotalFits(total decimal.Decimal) bool {
	return total.LessThan(maxTotal)
}

// ResolveUnitPrice devuelve el precio del tramo con mayor MinQuantity <= qty,
// o basePrice si ningún tramo aplica. MaxQuantity no se consulta.
func ResolveUnitPrice(basePrice decimal.Decimal, tiers []entity.PriceTier, qty int) decimal.Decimal {
	price := basePrice
	best := 0
	for _, t := range tiers {
		if t.MinQuantity <= qty && t.MinQuantity > best {
			best = t.MinQuantity
			price = t.Price
		}
	}
	return price
}

// LineTotal = unitPrice * qty.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// ValidateTiers comprueba la consistencia de un conjunto de tramos antes de persistirlo:
// MinQuantity >= 1, MaxQuantity >= MinQuantity, mínimos distintos, sin solapamiento y
// como máximo un tramo abierto (que debe ser el más alto). Las cantidades no superan
// MaxQuantity y el precio cumple PriceProblem.
// Devuelve *domain.ValidationError con claves price_tiers[i].campo.
func ValidateTiers(tiers []entity.PriceTier) error {
	verr := &domain.ValidationError{}
	for i, t := range tiers {
		if t.MinQuantity < 1 {
			verr.Add(tierField(i, "min_quantity"), "debe ser mayor o igual a 1")
		}
		if t.MinQuantity > MaxQuantity {
			verr.Add(tierField(i, "min_quantity"), fmt.Sprintf("debe ser menor o igual a %d", MaxQuantity))
		}
		if t.MaxQuantity != nil {
			switch {
			case *t.MaxQuantity < t.MinQuantity:
				verr.Add(tierField(i, "max_quantity"), "debe ser mayor o igual a min_quantity")
			case *t.MaxQuantity > MaxQuantity:
				verr.Add(tierField(i, "max_quantity"), fmt.Sprintf("debe ser menor o igual a %d", MaxQuantity))
			}
		}
		if msg := PriceProblem(t.Price); msg != "" {
			verr.Add(tierField(i, "price"), msg)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	idx := make([]int, len(tiers))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tiers[idx[a]].MinQuantity < tiers[idx[b]].MinQuantity
	})
	for k := 1; k < len(idx); k++ {
		prev, cur := tiers[idx[k-1]], tiers[idx[k]]
		switch {
		case prev.MinQuantity == cur.MinQuantity:
			verr.Add(tierField(idx[k], "min_quantity"), "mínimo repetido")
		case prev.MaxQuantity == nil:
			verr.Add(tierField(idx[k-1], "max_quantity"), "solo el tramo más alto puede ser abierto")
		case *prev.MaxQuantity >= cur.MinQuantity:
			verr.Add(tierField(idx[k], "min_quantity"), "se solapa con el tramo anterior")
		}
	}
	return verr.OrNil()
}

func tierField(i int, name string) string {
	return fmt.Sprintf("price_tiers[%d].%s", i, name)
}
