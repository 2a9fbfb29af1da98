package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func TestResolveUnitPrice_SinTramosUsaPrecioBase(t *testing.T) {
	for _, q := range []int{1, 2, 10, 1000} {
		got := pricing.ResolveUnitPrice(d("12.34"), nil, q)
		assert.True(t, got.Equal(d("12.34")), "qty=%d", q)
	}
}

func TestResolveUnitPrice_TramoConMayorMinimo(t *testing.T) {
	tiers := []entity.PriceTier{
		{MinQuantity: 50, Price: d("7.50")},
		{MinQuantity: 10, Price: d("9.00")},
	}
	cases := []struct {
		qty  int
		want string
	}{
		{5, "10.00"},
		{9, "10.00"},
		{10, "9.00"},
		{49, "9.00"},
		{50, "7.50"},
		{75, "7.50"},
	}
	for _, tc := range cases {
		got := pricing.ResolveUnitPrice(d("10.00"), tiers, tc.qty)
		assert.True(t, got.Equal(d(tc.want)), "qty=%d: got %s want %s", tc.qty, got, tc.want)
	}
}

func TestResolveUnitPrice_IgnoraMaxQuantity(t *testing.T) {
	tiers := []entity.PriceTier{{MinQuantity: 10, MaxQuantity: intPtr(20), Price: d("9.00")}}
	got := pricing.ResolveUnitPrice(d("10.00"), tiers, 500)
	assert.True(t, got.Equal(d("9.00")))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, pricing.LineTotal(d("7.50"), 75).Equal(d("562.5")))
	assert.True(t, pricing.LineTotal(d("0.10"), 3).Equal(d("0.3")))
}

func TestValidateTiers_Validos(t *testing.T) {
	err := pricing.ValidateTiers([]entity.PriceTier{
		{MinQuantity: 50, Price: d("7.50")},
		{MinQuantity: 10, MaxQuantity: intPtr(49), Price: d("9.00")},
	})
	assert.NoError(t, err)
	assert.NoError(t, pricing.ValidateTiers(nil))
}

func TestValidateTiers_Errores(t *testing.T) {
	cases := []struct {
		name  string
		tiers []entity.PriceTier
		field string
	}{
		{"minimo cero", []entity.PriceTier{{MinQuantity: 0, Price: d("1")}}, "price_tiers[0].min_quantity"},
		{"max menor que min", []entity.PriceTier{{MinQuantity: 10, MaxQuantity: intPtr(5), Price: d("1")}}, "price_tiers[0].max_quantity"},
		{"precio negativo", []entity.PriceTier{{MinQuantity: 1, Price: d("-1")}}, "price_tiers[0].price"},
		{"precio con tres decimales", []entity.PriceTier{{MinQuantity: 1, Price: d("9.999")}}, "price_tiers[0].price"},
		{"precio fuera de rango", []entity.PriceTier{{MinQuantity: 1, Price: d("1e12")}}, "price_tiers[0].price"},
		{"minimo enorme", []entity.PriceTier{{MinQuantity: pricing.MaxQuantity + 1, Price: d("1")}}, "price_tiers[0].min_quantity"},
		{"maximo enorme", []entity.PriceTier{{MinQuantity: 1, MaxQuantity: intPtr(pricing.MaxQuantity + 1), Price: d("1")}}, "price_tiers[0].max_quantity"},
		{"minimo repetido", []entity.PriceTier{
			{MinQuantity: 10, MaxQuantity: intPtr(19), Price: d("1")},
			{MinQuantity: 10, Price: d("2")},
		}, "price_tiers[1].min_quantity"},
		{"solapamiento", []entity.PriceTier{
			{MinQuantity: 10, MaxQuantity: intPtr(60), Price: d("1")},
			{MinQuantity: 50, Price: d("2")},
		}, "price_tiers[1].min_quantity"},
		{"abierto no es el mas alto", []entity.PriceTier{
			{MinQuantity: 10, Price: d("1")},
			{MinQuantity: 50, Price: d("2")},
		}, "price_tiers[0].max_quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pricing.ValidateTiers(tc.tiers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestPriceProblem(t *testing.T) {
	for _, ok := range []string{"0", "0.01", "10.5", "10.50", "99999999.99"} {
		assert.Empty(t, pricing.PriceProblem(d(ok)), ok)
	}
	for _, bad := range []string{"-0.01", "9.999", "0.001", "100000000", "1e12"} {
		assert.NotEmpty(t, pricing.PriceProblem(d(bad)), bad)
	}
}

func TestTotalFits(t *testing.T) {
	assert.True(t, pricing.TotalFits(d("9999999999.99")))
	assert.False(t, pricing.TotalFits(d("10000000000")))
}
