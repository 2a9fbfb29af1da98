// Package pdf genera la versión imprimible de una cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Empresa + CNPJ              │  ORÇAMENTO + Nº + Data        │
//	│  Contacto de la empresa                                      │
//	│  Cliente + contactos  │  Vendedor                            │
//	│  Qtd | Produto | Preço unit. | Subtotal                      │
//	│  TOTAL                                                       │
//	│  Condiciones de pago / entrega / observaciones               │
//	│  QR al enlace público                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// QuotePDFGenerator implementa ports.QuotePDFGenerator.
type QuotePDFGenerator struct{}

var _ ports.QuotePDFGenerator = (*QuotePDFGenerator)(nil)

func NewQuotePDFGenerator() *QuotePDFGenerator { return &QuotePDFGenerator{} }

// GenerateQuotePDF arma el documento con los datos de la vista pública.
func (g *QuotePDFGenerator) GenerateQuotePDF(_ context.Context, pub *dto.PublicQuoteResponse) ([]byte, error) {
	if pub == nil {
		return nil, fmt.Errorf("pdf: cotización nil")
	}
	company := setting(pub.Settings, "company_name", "Orçamento")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento "+shortHash(pub.Quote.UniqueHash), true).
		WithAuthor(company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(pub, company))
	m.AddRows(companyRow(pub.Settings))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(pub))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(pub.Quote.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(pub.Quote.TotalAmount))
	m.AddRows(termsRows(pub)...)

	if pub.Quote.PublicURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(qrRow(pub.Quote.PublicURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(pub *dto.PublicQuoteResponse, company string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("CNPJ: "+setting(pub.Settings, "company_cnpj", "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Nº "+strings.ToUpper(shortHash(pub.Quote.UniqueHash)), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Data: "+pub.Quote.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func companyRow(s map[string]*string) core.Row {
	addr := strings.Join(nonBlank(
		setting(s, "company_address", ""),
		setting(s, "company_city", ""),
		setting(s, "company_state", ""),
		setting(s, "company_zip", ""),
	), " - ")
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   Tel: %s   |   Email: %s",
			nonEmpty(addr, "—"),
			setting(s, "company_phone", "—"),
			setting(s, "company_email", "—"),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func partiesRow(pub *dto.PublicQuoteResponse) core.Row {
	contacts := strings.Join(nonBlank(pub.Client.ContactMain, pub.Client.ContactSecondary), " / ")
	seller := "—"
	if pub.Seller != nil {
		seller = pub.Seller.Name
		if pub.Seller.Email != "" {
			seller += " <" + pub.Seller.Email + ">"
		}
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(pub.Client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(contacts, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("VENDEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}),
			text.New(seller, props.Text{Size: 9, Top: 6, Align: align.Right}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 6, align.Left),
		h("Preço unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableRows(items []dto.QuoteLineResponse) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatBRL(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatBRL(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatBRL(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func termsRows(pub *dto.PublicQuoteResponse) []core.Row {
	var rows []core.Row
	add := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 8, Top: 5}),
		)))
	}
	add("Condições de pagamento", pub.Quote.PaymentTerms)
	add("Entrega", pub.Quote.DeliveryInfo)
	add("Observações", setting(pub.Settings, "company_observations", ""))
	return rows
}

func qrRow(url string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Consulte este orçamento online:", props.Text{Size: 8, Top: 6, Left: 3, Color: colorGray}),
			text.New(url, props.Text{Style: fontstyle.Bold, Size: 8, Top: 12, Left: 3, Color: colorPrimary}),
		),
	)
}

func setting(s map[string]*string, key, fallback string) string {
	if v, ok := s[key]; ok && v != nil && strings.TrimSpace(*v) != "" {
		return *v
	}
	return fallback
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// formatBRL "1234567.5" → "R$ 1.234.567,50".
func formatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles: "1000000" → "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
