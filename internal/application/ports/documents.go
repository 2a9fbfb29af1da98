package ports

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
)

// QuotePDFGenerator genera la representación imprimible de una cotización.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *dto.PublicQuoteResponse) ([]byte, error)
}

// QuoteXMLGenerator exporta la cotización como documento UBL 2.1 Quotation.
type QuoteXMLGenerator interface {
	GenerateQuoteXML(ctx context.Context, quote *dto.PublicQuoteResponse) ([]byte, error)
}

// ProductSheetExporter exporta el catálogo a una planilla.
type ProductSheetExporter interface {
	ExportProducts(ctx context.Context, products []dto.ProductResponse) ([]byte, error)
}
