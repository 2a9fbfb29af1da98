package quoting

import (
	"context"
	"fmt"

	"github.com/jhoicas/Orcamentos-api/internal/domain"
)

// PDF genera el PDF de la cotización pública identificada por token.
func (uc *UseCase) PDF(ctx context.Context, token string) (pdfBytes []byte, filename string, err error) {
	pub, err := uc.GetPublic(ctx, token)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateQuotePDF(ctx, pub)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, documentName(pub.Quote.UniqueHash, "pdf"), nil
}

// XML exporta la cotización como UBL 2.1 Quotation.
func (uc *UseCase) XML(ctx context.Context, id string) (xmlBytes []byte, filename string, err error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	pub, err := uc.public(ctx, q)
	if err != nil {
		return nil, "", err
	}
	xmlBytes, err = uc.xml.GenerateQuoteXML(ctx, pub)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return xmlBytes, documentName(q.UniqueHash, "xml"), nil
}

func documentName(hash, ext string) string {
	short := hash
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("orcamento-%s.%s", short, ext)
}
