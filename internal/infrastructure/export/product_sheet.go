// Package export genera la planilla XLSX del catálogo.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
)

const (
	SheetProducts = "Produtos"
	SheetTiers    = "Faixas de preço"
)

var (
	productHeaders = []string{"ID", "Nome", "Slug", "Categoria", "Preço", "Preço promocional", "Descrição", "Criado em"}
	tierHeaders    = []string{"Produto", "Slug", "Qtd. mínima", "Qtd. máxima", "Preço"}
)

// ProductSheetExporter implementa ports.ProductSheetExporter con excelize.
type ProductSheetExporter struct{}

var _ ports.ProductSheetExporter = (*ProductSheetExporter)(nil)

func NewProductSheetExporter() *ProductSheetExporter { return &ProductSheetExporter{} }

// ExportProducts escribe una hoja de productos y otra con sus tramos de precio.
func (e *ProductSheetExporter) ExportProducts(_ context.Context, products []dto.ProductResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProducts); err != nil {
		return nil, fmt.Errorf("export: hoja productos: %w", err)
	}
	if _, err := f.NewSheet(SheetTiers); err != nil {
		return nil, fmt.Errorf("export: hoja tramos: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	if err := writeHeader(f, SheetProducts, productHeaders, bold); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetTiers, tierHeaders, bold); err != nil {
		return nil, err
	}

	tierRow := 2
	for i, p := range products {
		var promo any
		if p.PromotionalPrice != nil {
			promo = p.PromotionalPrice.InexactFloat64()
		}
		values := []any{
			p.ID, p.Name, p.Slug, p.CategoryName,
			p.Price.InexactFloat64(), promo, p.Description,
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, SheetProducts, i+2, values); err != nil {
			return nil, err
		}
		for _, t := range p.PriceTiers {
			var maxQty any
			if t.MaxQuantity != nil {
				maxQty = *t.MaxQuantity
			}
			if err := writeRow(f, SheetTiers, tierRow, []any{p.Name, p.Slug, t.MinQuantity, maxQty, t.Price.InexactFloat64()}); err != nil {
				return nil, err
			}
			tierRow++
		}
	}

	_ = f.SetColWidth(SheetProducts, "B", "B", 36)
	_ = f.SetColWidth(SheetProducts, "G", "G", 48)
	_ = f.SetColWidth(SheetTiers, "A", "A", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := writeRow(f, sheet, 1, row); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", end, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: fila %d de %s: %w", row, sheet, err)
	}
	return nil
}
