// Package ubl exporta cotizaciones como documentos UBL 2.1 Quotation.
package ubl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
)

const (
	NsQuotation = "urn:oasis:names:specification:ubl:schema:xsd:Quotation-2"
	NsCac       = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc       = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	currency = "BRL"
	unitCode = "C62" // unidad
)

// QuotationBuilder implementa ports.QuoteXMLGenerator.
type QuotationBuilder struct{}

var _ ports.QuoteXMLGenerator = (*QuotationBuilder)(nil)

func NewQuotationBuilder() *QuotationBuilder { return &QuotationBuilder{} }

func (b *QuotationBuilder) GenerateQuoteXML(_ context.Context, pub *dto.PublicQuoteResponse) ([]byte, error) {
	if pub == nil {
		return nil, fmt.Errorf("ubl: cotización nil")
	}
	q := pub.Quote

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Quotation")
	root.CreateAttr("xmlns", NsQuotation)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", q.UniqueHash)
	cbc(root, "UUID", q.ID)
	cbc(root, "IssueDate", q.CreatedAt.Format("2006-01-02"))
	cbc(root, "IssueTime", q.CreatedAt.Format("15:04:05"))
	cbc(root, "Note", q.Status)
	if q.PaymentTerms != "" {
		cbc(root, "Note", q.PaymentTerms)
	}
	cbc(root, "PricingCurrencyCode", currency)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(q.Items)))

	sellerParty(root, pub)
	buyerParty(root, pub.Client)

	if q.DeliveryInfo != "" {
		cbc(root.CreateElement("cac:DeliveryTerms"), "SpecialTerms", q.DeliveryInfo)
	}

	total := root.CreateElement("cac:QuotedMonetaryTotal")
	amount(total, "LineExtensionAmount", q.TotalAmount)
	amount(total, "PayableAmount", q.TotalAmount)

	for i, it := range q.Items {
		line := root.CreateElement("cac:QuotationLine").CreateElement("cac:LineItem")
		cbc(line, "ID", strconv.Itoa(i+1))
		qty := cbc(line, "Quantity", strconv.Itoa(it.Quantity))
		qty.CreateAttr("unitCode", unitCode)
		amount(line, "LineExtensionAmount", it.Subtotal)
		amount(line.CreateElement("cac:Price"), "PriceAmount", it.UnitPrice)
		item := line.CreateElement("cac:Item")
		cbc(item, "Name", it.ProductName)
		cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", it.ProductID)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ubl: serializar: %w", err)
	}
	return out, nil
}

func sellerParty(root *etree.Element, pub *dto.PublicQuoteResponse) {
	party := root.CreateElement("cac:SellerSupplierParty").CreateElement("cac:Party")
	cbc(party.CreateElement("cac:PartyName"), "Name", setting(pub.Settings, "company_name"))
	if cnpj := setting(pub.Settings, "company_cnpj"); cnpj != "" {
		tax := party.CreateElement("cac:PartyTaxScheme")
		cbc(tax, "CompanyID", cnpj)
		cbc(tax.CreateElement("cac:TaxScheme"), "ID", "CNPJ")
	}
	contact := party.CreateElement("cac:Contact")
	if pub.Seller != nil {
		cbc(contact, "Name", pub.Seller.Name)
	}
	if phone := setting(pub.Settings, "company_phone"); phone != "" {
		cbc(contact, "Telephone", phone)
	}
	email := setting(pub.Settings, "company_email")
	if pub.Seller != nil && pub.Seller.Email != "" {
		email = pub.Seller.Email
	}
	if email != "" {
		cbc(contact, "ElectronicMail", email)
	}
}

func buyerParty(root *etree.Element, c dto.ClientResponse) {
	party := root.CreateElement("cac:BuyerCustomerParty").CreateElement("cac:Party")
	cbc(party.CreateElement("cac:PartyName"), "Name", c.Name)
	if c.Address != "" {
		cbc(party.CreateElement("cac:PostalAddress"), "StreetName", c.Address)
	}
	contact := party.CreateElement("cac:Contact")
	cbc(contact, "Telephone", c.ContactMain)
	if c.ContactSecondary != "" {
		cbc(contact, "Note", c.ContactSecondary)
	}
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, tag string, v decimal.Decimal) {
	cbc(parent, tag, v.StringFixed(2)).CreateAttr("currencyID", currency)
}

func setting(s map[string]*string, key string) string {
	if v, ok := s[key]; ok && v != nil {
		return *v
	}
	return ""
}
