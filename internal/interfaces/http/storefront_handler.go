package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/storefront"
)

// StorefrontHandler tienda pública.
type StorefrontHandler struct {
	uc *storefront.UseCase
}

func NewStorefrontHandler(uc *storefront.UseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// Products godoc
// @Summary      Vitrina de productos
// @Tags         storefront
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        page         query  int     false  "Página"  default(1)
// @Success      200  {object}  dto.StorefrontProductsResponse
// @Router       /api/storefront/products [get]
func (h *StorefrontHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.Products(c.UserContext(), c.Query("category_id"), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	out, err := h.uc.ProductBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorefrontHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorefrontHandler) Settings(c *fiber.Ctx) error {
	out, err := h.uc.Settings(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorefrontHandler) Cart(c *fiber.Ctx) error {
	out, err := h.uc.Cart(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorefrontHandler) PreviewCart(c *fiber.Ctx) error {
	var in dto.QuotePreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PreviewCart(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitQuote godoc
// @Summary      Enviar cotización desde la tienda
// @Description  Busca el cliente por contacto principal o lo crea; devuelve el enlace público.
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelfServiceQuoteRequest  true  "nombre, contacto y carrito"
// @Success      201   {object}  dto.QuoteCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storefront/quotes [post]
func (h *StorefrontHandler) SubmitQuote(c *fiber.Ctx) error {
	var in dto.SelfServiceQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SubmitQuote(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
