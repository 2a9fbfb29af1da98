package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
)

// PublicQuoteHandler vista pública de una cotización por su token (sin sesión).
type PublicQuoteHandler struct {
	uc *quoting.UseCase
}

func NewPublicQuoteHandler(uc *quoting.UseCase) *PublicQuoteHandler {
	return &PublicQuoteHandler{uc: uc}
}

// Show GET /orcamento/:token
func (h *PublicQuoteHandler) Show(c *fiber.Ctx) error {
	out, err := h.uc.GetPublic(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /orcamento/:token/pdf, se muestra en el navegador (inline).
func (h *PublicQuoteHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.PDF(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
