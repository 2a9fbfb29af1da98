package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
)

// PaymentMethodHandler CRUD de formas de pago (protegido).
type PaymentMethodHandler struct {
	uc *usecase.PaymentMethodUseCase
}

func NewPaymentMethodHandler(uc *usecase.PaymentMethodUseCase) *PaymentMethodHandler {
	return &PaymentMethodHandler{uc: uc}
}

func (h *PaymentMethodHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PaymentMethodHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List paginado; ?active=true devuelve solo las activas, sin paginar.
func (h *PaymentMethodHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("active") {
		out, err := h.uc.ListActive(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PaymentMethodHandler) Update(c *fiber.Ctx) error {
	var in dto.PaymentMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *PaymentMethodHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
