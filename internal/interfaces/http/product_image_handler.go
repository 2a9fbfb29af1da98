package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
)

// ProductImageHandler imágenes de un producto (protegido).
type ProductImageHandler struct {
	uc *usecase.ProductImageUseCase
}

func NewProductImageHandler(uc *usecase.ProductImageUseCase) *ProductImageHandler {
	return &ProductImageHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen de producto
// @Description  jpeg, png, gif o webp de hasta 5 MB. La primera imagen del producto queda como principal.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true   "ID del producto"
// @Param        image    formData  file    true   "Archivo"
// @Param        is_main  formData  bool    false  "Marcar como principal"
// @Success      201      {object}  dto.ProductImageResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [post]
func (h *ProductImageHandler) Upload(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: map[string]string{"image": "es obligatorio"},
		})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	isMain := c.FormValue("is_main")
	in := dto.UploadImageInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		IsMain:      isMain == "1" || isMain == "true" || isMain == "on",
	}
	out, err := h.uc.Upload(c.UserContext(), id, in, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ProductImageHandler) List(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductImageHandler) SetMain(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	imageID, err := pathID(c, "imageId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetMain(c.UserContext(), id, imageID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductImageHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	imageID, err := pathID(c, "imageId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, imageID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
