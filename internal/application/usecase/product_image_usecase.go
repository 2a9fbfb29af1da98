package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

// MaxImageSize tamaño máximo de una imagen de producto (5 MB).
const MaxImageSize = 5 << 20

// ImagePrefix prefijo de todas las claves de imágenes de productos en el bucket.
const ImagePrefix = "products/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ProductImageUseCase gestiona las imágenes de un producto.
// El archivo se sube antes de escribir la fila; si la transacción falla el archivo queda
// huérfano hasta el barrido de mantenimiento.
type ProductImageUseCase struct {
	tx       ports.TxRunner
	products repository.ProductRepository
	images   repository.ProductImageRepository
	storage  ports.ImageStorage
	log      zerolog.Logger
}

// NewProductImageUseCase construye el caso de uso.
func NewProductImageUseCase(
	tx ports.TxRunner,
	products repository.ProductRepository,
	images repository.ProductImageRepository,
	storage ports.ImageStorage,
	log zerolog.Logger,
) *ProductImageUseCase {
	return &ProductImageUseCase{tx: tx, products: products, images: images, storage: storage, log: log}
}

// Upload guarda el archivo y registra la imagen. La primera imagen del producto queda como principal.
func (uc *ProductImageUseCase) Upload(ctx context.Context, productID string, in dto.UploadImageInput, r io.Reader) (*dto.ProductImageResponse, error) {
	ext, ok := imageExtensions[strings.ToLower(in.ContentType)]
	if !ok {
		return nil, domain.NewValidationError("image", "debe ser jpeg, png, gif o webp")
	}
	if in.Size <= 0 || in.Size > MaxImageSize {
		return nil, domain.NewValidationError("image", "no puede superar 5 MB")
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	img := &entity.ProductImage{
		ID:        uuid.New().String(),
		ProductID: productID,
		Path:      path.Join(ImagePrefix, productID, uuid.New().String()+ext),
		CreatedAt: time.Now(),
	}
	if err := uc.storage.Put(ctx, img.Path, r, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}

	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		n, err := repos.Images.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if err := repos.Images.Create(ctx, img); err != nil {
			return err
		}
		if in.IsMain || n == 0 {
			img.IsMain = true
			return repos.Images.SetMain(ctx, productID, img.ID)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("path", img.Path).Msg("imagen subida sin fila; queda para el barrido de huérfanos")
		return nil, err
	}
	out := ToImageResponses([]*entity.ProductImage{img}, uc.storage)[0]
	return &out, nil
}

// List imágenes del producto, más antiguas primero.
func (uc *ProductImageUseCase) List(ctx context.Context, productID string) ([]dto.ProductImageResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	imgs, err := uc.images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToImageResponses(imgs, uc.storage), nil
}

// SetMain marca la imagen como principal y desmarca las demás del producto.
func (uc *ProductImageUseCase) SetMain(ctx context.Context, productID, imageID string) error {
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		img, err := r.Images.GetByID(ctx, imageID)
		if err != nil {
			return err
		}
		if img == nil || img.ProductID != productID {
			return domain.ErrNotFound
		}
		return r.Images.SetMain(ctx, productID, imageID)
	})
}

// Delete borra el archivo y luego la fila. Si era la principal, la más antigua restante pasa a serlo.
func (uc *ProductImageUseCase) Delete(ctx context.Context, productID, imageID string) error {
	img, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil || img.ProductID != productID {
		return domain.ErrNotFound
	}
	if err := uc.storage.Remove(ctx, img.Path); err != nil {
		return fmt.Errorf("eliminar archivo %s: %w", img.Path, err)
	}
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Images.Delete(ctx, imageID); err != nil {
			return err
		}
		if !img.IsMain {
			return nil
		}
		rest, err := r.Images.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return nil
		}
		return r.Images.SetMain(ctx, productID, rest[0].ID)
	})
}
