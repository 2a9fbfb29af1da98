// Package maintenance tareas periódicas de mantenimiento.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

// SweepResult resumen de una pasada.
type SweepResult struct {
	Scanned int
	Removed int
	Failed  int
}

// OrphanSweeper elimina del storage las imágenes que ninguna fila de product_images
// referencia y que son más antiguas que grace (subidas cuya transacción falló).
type OrphanSweeper struct {
	images  repository.ProductImageRepository
	storage ports.ImageStorage
	grace   time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewOrphanSweeper construye el barrido.
func NewOrphanSweeper(images repository.ProductImageRepository, storage ports.ImageStorage, grace time.Duration, log zerolog.Logger) *OrphanSweeper {
	return &OrphanSweeper{images: images, storage: storage, grace: grace, now: time.Now, log: log}
}

// Sweep ejecuta una pasada. Los fallos al borrar un objeto se registran y no detienen la pasada.
func (s *OrphanSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	// Listar antes de leer las referencias: un objeto recién subido cuya fila se escribe
	// entre ambas lecturas queda protegido por grace.
	objects, err := s.storage.List(ctx, usecase.ImagePrefix)
	if err != nil {
		return res, fmt.Errorf("listar objetos: %w", err)
	}
	referenced, err := s.images.AllPaths(ctx)
	if err != nil {
		return res, fmt.Errorf("leer rutas referenciadas: %w", err)
	}
	cutoff := s.now().Add(-s.grace)
	for _, obj := range objects {
		res.Scanned++
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		if err := s.storage.Remove(ctx, obj.Key); err != nil {
			res.Failed++
			s.log.Warn().Err(err).Str("key", obj.Key).Msg("no se pudo eliminar imagen huérfana")
			continue
		}
		res.Removed++
	}
	s.log.Info().Int("scanned", res.Scanned).Int("removed", res.Removed).Int("failed", res.Failed).Msg("barrido de imágenes huérfanas")
	return res, nil
}
