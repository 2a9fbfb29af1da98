package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/pkg/validation"
)

// PaymentMethodUseCase casos de uso CRUD para formas de pago.
type PaymentMethodUseCase struct {
	repo repository.PaymentMethodRepository
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(repo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{repo: repo}
}

// Create crea una forma de pago.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	pm := &entity.PaymentMethod{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, pm); err != nil {
		return nil, err
	}
	return toPaymentMethodResponse(pm), nil
}

// GetByID obtiene una forma de pago.
func (uc *PaymentMethodUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentMethodResponse, error) {
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentMethodResponse(pm), nil
}

// Update sobrescribe nombre, descripción y estado.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, id string, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	pm.Name = in.Name
	pm.Description = in.Description
	pm.IsActive = *in.IsActive
	pm.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return toPaymentMethodResponse(pm), nil
}

// List lista formas de pago, más recientes primero.
func (uc *PaymentMethodUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PaymentMethodListResponse, error) {
	page = normalizePage(page)
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentMethodListResponse{Items: ToPaymentMethodResponses(list), Page: pageOf(page, total)}, nil
}

// ListActive formas de pago activas por nombre (selects de cotización).
func (uc *PaymentMethodUseCase) ListActive(ctx context.Context) ([]dto.PaymentMethodResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToPaymentMethodResponses(list), nil
}

// Delete elimina una forma de pago.
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, id string) error {
	pm, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pm == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toPaymentMethodResponse(pm *entity.PaymentMethod) *dto.PaymentMethodResponse {
	return &dto.PaymentMethodResponse{
		ID:          pm.ID,
		Name:        pm.Name,
		Description: pm.Description,
		IsActive:    pm.IsActive,
		CreatedAt:   pm.CreatedAt,
		UpdatedAt:   pm.UpdatedAt,
	}
}

// ToPaymentMethodResponses mapea una lista de formas de pago.
func ToPaymentMethodResponses(list []*entity.PaymentMethod) []dto.PaymentMethodResponse {
	out := make([]dto.PaymentMethodResponse, 0, len(list))
	for _, pm := range list {
		out = append(out, *toPaymentMethodResponse(pm))
	}
	return out
}
