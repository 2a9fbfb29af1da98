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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in = trimClient(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Client{
		ID:               uuid.New().String(),
		Name:             in.Name,
		ContactMain:      in.ContactMain,
		ContactSecondary: in.ContactSecondary,
		Address:          in.Address,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// Update sobrescribe los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in = trimClient(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.ContactMain = in.ContactMain
	c.ContactSecondary = in.ContactSecondary
	c.Address = in.Address
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes, más recientes primero.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page = normalizePage(page)
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{Items: toClientResponses(list), Page: pageOf(page, total)}, nil
}

// Delete elimina el cliente; sus cotizaciones se eliminan en cascada (FK).
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// FindOrCreateByContact devuelve el cliente con ese contacto principal o lo crea con name.
func (uc *ClientUseCase) FindOrCreateByContact(ctx context.Context, contact, name string) (*dto.ClientResponse, error) {
	c, err := FindOrCreateClient(ctx, uc.repo, contact, name)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// FindOrCreateClient busca por contacto principal (primer match) y si no existe lo crea.
// Recibe el repositorio para poder ejecutarse dentro de una transacción del llamador.
func FindOrCreateClient(ctx context.Context, repo repository.ClientRepository, contact, name string) (*entity.Client, error) {
	contact = strings.TrimSpace(contact)
	existing, err := repo.FindByContactMain(ctx, contact)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	c := &entity.Client{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		ContactMain: contact,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToClientResponse expone el mapeo para otros paquetes de aplicación.
func ToClientResponse(c *entity.Client) dto.ClientResponse {
	return *toClientResponse(c)
}

func trimClient(in dto.ClientRequest) dto.ClientRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactMain = strings.TrimSpace(in.ContactMain)
	in.ContactSecondary = strings.TrimSpace(in.ContactSecondary)
	return in
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		ContactMain:      c.ContactMain,
		ContactSecondary: c.ContactSecondary,
		Address:          c.Address,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toClientResponses(list []*entity.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out
}

// ToClientResponses expone el mapeo de listas.
func ToClientResponses(list []*entity.Client) []dto.ClientResponse { return toClientResponses(list) }
