package dto

import "time"

// ClientRequest entrada para crear o actualizar un cliente.
type ClientRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	ContactMain      string `json:"contact_main" validate:"required,max=255"`
	ContactSecondary string `json:"contact_secondary" validate:"max=255"`
	Address          string `json:"address"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ContactMain      string    `json:"contact_main"`
	ContactSecondary string    `json:"contact_secondary"`
	Address          string    `json:"address"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
