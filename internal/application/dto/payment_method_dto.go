package dto

import "time"

// PaymentMethodRequest entrada para crear o actualizar una forma de pago.
type PaymentMethodRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	IsActive    *bool  `json:"is_active" validate:"required"`
}

// PaymentMethodResponse salida de una forma de pago.
type PaymentMethodResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaymentMethodListResponse lista paginada de formas de pago.
type PaymentMethodListResponse struct {
	Items []PaymentMethodResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
