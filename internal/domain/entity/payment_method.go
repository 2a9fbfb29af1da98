package entity

import "time"

// PaymentMethod forma de pago ofrecida en las cotizaciones. Solo las activas se listan en formularios.
type PaymentMethod struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
