package entity

import "time"

// Client cliente al que se emiten cotizaciones.
// En el autoservicio se identifica por ContactMain.
type Client struct {
	ID               string
	Name             string
	ContactMain      string
	ContactSecondary string
	Address          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
