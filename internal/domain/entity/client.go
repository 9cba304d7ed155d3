package entity

import "time"

// Client representa un cliente; pertenece siempre a un único vendedor.
type Client struct {
	ID        string
	VendorID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
