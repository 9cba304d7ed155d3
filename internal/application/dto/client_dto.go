package dto

import "time"

// CreateClientRequest body para crear un cliente.
type CreateClientRequest struct {
	Name string `json:"nombre"`
}

// UpdateClientRequest patch de cliente.
type UpdateClientRequest struct {
	Name *string `json:"nombre"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	VendorID  string    `json:"id_vendedor"`
	CreatedAt time.Time `json:"created_at"`
}
