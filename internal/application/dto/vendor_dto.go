package dto

import "time"

// CreateVendorRequest entrada para crear un vendedor (password en texto, se hashea en el use case).
type CreateVendorRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateVendorRequest patch de vendedor: solo los campos presentes y no vacíos se aplican.
type UpdateVendorRequest struct {
	Name     *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// VendorResponse salida de un vendedor (sin password ni tokens).
type VendorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}
