package entity

import "time"

// Order representa un pedido de un cliente. Finalized pasa de false a true una sola vez
// (cerrar pedido); a partir de ahí las líneas no se pueden modificar.
type Order struct {
	ID        string
	ClientID  string
	VendorID  string // derivado del cliente (solo lectura)
	Date      time.Time
	Finalized bool
	LineIDs   []string // ids de sus líneas (solo lectura)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen indica si el pedido admite cambios en sus líneas.
func (o *Order) IsOpen() bool { return !o.Finalized }
