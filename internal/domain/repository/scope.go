package repository

// Scope agrupa los identificadores opcionales de la cadena de propiedad
// vendedor → cliente → pedido → línea. Un campo vacío no restringe la consulta;
// todos vacíos equivale a "toda la tabla" y el caller debe haber autorizado antes.
type Scope struct {
	VendorID string
	ClientID string
	OrderID  string
	LineID   string
}

// IsEmpty indica si el scope no impone ninguna restricción.
func (s Scope) IsEmpty() bool {
	return s.VendorID == "" && s.ClientID == "" && s.OrderID == "" && s.LineID == ""
}

// ForVendor devuelve un scope restringido a un vendedor.
func ForVendor(vendorID string) Scope { return Scope{VendorID: vendorID} }
