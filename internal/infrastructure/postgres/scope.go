package postgres

import (
	"fmt"
	"strings"

	"github.com/gestorventas/deposito-api/internal/domain/repository"
)

// scopeColumns columna SQL que corresponde a cada eslabón del scope en una consulta concreta.
// Una columna vacía significa que ese eslabón no aplica a la tabla.
type scopeColumns struct {
	vendor string
	client string
	order  string
	line   string
}

var (
	clientScopeCols = scopeColumns{vendor: "c.vendor_id", client: "c.id"}
	orderScopeCols  = scopeColumns{vendor: "c.vendor_id", client: "o.client_id", order: "o.id"}
	lineScopeCols   = scopeColumns{vendor: "c.vendor_id", client: "o.client_id", order: "l.order_id", line: "l.id"}
)

// where acumula condiciones "col = $n" y sus argumentos.
type where struct {
	conds []string
	args  []any
}

// eq añade la condición solo si el valor está presente.
func (w *where) eq(col, val string) {
	if col == "" || val == "" {
		return
	}
	w.args = append(w.args, val)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", col, len(w.args)))
}

// SQL devuelve la conjunción de condiciones; "TRUE" si no hay ninguna.
func (w *where) SQL() string {
	if len(w.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(w.conds, " AND ")
}

// scopeWhere construye el filtro de propiedad. Nunca falla: los ids ausentes amplían el resultado.
func scopeWhere(s repository.Scope, cols scopeColumns) *where {
	w := &where{}
	w.eq(cols.vendor, s.VendorID)
	w.eq(cols.client, s.ClientID)
	w.eq(cols.order, s.OrderID)
	w.eq(cols.line, s.LineID)
	return w
}
