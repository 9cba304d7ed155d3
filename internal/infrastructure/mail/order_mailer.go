package mail

import (
	"bytes"
	"context"
	"html/template"

	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/pkg/money"
	"github.com/shopspring/decimal"
)

var _ ports.OrderNotifier = (*OrderMailer)(nil)

var confirmationTmpl = template.Must(template.New("confirmacion").Funcs(template.FuncMap{
	"money": money.Format,
}).Parse(`<html><body>
<h2>Confirmación de Pedido #{{.OrderID}}</h2>
<p>Cliente: <b>{{.ClientName}}</b></p>
<table border="1" cellspacing="0" cellpadding="5">
<tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Total</th></tr>
{{- range .Lines}}
<tr><td>{{.Product}}</td><td>{{.Quantity}}</td><td>{{money .Price}}</td><td>{{money .Subtotal}}</td></tr>
{{- end}}
</table>
<h3>Total: {{money .Total}}</h3>
<p>Gracias por confiar en nuestra empresa.</p>
</body></html>`))

// RenderOrderConfirmation compone el HTML del aviso. El total se recalcula con los subtotales.
func RenderOrderConfirmation(r ports.OrderReport) (string, error) {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.Subtotal)
	}
	r.Total = total
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OrderMailer implementa ports.OrderNotifier enviando el HTML de confirmación.
type OrderMailer struct {
	mailer ports.Mailer
}

// NewOrderMailer construye el notificador.
func NewOrderMailer(mailer ports.Mailer) *OrderMailer {
	return &OrderMailer{mailer: mailer}
}

// NotifyOrderClosed envía la confirmación del pedido al vendedor.
func (n *OrderMailer) NotifyOrderClosed(ctx context.Context, to string, r ports.OrderReport) error {
	body, err := RenderOrderConfirmation(r)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, to, "Confirmación de pedido #"+r.OrderID, body)
}
