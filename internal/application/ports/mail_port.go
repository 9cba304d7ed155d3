package ports

import "context"

// Mailer envía correos (HTML) de forma best-effort. Los callers registran el error
// pero nunca lo propagan al cliente HTTP.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// OrderNotifier avisa al vendedor de que un pedido se ha cerrado.
type OrderNotifier interface {
	NotifyOrderClosed(ctx context.Context, to string, report OrderReport) error
}
