package ports

// OrderMetrics contadores de negocio del ciclo de vida del pedido.
type OrderMetrics interface {
	OrderClosed()
	NotificationFailed()
	LineAdded()
}

// NopOrderMetrics implementación vacía (tests, o sin métricas configuradas).
type NopOrderMetrics struct{}

func (NopOrderMetrics) OrderClosed()        {}
func (NopOrderMetrics) NotificationFailed() {}
func (NopOrderMetrics) LineAdded()          {}
