package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    authService
	VendorUC  vendorService
	ClientUC  clientService
	ProductUC productService
	OrderUC   orderService
	LineUC    lineService
	StatsUC   statsService
	JWTSecret string
}

// Router registra las rutas de la API. Las rutas literales (me, stats, admin)
// van antes que las parametrizadas porque Fiber resuelve en orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token de un vendedor existente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireVendor(deps.VendorUC))
	admin := RequireRole(RoleAdmin)

	vendorHandler := NewVendorHandler(deps.VendorUC)
	statsHandler := NewStatsHandler(deps.StatsUC)

	// Vendedores
	vendors := protected.Group("/vendedor")
	vendors.Post("/", admin, vendorHandler.Create)
	vendors.Get("/", admin, vendorHandler.List)
	vendors.Get("/me", vendorHandler.Me)
	vendors.Get("/me/stats", statsHandler.MyStats)
	vendors.Get("/me/stats/clientes", statsHandler.MyClientTotals)
	vendors.Get("/stats", admin, statsHandler.Global)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Get("/:id/stats", admin, statsHandler.VendorStats)
	vendors.Put("/:id", admin, vendorHandler.Update)
	vendors.Delete("/:id", admin, vendorHandler.Delete)

	// Árbol anidado de admin: /vendedor/:idVendedor/cliente/...
	nested := vendors.Group("/:idVendedor/cliente", admin)
	registerClientTree(nested, deps, false, statsHandler)

	// Admin plano
	clients := protected.Group("/cliente")
	adminClient := NewClientHandler(deps.ClientUC, false)
	clients.Get("/admin/:idCliente", admin, adminClient.AdminGet)
	clients.Get("/admin/:idCliente/stats", admin, statsHandler.AdminClientStats)
	protected.Get("/pedido/admin", admin, NewOrderHandler(deps.OrderUC, false).AdminList)
	protected.Get("/linea/admin", admin, NewOrderLineHandler(deps.LineUC, false).AdminList)

	// Árbol del vendedor autenticado: /cliente/...
	registerClientTree(clients, deps, true, statsHandler)

	// Productos
	products := protected.Group("/producto")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", admin, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
}

// registerClientTree monta cliente → pedido → línea bajo r. self indica si el
// vendedor sale del token o del parámetro :idVendedor.
func registerClientTree(r fiber.Router, deps RouterDeps, self bool, stats *StatsHandler) {
	ch := NewClientHandler(deps.ClientUC, self)
	r.Post("/", ch.Create)
	r.Get("/", ch.List)
	r.Get("/:idCliente", ch.Get)
	r.Put("/:idCliente", ch.Update)
	r.Delete("/:idCliente", ch.Delete)
	r.Get("/:idCliente/stats", stats.ClientStats(self))

	oh := NewOrderHandler(deps.OrderUC, self)
	orders := r.Group("/:idCliente/pedido")
	orders.Post("/", oh.Create)
	orders.Get("/", oh.List)
	orders.Get("/:idPedido", oh.Get)
	orders.Put("/:idPedido", oh.Update)
	orders.Delete("/:idPedido", oh.Delete)
	orders.Post("/:idPedido/cerrar", oh.Close)
	orders.Get("/:idPedido/informe", oh.Report)

	lh := NewOrderLineHandler(deps.LineUC, self)
	lines := orders.Group("/:idPedido/linea")
	lines.Post("/", lh.Add)
	lines.Get("/", lh.List)
	lines.Get("/:idLinea", lh.Get)
	lines.Put("/:idLinea", lh.Update)
	lines.Delete("/:idLinea", lh.Delete)
}
