package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore guarda las cinco entidades en memoria y cumple todos los puertos de repositorio
// a través de vistas (vendorRepo, clientRepo, ...).
type memStore struct {
	mu       sync.Mutex
	vendors  map[string]*entity.Vendor
	clients  map[string]*entity.Client
	orders   map[string]*entity.Order
	lines    map[string]*entity.OrderLine
	products map[string]*entity.Product

	// beforeOrderWrite, si está, corre con el lock tomado justo antes de escribir un pedido.
	beforeOrderWrite func(orderID string)
}

func newMemStore() *memStore {
	return &memStore{
		vendors:  map[string]*entity.Vendor{},
		clients:  map[string]*entity.Client{},
		orders:   map[string]*entity.Order{},
		lines:    map[string]*entity.OrderLine{},
		products: map[string]*entity.Product{},
	}
}

type vendorRepo struct{ s *memStore }
type clientRepo struct{ s *memStore }
type orderRepo struct{ s *memStore }
type lineRepo struct{ s *memStore }
type productRepo struct{ s *memStore }
type statsRepo struct{ s *memStore }

func (r vendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.vendors[v.ID] = &cp
	return nil
}

func (r vendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.vendors[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r vendorRepo) GetByEmail(_ context.Context, email string) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.vendors {
		if v.Email == email {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r vendorRepo) List(_ context.Context) ([]*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Vendor
	for _, v := range r.s.vendors {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r vendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.vendors[v.ID]; ok {
		cur.Name, cur.Email, cur.PasswordHash, cur.Roles, cur.UpdatedAt = v.Name, v.Email, v.PasswordHash, v.Roles, v.UpdatedAt
	}
	return nil
}

func (r vendorRepo) UpdateTokens(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.vendors[v.ID]; ok {
		cur.RefreshToken, cur.RefreshTokenExpiry = v.RefreshToken, v.RefreshTokenExpiry
		cur.ResetCode, cur.ResetCodeExpiry, cur.ResetAttempts = v.ResetCode, v.ResetCodeExpiry, v.ResetAttempts
	}
	return nil
}

func (r vendorRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vendors[id]; !ok {
		return false, nil
	}
	delete(r.s.vendors, id)
	for cid, c := range r.s.clients {
		if c.VendorID == id {
			r.s.deleteClientLocked(cid)
		}
	}
	return true, nil
}

func (s *memStore) deleteClientLocked(id string) {
	delete(s.clients, id)
	for oid, o := range s.orders {
		if o.ClientID == id {
			s.deleteOrderLocked(oid)
		}
	}
}

func (s *memStore) deleteOrderLocked(id string) {
	delete(s.orders, id)
	for lid, l := range s.lines {
		if l.OrderID == id {
			delete(s.lines, lid)
		}
	}
}

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.FindScoped(ctx, repository.Scope{ClientID: id})
}

func (r clientRepo) FindScoped(ctx context.Context, s repository.Scope) (*entity.Client, error) {
	list, _ := r.List(ctx, s)
	if len(list) == 0 || s.ClientID == "" {
		return nil, nil
	}
	return list[0], nil
}

func (r clientRepo) List(_ context.Context, s repository.Scope) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		if (s.VendorID == "" || c.VendorID == s.VendorID) && (s.ClientID == "" || c.ID == s.ClientID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r clientRepo) Update(ctx context.Context, c *entity.Client) error { return r.Create(ctx, c) }

func (r clientRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return false, nil
	}
	r.s.deleteClientLocked(id)
	return true, nil
}

func (s *memStore) orderView(o *entity.Order) *entity.Order {
	cp := *o
	if c, ok := s.clients[o.ClientID]; ok {
		cp.VendorID = c.VendorID
	}
	cp.LineIDs = []string{}
	for _, l := range s.lines {
		if l.OrderID == o.ID {
			cp.LineIDs = append(cp.LineIDs, l.ID)
		}
	}
	sort.Strings(cp.LineIDs)
	return &cp
}

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return r.s.orderView(o), nil
	}
	return nil, nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) FindScoped(ctx context.Context, s repository.Scope) (*entity.Order, error) {
	if s.OrderID == "" {
		return nil, nil
	}
	list, _ := r.List(ctx, s)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r orderRepo) List(_ context.Context, s repository.Scope) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		v := r.s.orderView(o)
		if (s.VendorID == "" || v.VendorID == s.VendorID) && (s.ClientID == "" || v.ClientID == s.ClientID) && (s.OrderID == "" || v.ID == s.OrderID) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r orderRepo) UpdateOpen(_ context.Context, o *entity.Order) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.beforeOrderWrite != nil {
		r.s.beforeOrderWrite(o.ID)
	}
	cur, ok := r.s.orders[o.ID]
	if !ok || cur.Finalized {
		return false, nil
	}
	cur.Date, cur.UpdatedAt = o.Date, o.UpdatedAt
	return true, nil
}

func (r orderRepo) MarkFinalized(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Finalized {
		return false, nil
	}
	o.Finalized = true
	return true, nil
}

func (r orderRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return false, nil
	}
	r.s.deleteOrderLocked(id)
	return true, nil
}

func (r lineRepo) Create(_ context.Context, l *entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.lines[l.ID] = &cp
	return nil
}

func (r lineRepo) GetByID(_ context.Context, id string) (*entity.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.lines[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r lineRepo) FindScoped(ctx context.Context, s repository.Scope) (*entity.OrderLine, error) {
	if s.LineID == "" {
		return nil, nil
	}
	list, _ := r.List(ctx, s)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r lineRepo) List(_ context.Context, s repository.Scope) ([]*entity.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderLine
	for _, l := range r.s.lines {
		o, ok := r.s.orders[l.OrderID]
		if !ok {
			continue
		}
		v := r.s.orderView(o)
		if (s.VendorID == "" || v.VendorID == s.VendorID) && (s.ClientID == "" || v.ClientID == s.ClientID) &&
			(s.OrderID == "" || l.OrderID == s.OrderID) && (s.LineID == "" || l.ID == s.LineID) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r lineRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	return r.List(ctx, repository.Scope{OrderID: orderID})
}

func (r lineRepo) Update(ctx context.Context, l *entity.OrderLine) error { return r.Create(ctx, l) }

func (r lineRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lines[id]; !ok {
		return false, nil
	}
	delete(r.s.lines, id)
	return true, nil
}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r productRepo) List(_ context.Context, category string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if category == "" || p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (r productRepo) Update(ctx context.Context, p *entity.Product) error { return r.Create(ctx, p) }

func (r productRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	delete(r.s.products, id)
	return true, nil
}

func (r statsRepo) YearlyRevenue(_ context.Context, f repository.StatsFilter) ([]repository.YearTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := map[int]float64{}
	for _, l := range r.s.lines {
		o, ok := r.s.orders[l.OrderID]
		if !ok || !o.Finalized {
			continue
		}
		v := r.s.orderView(o)
		if (f.VendorID != "" && v.VendorID != f.VendorID) || (f.ClientID != "" && v.ClientID != f.ClientID) {
			continue
		}
		amount, _ := l.Price.Float64()
		totals[o.Date.Year()] += amount
	}
	out := make([]repository.YearTotal, 0, len(totals))
	for y, t := range totals {
		out = append(out, repository.YearTotal{Year: y, Total: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r statsRepo) ClientTotalsByVendor(_ context.Context, vendorID string) ([]repository.ClientTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ClientTotal
	for _, c := range r.s.clients {
		if c.VendorID != vendorID {
			continue
		}
		total := 0.0
		for _, l := range r.s.lines {
			o, ok := r.s.orders[l.OrderID]
			if ok && o.Finalized && o.ClientID == c.ID {
				f, _ := l.Price.Float64()
				total += f
			}
		}
		out = append(out, repository.ClientTotal{ClientID: c.ID, ClientName: c.Name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientName < out[j].ClientName })
	return out, nil
}

// memTx ejecuta fn sobre los mismos repositorios en memoria.
type memTx struct{ s *memStore }

func (t memTx) RunOrder(_ context.Context, fn func(repository.OrderRepository, repository.OrderLineRepository) error) error {
	return fn(orderRepo{t.s}, lineRepo{t.s})
}

type sentNotice struct {
	to     string
	report ports.OrderReport
}

type fakeNotifier struct {
	err  error
	sent []sentNotice
}

func (n *fakeNotifier) NotifyOrderClosed(_ context.Context, to string, r ports.OrderReport) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotice{to: to, report: r})
	return nil
}

type fakeRenderer struct{ last ports.OrderReport }

func (r *fakeRenderer) RenderOrderReport(_ context.Context, rep ports.OrderReport) ([]byte, error) {
	r.last = rep
	return []byte("%PDF-fake"), nil
}

type countingMetrics struct{ closed, failed, added int }

func (m *countingMetrics) OrderClosed()        { m.closed++ }
func (m *countingMetrics) NotificationFailed() { m.failed++ }
func (m *countingMetrics) LineAdded()          { m.added++ }

var errSMTP = errors.New("smtp caído")

// fixture arma todos los casos de uso sobre un memStore.
type fixture struct {
	store    *memStore
	vendors  *VendorUseCase
	clients  *ClientUseCase
	products *ProductUseCase
	orders   *OrderUseCase
	lines    *OrderLineUseCase
	stats    *StatsUseCase
	notifier *fakeNotifier
	renderer *fakeRenderer
	metrics  *countingMetrics
}

func newFixture() *fixture {
	s := newMemStore()
	guard := NewOwnershipGuard(vendorRepo{s}, clientRepo{s}, orderRepo{s}, lineRepo{s})
	f := &fixture{store: s, notifier: &fakeNotifier{}, renderer: &fakeRenderer{}, metrics: &countingMetrics{}}
	f.vendors = NewVendorUseCase(vendorRepo{s})
	f.clients = NewClientUseCase(clientRepo{s}, guard)
	f.products = NewProductUseCase(productRepo{s})
	f.orders = NewOrderUseCase(OrderDeps{
		Orders:   orderRepo{s},
		Lines:    lineRepo{s},
		Products: productRepo{s},
		Vendors:  vendorRepo{s},
		Clients:  clientRepo{s},
		Guard:    guard,
		Notifier: f.notifier,
		Renderer: f.renderer,
		Metrics:  f.metrics,
	})
	f.lines = NewOrderLineUseCase(lineRepo{s}, productRepo{s}, guard, memTx{s}, f.metrics)
	f.stats = NewStatsUseCase(statsRepo{s}, vendorRepo{s}, clientRepo{s})
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
