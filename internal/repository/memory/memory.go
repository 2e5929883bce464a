// Package memory keeps every store in process memory. It is used for local
// development (STORE_DRIVER=memory) and as a realistic backend in tests.
// All repositories of one Store share a single lock so that a cart line
// conversion is atomic across the cart and order collections.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

type state struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	products map[string]domain.Product
	catalog  *domain.CatalogConfig
	lines    map[string]domain.CartLine
	orders   map[string]domain.Order
	byLine   map[string]string
	seq      int64
	now      func() time.Time
}

func newState() *state {
	return &state{
		accounts: map[string]domain.Account{},
		products: map[string]domain.Product{},
		lines:    map[string]domain.CartLine{},
		orders:   map[string]domain.Order{},
		byLine:   map[string]string{},
		now:      time.Now,
	}
}

// stamp returns a strictly increasing timestamp so that insertion order is
// preserved even when the clock does not advance between calls.
func (s *state) stamp() time.Time {
	s.seq++
	return s.now().Add(time.Duration(s.seq))
}

func NewStore() repository.Store {
	st := newState()
	return repository.Store{
		Accounts: &accountRepo{st},
		Catalog:  &catalogRepo{st},
		Products: &productRepo{st},
		Carts:    &cartRepo{st},
		Orders:   &orderRepo{st},
		Close:    func() error { return nil },
	}
}

type accountRepo struct{ *state }

func (r *accountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.accounts[a.ID]; ok {
		return domain.ErrDuplicate
	}
	a.CreatedAt = r.stamp()
	r.accounts[a.ID] = *a
	return nil
}

func (r *accountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *accountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *accountRepo) FindAll(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type catalogRepo struct{ *state }

func (r *catalogRepo) Load(_ context.Context) (*domain.CatalogConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog == nil {
		r.catalog = domain.NewCatalogConfig()
	}
	return r.catalog.Clone(), nil
}

func (r *catalogRepo) Save(_ context.Context, cfg *domain.CatalogConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog == nil || r.catalog.Version != cfg.Version {
		return domain.ErrConcurrentModification
	}
	cfg.Version++
	r.catalog = cfg.Clone()
	return nil
}

type productRepo struct{ *state }

func (r *productRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	p.CreatedAt = r.stamp()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = *p.Clone()
	return nil
}

func (r *productRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.stamp()
	r.products[p.ID] = *p.Clone()
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *productRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type cartRepo struct{ *state }

func (r *cartRepo) Add(_ context.Context, line *domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[line.ID]; ok {
		return domain.ErrDuplicate
	}
	line.CreatedAt = r.stamp()
	r.lines[line.ID] = *line
	return nil
}

func (r *cartRepo) ListByAccount(_ context.Context, accountID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CartLine{}
	for _, l := range r.lines {
		if l.AccountID == accountID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *cartRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[id]; !ok {
		return false, nil
	}
	delete(r.lines, id)
	return true, nil
}

type orderRepo struct{ *state }

func (r *orderRepo) ConvertLine(_ context.Context, line domain.CartLine, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[line.ID]; !ok {
		return domain.ErrLineAlreadyConverted
	}
	if _, ok := r.byLine[line.ID]; ok {
		return domain.ErrLineAlreadyConverted
	}
	delete(r.lines, line.ID)
	order.CreatedAt = r.stamp()
	r.orders[order.ID] = *order
	r.byLine[line.ID] = order.ID
	return nil
}

func (r *orderRepo) FindAll(_ context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true }), nil
}

func (r *orderRepo) FindByAccount(_ context.Context, accountID string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.AccountID == accountID }), nil
}

func (r *orderRepo) filter(keep func(domain.Order) bool) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
