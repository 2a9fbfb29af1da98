// Package memdb implementaciones en memoria de los puertos de persistencia, con un
// TxRunner que solo aplica los cambios si fn termina sin error. Uso exclusivo en tests.
package memdb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

type state struct {
	categories map[string]entity.Category
	products   map[string]entity.Product
	tiers      map[string][]entity.PriceTier // por producto
	images     map[string]entity.ProductImage
	clients    map[string]entity.Client
	payments   map[string]entity.PaymentMethod
	users      map[string]entity.User
	settings   map[string]*string
	quotes     map[string]entity.Quote
	items      map[string][]entity.QuoteItem // por cotización
	seq        int                           // orden de inserción para "más recientes primero"
	order      map[string]int
}

func newState() *state {
	return &state{
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		tiers:      map[string][]entity.PriceTier{},
		images:     map[string]entity.ProductImage{},
		clients:    map[string]entity.Client{},
		payments:   map[string]entity.PaymentMethod{},
		users:      map[string]entity.User{},
		settings:   map[string]*string{},
		quotes:     map[string]entity.Quote{},
		items:      map[string][]entity.QuoteItem{},
		order:      map[string]int{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.tiers {
		c.tiers[k] = append([]entity.PriceTier(nil), v...)
	}
	for k, v := range s.images {
		c.images[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	for k, v := range s.quotes {
		c.quotes[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.QuoteItem(nil), v...)
	}
	for k, v := range s.order {
		c.order[k] = v
	}
	c.seq = s.seq
	return c
}

func (s *state) touch(id string) {
	if _, ok := s.order[id]; !ok {
		s.seq++
		s.order[id] = s.seq
	}
}

// DB base de datos en memoria.
type DB struct {
	mu    sync.Mutex
	st    *state
	fails map[string]error
	// TxCount cantidad de transacciones confirmadas.
	TxCount int
}

// New crea una base vacía.
func New() *DB {
	return &DB{st: newState(), fails: map[string]error{}}
}

// FailOn hace que la operación op (ej. "quotes.ReplaceItems") devuelva err.
func (db *DB) FailOn(op string, err error) {
	db.fails[op] = err
}

func (db *DB) fail(op string) error {
	if err, ok := db.fails[op]; ok {
		return err
	}
	return nil
}

// Repos devuelve repositorios fuera de transacción.
func (db *DB) Repos() ports.TxRepos {
	return db.reposOn(func() *state { return db.st })
}

func (db *DB) reposOn(get func() *state) ports.TxRepos {
	base := repoBase{db: db, get: get}
	return ports.TxRepos{
		Categories: &CategoryRepo{base},
		Products:   &ProductRepo{base},
		PriceTiers: &PriceTierRepo{base},
		Images:     &ImageRepo{base},
		Clients:    &ClientRepo{base},
		Quotes:     &QuoteRepo{base},
		Settings:   &SettingRepo{base},
	}
}

// Users repositorio de usuarios.
func (db *DB) Users() *UserRepo { return &UserRepo{repoBase{db: db, get: func() *state { return db.st }}} }

// PaymentMethods repositorio de formas de pago.
func (db *DB) PaymentMethods() *PaymentMethodRepo {
	return &PaymentMethodRepo{repoBase{db: db, get: func() *state { return db.st }}}
}

// Run implementa ports.TxRunner sobre una copia del estado.
func (db *DB) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	staged := db.st.clone()
	if err := fn(db.reposOn(func() *state { return staged })); err != nil {
		return err
	}
	if err := db.fail("tx.Commit"); err != nil {
		return err
	}
	db.st = staged
	db.TxCount++
	return nil
}

var _ ports.TxRunner = (*DB)(nil)

type repoBase struct {
	db  *DB
	get func() *state
}

// ── Conteos para aserciones ──────────────────────────────────────────────────

// QuoteCount cantidad de cotizaciones.
func (db *DB) QuoteCount() int { return len(db.st.quotes) }

// ItemCount cantidad total de líneas de cotización.
func (db *DB) ItemCount() int {
	n := 0
	for _, v := range db.st.items {
		n += len(v)
	}
	return n
}

// ClientCount cantidad de clientes.
func (db *DB) ClientCount() int { return len(db.st.clients) }

// UserCount cantidad de usuarios.
func (db *DB) UserCount() int { return len(db.st.users) }

// ImageCount cantidad de imágenes.
func (db *DB) ImageCount() int { return len(db.st.images) }

// ProductCount cantidad de productos.
func (db *DB) ProductCount() int { return len(db.st.products) }

// ── Categorías ───────────────────────────────────────────────────────────────

// CategoryRepo fake de repository.CategoryRepository.
type CategoryRepo struct{ repoBase }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	st := r.get()
	for _, other := range st.categories {
		if other.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	st.categories[c.ID] = *c
	st.touch(c.ID)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.get().categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	st := r.get()
	for _, other := range st.categories {
		if other.Name == c.Name && other.ID != c.ID {
			return domain.ErrDuplicate
		}
	}
	st.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	st := r.get()
	all := make([]*entity.Category, 0, len(st.categories))
	for _, c := range st.categories {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *CategoryRepo) Count(_ context.Context) (int, error) { return len(r.get().categories), nil }

func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	st := r.get()
	all := make([]*entity.Category, 0, len(st.categories))
	for _, c := range st.categories {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	if err := r.db.fail("categories.Delete"); err != nil {
		return err
	}
	delete(r.get().categories, id)
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

// ProductRepo fake de repository.ProductRepository.
type ProductRepo struct{ repoBase }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	st := r.get()
	for _, other := range st.products {
		if other.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	st.products[p.ID] = *p
	st.touch(p.ID)
	return nil
}

func (r *ProductRepo) withCategory(st *state, p entity.Product) *entity.Product {
	p.CategoryName = ""
	if p.CategoryID != nil {
		if c, ok := st.categories[*p.CategoryID]; ok {
			p.CategoryName = c.Name
		}
	}
	return &p
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	st := r.get()
	p, ok := st.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(st, p), nil
}

func (r *ProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	st := r.get()
	for _, p := range st.products {
		if p.Slug == slug {
			return r.withCategory(st, p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	p, err := r.GetBySlug(ctx, slug)
	return p != nil, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	st := r.get()
	old, ok := st.products[p.ID]
	if !ok {
		return nil
	}
	cp := *p
	cp.Slug = old.Slug
	cp.CategoryName = ""
	st.products[p.ID] = cp
	return nil
}

func (r *ProductRepo) filtered(st *state, f repository.ProductFilter) []*entity.Product {
	all := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		all = append(all, r.withCategory(st, p))
	}
	return all
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	st := r.get()
	all := r.filtered(st, f)
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *ProductRepo) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	return len(r.filtered(r.get(), f)), nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	all := r.filtered(r.get(), repository.ProductFilter{})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *ProductRepo) ClearCategory(_ context.Context, categoryID string) error {
	st := r.get()
	for id, p := range st.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p.CategoryID = nil
			st.products[id] = p
		}
	}
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	st := r.get()
	delete(st.products, id)
	for qid, items := range st.items {
		kept := items[:0:0]
		for _, it := range items {
			if it.ProductID != id {
				kept = append(kept, it)
			}
		}
		st.items[qid] = kept
	}
	return nil
}

// ── Tramos ───────────────────────────────────────────────────────────────────

// PriceTierRepo fake de repository.PriceTierRepository.
type PriceTierRepo struct{ repoBase }

var _ repository.PriceTierRepository = (*PriceTierRepo)(nil)

func (r *PriceTierRepo) ListByProduct(_ context.Context, productID string) ([]entity.PriceTier, error) {
	out := append([]entity.PriceTier(nil), r.get().tiers[productID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].MinQuantity < out[j].MinQuantity })
	return out, nil
}

func (r *PriceTierRepo) ListByProducts(ctx context.Context, ids []string) (map[string][]entity.PriceTier, error) {
	out := make(map[string][]entity.PriceTier, len(ids))
	for _, id := range ids {
		t, _ := r.ListByProduct(ctx, id)
		if len(t) > 0 {
			out[id] = t
		}
	}
	return out, nil
}

func (r *PriceTierRepo) Replace(_ context.Context, productID string, tiers []entity.PriceTier) error {
	if err := r.db.fail("tiers.Replace"); err != nil {
		return err
	}
	r.get().tiers[productID] = append([]entity.PriceTier(nil), tiers...)
	return nil
}

func (r *PriceTierRepo) DeleteByProduct(_ context.Context, productID string) error {
	delete(r.get().tiers, productID)
	return nil
}

// ── Imágenes ─────────────────────────────────────────────────────────────────

// ImageRepo fake de repository.ProductImageRepository.
type ImageRepo struct{ repoBase }

var _ repository.ProductImageRepository = (*ImageRepo)(nil)

func (r *ImageRepo) Create(_ context.Context, img *entity.ProductImage) error {
	if err := r.db.fail("images.Create"); err != nil {
		return err
	}
	st := r.get()
	st.images[img.ID] = *img
	st.touch(img.ID)
	return nil
}

func (r *ImageRepo) GetByID(_ context.Context, id string) (*entity.ProductImage, error) {
	img, ok := r.get().images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *ImageRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductImage, error) {
	st := r.get()
	var out []*entity.ProductImage
	for _, img := range st.images {
		if img.ProductID == productID {
			img := img
			out = append(out, &img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return st.order[out[i].ID] < st.order[out[j].ID] })
	return out, nil
}

func (r *ImageRepo) MainByProducts(_ context.Context, ids []string) (map[string]*entity.ProductImage, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[string]*entity.ProductImage{}
	for _, img := range r.get().images {
		if img.IsMain && want[img.ProductID] {
			img := img
			out[img.ProductID] = &img
		}
	}
	return out, nil
}

func (r *ImageRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	list, _ := r.ListByProduct(ctx, productID)
	return len(list), nil
}

func (r *ImageRepo) SetMain(_ context.Context, productID, imageID string) error {
	st := r.get()
	for id, img := range st.images {
		if img.ProductID == productID {
			img.IsMain = id == imageID
			st.images[id] = img
		}
	}
	return nil
}

func (r *ImageRepo) Delete(_ context.Context, id string) error {
	delete(r.get().images, id)
	return nil
}

func (r *ImageRepo) DeleteByProduct(_ context.Context, productID string) error {
	st := r.get()
	for id, img := range st.images {
		if img.ProductID == productID {
			delete(st.images, id)
		}
	}
	return nil
}

func (r *ImageRepo) AllPaths(_ context.Context) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for _, img := range r.get().images {
		out[img.Path] = struct{}{}
	}
	return out, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// ClientRepo fake de repository.ClientRepository.
type ClientRepo struct{ repoBase }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	st := r.get()
	st.clients[c.ID] = *c
	st.touch(c.ID)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := r.get().clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) FindByContactMain(_ context.Context, contact string) (*entity.Client, error) {
	st := r.get()
	var found *entity.Client
	for _, c := range st.clients {
		if c.ContactMain == contact && (found == nil || st.order[c.ID] < st.order[found.ID]) {
			c := c
			found = &c
		}
	}
	return found, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.get().clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	st := r.get()
	all := make([]*entity.Client, 0, len(st.clients))
	for _, c := range st.clients {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *ClientRepo) Count(_ context.Context) (int, error) { return len(r.get().clients), nil }

func (r *ClientRepo) ListAll(_ context.Context) ([]*entity.Client, error) {
	st := r.get()
	all := make([]*entity.Client, 0, len(st.clients))
	for _, c := range st.clients {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	st := r.get()
	delete(st.clients, id)
	for qid, q := range st.quotes {
		if q.ClientID == id {
			delete(st.quotes, qid)
			delete(st.items, qid)
		}
	}
	return nil
}

// ── Cotizaciones ─────────────────────────────────────────────────────────────

// QuoteRepo fake de repository.QuoteRepository.
type QuoteRepo struct{ repoBase }

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

func (r *QuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	if err := r.db.fail("quotes.Create"); err != nil {
		return err
	}
	st := r.get()
	for _, other := range st.quotes {
		if other.UniqueHash == q.UniqueHash {
			return domain.ErrDuplicate
		}
	}
	st.quotes[q.ID] = *q
	st.touch(q.ID)
	return nil
}

func (r *QuoteRepo) joined(st *state, q entity.Quote) *entity.Quote {
	q.ClientName, q.UserName = "", ""
	if c, ok := st.clients[q.ClientID]; ok {
		q.ClientName = c.Name
	}
	if q.UserID != nil {
		if u, ok := st.users[*q.UserID]; ok {
			q.UserName = u.Name
		}
	}
	return &q
}

func (r *QuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	st := r.get()
	q, ok := st.quotes[id]
	if !ok {
		return nil, nil
	}
	return r.joined(st, q), nil
}

func (r *QuoteRepo) GetByHash(_ context.Context, hash string) (*entity.Quote, error) {
	st := r.get()
	for _, q := range st.quotes {
		if q.UniqueHash == hash {
			return r.joined(st, q), nil
		}
	}
	return nil, nil
}

func (r *QuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	st := r.get()
	old, ok := st.quotes[q.ID]
	if !ok {
		return nil
	}
	cp := *q
	cp.UniqueHash = old.UniqueHash
	cp.UserID = old.UserID
	cp.CreatedAt = old.CreatedAt
	st.quotes[q.ID] = cp
	return nil
}

func (r *QuoteRepo) List(_ context.Context, limit, offset int) ([]*entity.Quote, error) {
	st := r.get()
	all := make([]*entity.Quote, 0, len(st.quotes))
	for _, q := range st.quotes {
		all = append(all, r.joined(st, q))
	}
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *QuoteRepo) Count(_ context.Context) (int, error) { return len(r.get().quotes), nil }

func (r *QuoteRepo) Delete(_ context.Context, id string) error {
	st := r.get()
	delete(st.quotes, id)
	delete(st.items, id)
	return nil
}

func (r *QuoteRepo) Items(_ context.Context, quoteID string) ([]entity.QuoteItem, error) {
	st := r.get()
	out := append([]entity.QuoteItem(nil), st.items[quoteID]...)
	for i := range out {
		out[i].ProductName = st.products[out[i].ProductID].Name
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (r *QuoteRepo) ReplaceItems(_ context.Context, quoteID string, items []entity.QuoteItem) error {
	if err := r.db.fail("quotes.ReplaceItems"); err != nil {
		return err
	}
	st := r.get()
	seen := map[string]bool{}
	for _, it := range items {
		if _, ok := st.products[it.ProductID]; !ok {
			return fmt.Errorf("fk violation: product %s", it.ProductID)
		}
		if seen[it.ProductID] {
			return fmt.Errorf("pk violation: (%s, %s)", quoteID, it.ProductID)
		}
		seen[it.ProductID] = true
	}
	if len(items) == 0 {
		delete(st.items, quoteID)
		return nil
	}
	cp := append([]entity.QuoteItem(nil), items...)
	for i := range cp {
		cp[i].ProductName = ""
	}
	st.items[quoteID] = cp
	return nil
}

// ── Settings ─────────────────────────────────────────────────────────────────

// SettingRepo fake de repository.SettingRepository.
type SettingRepo struct{ repoBase }

var _ repository.SettingRepository = (*SettingRepo)(nil)

func (r *SettingRepo) GetAll(_ context.Context) (map[string]*string, error) {
	out := map[string]*string{}
	for k, v := range r.get().settings {
		out[k] = v
	}
	return out, nil
}

func (r *SettingRepo) Upsert(_ context.Context, key string, value *string) error {
	if err := r.db.fail("settings.Upsert:" + key); err != nil {
		return err
	}
	r.get().settings[key] = value
	return nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo fake de repository.UserRepository.
type UserRepo struct{ repoBase }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	st := r.get()
	for _, other := range st.users {
		if other.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	st.users[u.ID] = *u
	st.touch(u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.get().users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.get().users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.get().users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	st := r.get()
	all := make([]*entity.User, 0, len(st.users))
	for _, u := range st.users {
		u := u
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) { return len(r.get().users), nil }

func (r *UserRepo) Delete(_ context.Context, id string) error {
	st := r.get()
	delete(st.users, id)
	for qid, q := range st.quotes {
		if q.UserID != nil && *q.UserID == id {
			q.UserID = nil
			st.quotes[qid] = q
		}
	}
	return nil
}

// ── Formas de pago ───────────────────────────────────────────────────────────

// PaymentMethodRepo fake de repository.PaymentMethodRepository.
type PaymentMethodRepo struct{ repoBase }

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

func (r *PaymentMethodRepo) Create(_ context.Context, pm *entity.PaymentMethod) error {
	st := r.get()
	st.payments[pm.ID] = *pm
	st.touch(pm.ID)
	return nil
}

func (r *PaymentMethodRepo) GetByID(_ context.Context, id string) (*entity.PaymentMethod, error) {
	pm, ok := r.get().payments[id]
	if !ok {
		return nil, nil
	}
	return &pm, nil
}

func (r *PaymentMethodRepo) Update(_ context.Context, pm *entity.PaymentMethod) error {
	r.get().payments[pm.ID] = *pm
	return nil
}

func (r *PaymentMethodRepo) List(_ context.Context, limit, offset int) ([]*entity.PaymentMethod, error) {
	st := r.get()
	all := make([]*entity.PaymentMethod, 0, len(st.payments))
	for _, pm := range st.payments {
		pm := pm
		all = append(all, &pm)
	}
	sort.Slice(all, func(i, j int) bool { return st.order[all[i].ID] > st.order[all[j].ID] })
	return page(all, limit, offset), nil
}

func (r *PaymentMethodRepo) Count(_ context.Context) (int, error) { return len(r.get().payments), nil }

func (r *PaymentMethodRepo) ListActive(_ context.Context) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, pm := range r.get().payments {
		if pm.IsActive {
			pm := pm
			out = append(out, &pm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PaymentMethodRepo) Delete(_ context.Context, id string) error {
	delete(r.get().payments, id)
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
