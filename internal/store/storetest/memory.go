// Package storetest provides in-memory repositories with the same behaviour as
// the GORM stores, for service and handler tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"
)

type cartKey struct{ userID, itemID uint }

// DB is the shared state behind the in-memory repositories
type DB struct {
	mu      sync.Mutex
	seq     uint
	users   map[uint]domain.User
	items   map[uint]domain.Item
	carts   map[cartKey]domain.CartLine
	orders  []domain.Order
	ratings []domain.Rating

	// Now is the clock used for timestamps
	Now func() time.Time
}

// New returns an empty in-memory database
func New() *DB {
	return &DB{
		users: map[uint]domain.User{},
		items: map[uint]domain.Item{},
		carts: map[cartKey]domain.CartLine{},
		Now:   time.Now,
	}
}

func (d *DB) nextID() uint {
	d.seq++
	return d.seq
}

func (d *DB) Users() *Users     { return &Users{d} }
func (d *DB) Items() *Items     { return &Items{d} }
func (d *DB) Carts() *Carts     { return &Carts{d} }
func (d *DB) Orders() *Orders   { return &Orders{d} }
func (d *DB) Ratings() *Ratings { return &Ratings{d} }

// Users

// Users is the in-memory account repository
type Users struct{ d *DB }

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, existing := range r.d.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.ID = r.d.nextID()
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	u.CreatedAt = r.d.Now()
	r.d.users[u.ID] = *u
	return nil
}

func (r *Users) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *Users) AdminExists(_ context.Context) (bool, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.IsAdmin() {
			return true, nil
		}
	}
	return false, nil
}

func (r *Users) SetResetCode(_ context.Context, id uint, code string, expires time.Time) error {
	return r.update(id, func(u *domain.User) {
		u.ResetCode = &code
		u.ResetExpires = &expires
	})
}

func (r *Users) ClearResetCode(_ context.Context, id uint) error {
	return r.update(id, func(u *domain.User) {
		u.ResetCode = nil
		u.ResetExpires = nil
	})
}

func (r *Users) UpdatePassword(_ context.Context, id uint, hash string) error {
	return r.update(id, func(u *domain.User) {
		u.Password = hash
		u.ResetCode = nil
		u.ResetExpires = nil
	})
}

func (r *Users) update(id uint, fn func(*domain.User)) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(&u)
	r.d.users[id] = u
	return nil
}

// Items

// Items is the in-memory catalog repository
type Items struct{ d *DB }

func (r *Items) Create(_ context.Context, it *domain.Item) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	it.ID = r.d.nextID()
	it.CreatedAt = r.d.Now()
	r.d.items[it.ID] = *it
	return nil
}

func (r *Items) FindByID(_ context.Context, id uint) (*domain.Item, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	it, ok := r.d.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &it, nil
}

func (r *Items) List(_ context.Context) ([]domain.Item, error) {
	items := r.snapshot()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *Items) Latest(_ context.Context, limit int) ([]domain.Item, error) {
	items := r.snapshot()
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *Items) snapshot() []domain.Item {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	items := make([]domain.Item, 0, len(r.d.items))
	for _, it := range r.d.items {
		items = append(items, it)
	}
	return items
}

// Carts

// Carts is the in-memory cart repository
type Carts struct{ d *DB }

func (r *Carts) Upsert(_ context.Context, line domain.CartLine) (*domain.CartLine, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	key := cartKey{line.UserID, line.ItemID}
	if existing, ok := r.d.carts[key]; ok {
		line.Quantity += existing.Quantity
	}
	line.UpdatedAt = r.d.Now()
	r.d.carts[key] = line
	return &line, nil
}

func (r *Carts) ListByUser(_ context.Context, userID uint) ([]domain.CartEntry, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.entries(userID), nil
}

func (r *Carts) Delete(_ context.Context, userID, itemID uint) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	key := cartKey{userID, itemID}
	if _, ok := r.d.carts[key]; !ok {
		return store.ErrNotFound
	}
	delete(r.d.carts, key)
	return nil
}

func (r *Carts) UpdateQuantity(_ context.Context, userID, itemID uint, quantity int) (*domain.CartLine, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	key := cartKey{userID, itemID}
	line, ok := r.d.carts[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	line.Quantity = quantity
	line.UpdatedAt = r.d.Now()
	r.d.carts[key] = line
	return &line, nil
}

func (r *Carts) Clear(_ context.Context, userID uint) ([]domain.CartLine, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.clearCart(userID), nil
}

// entries joins the user's lines with their items; lines of unknown items are dropped like an inner join
func (d *DB) entries(userID uint) []domain.CartEntry {
	out := []domain.CartEntry{}
	for key, line := range d.carts {
		if key.userID != userID {
			continue
		}
		it, ok := d.items[key.itemID]
		if !ok {
			continue
		}
		out = append(out, domain.CartEntry{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Name:     it.Name,
			Price:    it.Price,
			ImageURL: it.ImageURL,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (d *DB) clearCart(userID uint) []domain.CartLine {
	removed := []domain.CartLine{}
	for key, line := range d.carts {
		if key.userID == userID {
			removed = append(removed, line)
			delete(d.carts, key)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i].ItemID < removed[j].ItemID })
	return removed
}

// Orders

// Orders is the in-memory order repository
type Orders struct{ d *DB }

func (r *Orders) Create(_ context.Context, o *domain.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.insertOrder(o)
	return nil
}

func (r *Orders) ListByUser(_ context.Context, userID uint) ([]domain.Order, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := []domain.Order{}
	for i := len(r.d.orders) - 1; i >= 0; i-- {
		if r.d.orders[i].UserID == userID {
			out = append(out, r.d.orders[i])
		}
	}
	return out, nil
}

func (r *Orders) DeleteByUser(_ context.Context, userID uint) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	kept := r.d.orders[:0]
	var removed int64
	for _, o := range r.d.orders {
		if o.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.d.orders = kept
	return removed, nil
}

func (r *Orders) Checkout(_ context.Context, userID uint, build func([]domain.CartEntry) (*domain.Order, error)) (*domain.Order, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	entries := r.d.entries(userID)
	if len(entries) == 0 {
		return nil, store.ErrEmptyCart
	}
	order, err := build(entries)
	if err != nil {
		return nil, err
	}
	r.d.insertOrder(order)
	r.d.clearCart(userID)
	return order, nil
}

func (d *DB) insertOrder(o *domain.Order) {
	o.ID = d.nextID()
	o.CreatedAt = d.Now()
	d.orders = append(d.orders, *o)
}

// Ratings

// Ratings is the in-memory rating repository
type Ratings struct{ d *DB }

func (r *Ratings) Upsert(_ context.Context, rating *domain.Rating) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	rating.CreatedAt = r.d.Now()
	for i, existing := range r.d.ratings {
		if existing.ItemID == rating.ItemID && existing.UserID == rating.UserID {
			rating.ID = existing.ID
			r.d.ratings[i] = *rating
			return nil
		}
	}
	rating.ID = r.d.nextID()
	r.d.ratings = append(r.d.ratings, *rating)
	return nil
}

func (r *Ratings) Average(_ context.Context, itemID uint) (float64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var sum, n int
	for _, rt := range r.d.ratings {
		if rt.ItemID == itemID {
			sum += rt.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (r *Ratings) ListByItem(_ context.Context, itemID uint) ([]domain.RatingView, error) {
	return r.list(func(rt domain.Rating) bool { return rt.ItemID == itemID }), nil
}

func (r *Ratings) ListAll(_ context.Context) ([]domain.RatingView, error) {
	return r.list(func(domain.Rating) bool { return true }), nil
}

func (r *Ratings) list(keep func(domain.Rating) bool) []domain.RatingView {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := []domain.RatingView{}
	for _, rt := range r.d.ratings {
		u, ok := r.d.users[rt.UserID]
		if !ok || !keep(rt) {
			continue
		}
		out = append(out, domain.RatingView{ID: rt.ID, ItemID: rt.ItemID, UserID: rt.UserID, Rating: rt.Rating, Username: u.Username})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID == out[j].ItemID {
			return out[i].ID < out[j].ID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}
