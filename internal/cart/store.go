package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"time"
)

// StorageKey is the fixed key cart snapshots are persisted under.
const StorageKey = "vitalia.cart.v1"

// Item is one cart line. PriceCents is a snapshot taken when the item is
// added and is never re-fetched. Stock is nil when the product has no
// inventory ceiling.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image,omitempty"`
	Stock      *int   `json:"stock,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Store holds the cart state. Mutations are synchronous and atomic with
// respect to each other; derived count/subtotal values are recomputed on
// mutation and cached until the next one. Every mutation is mirrored
// write-through to the configured Storage; mirror failures are logged and
// never fail the mutation.
type Store struct {
	mu            sync.Mutex
	items         []Item
	index         map[string]int
	count         int
	subtotalCents int64

	storage Storage
	logger  *log.Logger
}

// New creates a Store, rehydrating previously persisted items when storage
// holds a snapshot. A nil storage disables persistence; a nil logger
// discards mirror diagnostics.
func New(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		index:   make(map[string]int),
		storage: storage,
		logger:  logger,
	}
	s.rehydrate()
	return s
}

// Add merges qty units of item into the cart. An existing line (same ID)
// has its quantity increased; otherwise the item is appended, preserving
// insertion order. The resulting quantity is floored at 1 and clamped to
// the item's stock ceiling when one is set.
func (s *Store) Add(item Item, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[item.ID]; ok {
		existing := &s.items[pos]
		existing.Quantity = clampQty(existing.Quantity+qty, existing.Stock)
	} else {
		item.Quantity = clampQty(qty, item.Stock)
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	s.commit()
}

// Remove deletes the line with the given ID. Removing an absent ID is a
// no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}
	s.commit()
}

// Increase adds one unit, respecting the stock ceiling. Unknown IDs are
// ignored.
func (s *Store) Increase(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	it := &s.items[pos]
	it.Quantity = clampQty(it.Quantity+1, it.Stock)
	s.commit()
}

// Decrease removes one unit but never drops below 1; removing the line is
// a separate explicit action. Unknown IDs are ignored.
func (s *Store) Decrease(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	it := &s.items[pos]
	if it.Quantity > 1 {
		it.Quantity--
	}
	s.commit()
}

// SetQuantity sets the line quantity to max(1, qty). The stock ceiling is
// intentionally not applied here: admin flows may push a line above stock,
// and the storefront relies on Add/Increase for clamped paths.
func (s *Store) SetQuantity(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return
	}
	if qty < 1 {
		qty = 1
	}
	s.items[pos].Quantity = qty
	s.commit()
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[string]int)
	s.commit()
}

// Items returns the lines in insertion order. The returned slice is a copy.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the cached total unit count across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// SubtotalCents returns the cached sum of price times quantity.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalCents
}

// commit recomputes derived values and mirrors the snapshot. Callers must
// hold s.mu.
func (s *Store) commit() {
	s.recompute()
	s.persist()
}

func (s *Store) recompute() {
	s.count = 0
	s.subtotalCents = 0
	for _, it := range s.items {
		s.count += it.Quantity
		s.subtotalCents += it.PriceCents * int64(it.Quantity)
	}
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Printf("cart: marshal snapshot: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.storage.Save(ctx, StorageKey, data); err != nil {
		s.logger.Printf("cart: persist snapshot: %v", err)
	}
}

func (s *Store) rehydrate() {
	if s.storage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	data, err := s.storage.Load(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			s.logger.Printf("cart: load snapshot: %v", err)
		}
		return
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Printf("cart: decode snapshot: %v", err)
		return
	}
	s.items = items
	for i, it := range items {
		s.index[it.ID] = i
	}
	s.recompute()
}

// clampQty applies the stock ceiling first, then the floor of 1, so a line
// never ends up below one unit even for zero-stock items.
func clampQty(q int, stock *int) int {
	if stock != nil && q > *stock {
		q = *stock
	}
	if q < 1 {
		q = 1
	}
	return q
}
