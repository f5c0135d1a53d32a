package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/entity/expense"
)

type EventKind string

const (
	EventAdded       EventKind = "added"
	EventUpdated     EventKind = "updated"
	EventDeleted     EventKind = "deleted"
	EventViewChanged EventKind = "view_changed"
)

// Event is delivered to subscribers after every successful mutation.
// View is the derived view recomputed after the mutation.
type Event struct {
	Kind    EventKind
	Expense expense.Expense
	View    []expense.Expense
}

type Subscriber func(Event)

type Option func(*InMemStorage)

func WithClock(now func() time.Time) Option {
	return func(s *InMemStorage) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *InMemStorage) {
		s.newID = newID
	}
}

type InMemStorage struct {
	mu          sync.RWMutex
	expenses    []expense.Expense
	order       expense.SortOrder
	rng         expense.Range
	subscribers []Subscriber

	now   func() time.Time
	newID func() string
}

func NewInMemStorage(opts ...Option) *InMemStorage {
	s := &InMemStorage{
		order: expense.SortByDate,
		rng:   expense.DefaultRange(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemStorage) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

func (s *InMemStorage) Add(description string, amount decimal.Decimal) expense.Expense {
	s.mu.Lock()
	rec := expense.Expense{
		ID:          s.newID(),
		Description: description,
		Amount:      amount,
		CreatedAt:   s.now(),
	}
	s.expenses = append(s.expenses, rec)
	s.mu.Unlock()

	s.notify(EventAdded, rec)
	return rec
}

// Update replaces description and amount of the record sharing rec.ID.
// ID and CreatedAt of the stored record are kept.
func (s *InMemStorage) Update(rec expense.Expense) error {
	s.mu.Lock()
	i := s.indexOf(rec.ID)
	if i < 0 {
		s.mu.Unlock()
		return errors.Wrap(&customerr.NotFoundError{ID: rec.ID}, "update expense")
	}
	s.expenses[i].Description = rec.Description
	s.expenses[i].Amount = rec.Amount
	updated := s.expenses[i]
	s.mu.Unlock()

	s.notify(EventUpdated, updated)
	return nil
}

func (s *InMemStorage) Delete(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return errors.Wrap(&customerr.NotFoundError{ID: id}, "delete expense")
	}
	deleted := s.expenses[i]
	s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
	s.mu.Unlock()

	s.notify(EventDeleted, deleted)
	return nil
}

func (s *InMemStorage) Get(id string) (expense.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return expense.Expense{}, false
	}
	return s.expenses[i], true
}

// All returns the unfiltered set in insertion order.
func (s *InMemStorage) All() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]expense.Expense(nil), s.expenses...)
}

func (s *InMemStorage) SetSortOrder(order expense.SortOrder) error {
	if _, err := expense.ParseSortOrder(string(order)); err != nil {
		return errors.Wrap(err, "set sort order")
	}
	s.mu.Lock()
	s.order = order
	s.mu.Unlock()

	s.notify(EventViewChanged, expense.Expense{})
	return nil
}

func (s *InMemStorage) SortOrder() expense.SortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// SetFilterRange accepts any bounds; min > max yields an empty view.
func (s *InMemStorage) SetFilterRange(rng expense.Range) {
	s.mu.Lock()
	s.rng = rng
	s.mu.Unlock()

	s.notify(EventViewChanged, expense.Expense{})
}

func (s *InMemStorage) FilterRange() expense.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rng
}

// View filters by the active range, then sorts descending by the active key.
// Ties are broken by id ascending.
func (s *InMemStorage) View() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view()
}

func (s *InMemStorage) view() []expense.Expense {
	res := make([]expense.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if s.rng.Contains(e.Amount) {
			res = append(res, e)
		}
	}

	less := byDateDesc
	if s.order == expense.SortByAmount {
		less = byAmountDesc
	}
	sort.Slice(res, func(i, j int) bool {
		return less(res[i], res[j])
	})
	return res
}

func byDateDesc(a, b expense.Expense) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func byAmountDesc(a, b expense.Expense) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c > 0
	}
	return a.ID < b.ID
}

func (s *InMemStorage) indexOf(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *InMemStorage) notify(kind EventKind, rec expense.Expense) {
	s.mu.RLock()
	subs := append([]Subscriber(nil), s.subscribers...)
	var view []expense.Expense
	if len(subs) > 0 {
		view = s.view()
	}
	s.mu.RUnlock()

	ev := Event{Kind: kind, Expense: rec, View: view}
	for _, sub := range subs {
		sub(ev)
	}
}
