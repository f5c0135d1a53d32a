package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/entity/expense"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestStorage returns a store whose clock advances one minute per Add
// and whose ids are id-1, id-2, ...
func newTestStorage() *InMemStorage {
	tick, seq := 0, 0
	return NewInMemStorage(
		WithClock(func() time.Time {
			tick++
			return baseTime.Add(time.Duration(tick) * time.Minute)
		}),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ids(exps []expense.Expense) []string {
	res := make([]string, 0, len(exps))
	for _, e := range exps {
		res = append(res, e.ID)
	}
	return res
}

func Test_OnAdd_ShouldAssignFreshIDAndKeepValues(t *testing.T) {
	s := NewInMemStorage()

	rec := s.Add("Coffee", dec("5.25"))
	view := s.View()

	require.Len(t, view, 1)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Coffee", view[0].Description)
	assert.True(t, dec("5.25").Equal(view[0].Amount))
	assert.Equal(t, rec.ID, view[0].ID)

	other := s.Add("Coffee", dec("5.25"))
	assert.NotEqual(t, rec.ID, other.ID)
}

func Test_OnSortByDate_ShouldReturnNewestFirst(t *testing.T) {
	s := newTestStorage()
	s.Add("first", dec("1"))
	s.Add("second", dec("3"))
	s.Add("third", dec("2"))

	assert.Equal(t, []string{"id-3", "id-2", "id-1"}, ids(s.View()))
}

func Test_OnSortByAmount_ShouldReturnLargestFirstAndBreakTiesByID(t *testing.T) {
	s := newTestStorage()
	s.Add("a", dec("10"))
	s.Add("b", dec("30"))
	s.Add("c", dec("10"))
	s.Add("d", dec("20.5"))

	require.NoError(t, s.SetSortOrder(expense.SortByAmount))

	assert.Equal(t, []string{"id-2", "id-4", "id-1", "id-3"}, ids(s.View()))
}

func Test_OnSameCreationTime_ShouldBreakTiesByID(t *testing.T) {
	s := NewInMemStorage(
		WithClock(func() time.Time { return baseTime }),
		WithIDGenerator(func() func() string {
			names := []string{"b", "c", "a"}
			return func() string {
				n := names[0]
				names = names[1:]
				return n
			}
		}()),
	)
	s.Add("x", dec("1"))
	s.Add("y", dec("1"))
	s.Add("z", dec("1"))

	assert.Equal(t, []string{"a", "b", "c"}, ids(s.View()))
}

func Test_OnUnknownSortOrder_ShouldKeepCurrentOrder(t *testing.T) {
	s := NewInMemStorage()

	err := s.SetSortOrder("category")

	assert.Error(t, err)
	assert.Equal(t, expense.SortByDate, s.SortOrder())
}

func Test_OnFilterRange_ShouldIncludeBoundsInclusively(t *testing.T) {
	s := newTestStorage()
	s.Add("low", dec("4.99"))
	s.Add("min", dec("5"))
	s.Add("mid", dec("7"))
	s.Add("max", dec("10"))
	s.Add("high", dec("10.01"))

	s.SetFilterRange(expense.NewRange(dec("5"), dec("10")))
	require.NoError(t, s.SetSortOrder(expense.SortByAmount))

	assert.Equal(t, []string{"id-4", "id-3", "id-2"}, ids(s.View()))
	assert.Len(t, s.All(), 5)
}

func Test_DefaultFilter_ShouldHideNegativeAmounts(t *testing.T) {
	s := newTestStorage()
	s.Add("refund", dec("-3"))
	s.Add("lunch", dec("12.5"))

	assert.Equal(t, []string{"id-2"}, ids(s.View()))

	s.SetFilterRange(expense.Range{})
	assert.Equal(t, []string{"id-2", "id-1"}, ids(s.View()))
}

func Test_OnUpdate_ShouldReplaceFieldsAndKeepIdentity(t *testing.T) {
	s := newTestStorage()
	rec := s.Add("Lunch", dec("12.5"))

	err := s.Update(expense.Expense{
		ID:          rec.ID,
		Description: "Dinner",
		Amount:      dec("30"),
		CreatedAt:   baseTime.Add(time.Hour),
	})
	require.NoError(t, err)

	got, ok := s.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "Dinner", got.Description)
	assert.True(t, dec("30").Equal(got.Amount))
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
}

func Test_OnUpdateUnknownID_ShouldReturnNotFoundAndKeepState(t *testing.T) {
	s := newTestStorage()
	s.Add("Lunch", dec("12.5"))
	before := s.View()

	err := s.Update(expense.Expense{ID: "missing", Description: "x", Amount: dec("1")})

	assert.ErrorIs(t, err, customerr.ErrNotFound)
	assert.Equal(t, before, s.View())
}

func Test_OnDeleteUnknownID_ShouldLeaveViewUnchanged(t *testing.T) {
	s := newTestStorage()
	s.Add("a", dec("1"))
	s.Add("b", dec("2"))
	before := s.View()

	err := s.Delete("missing")

	assert.ErrorIs(t, err, customerr.ErrNotFound)
	assert.Equal(t, before, s.View())
}

func Test_OnDelete_ShouldRemoveOnlyThatRecord(t *testing.T) {
	s := newTestStorage()
	s.Add("a", dec("1"))
	s.Add("b", dec("2"))
	s.Add("c", dec("3"))

	require.NoError(t, s.Delete("id-2"))

	assert.Equal(t, []string{"id-3", "id-1"}, ids(s.View()))
	_, ok := s.Get("id-2")
	assert.False(t, ok)
}

func Test_ViewAfterEveryMutation_ShouldHoldExactlyRecordsInRange(t *testing.T) {
	s := newTestStorage()
	s.SetFilterRange(expense.NewRange(dec("2"), dec("8")))

	steps := []func(){
		func() { s.Add("a", dec("1")) },
		func() { s.Add("b", dec("5")) },
		func() { s.Add("c", dec("8")) },
		func() { _ = s.Update(expense.Expense{ID: "id-1", Description: "a", Amount: dec("3")}) },
		func() { _ = s.Delete("id-2") },
		func() { _ = s.Update(expense.Expense{ID: "id-3", Description: "c", Amount: dec("9")}) },
		func() { s.Add("d", dec("2")) },
	}

	for _, step := range steps {
		step()

		rng := s.FilterRange()
		expected := map[string]bool{}
		for _, e := range s.All() {
			if rng.Contains(e.Amount) {
				expected[e.ID] = true
			}
		}
		seen := map[string]bool{}
		for _, e := range s.View() {
			assert.False(t, seen[e.ID], "duplicate %s", e.ID)
			seen[e.ID] = true
		}
		assert.Equal(t, expected, seen)
	}
}

func Test_Subscribers_ShouldReceiveRecomputedViewOnEveryMutation(t *testing.T) {
	s := newTestStorage()
	var events []Event
	s.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	rec := s.Add("a", dec("1"))
	require.NoError(t, s.Update(expense.Expense{ID: rec.ID, Description: "b", Amount: dec("2")}))
	require.NoError(t, s.SetSortOrder(expense.SortByAmount))
	s.SetFilterRange(expense.NewRange(dec("5"), dec("6")))
	require.NoError(t, s.Delete(rec.ID))
	_ = s.Delete(rec.ID)

	require.Len(t, events, 5)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, []string{"id-1"}, ids(events[0].View))
	assert.Equal(t, EventUpdated, events[1].Kind)
	assert.Equal(t, "b", events[1].Expense.Description)
	assert.Equal(t, EventViewChanged, events[2].Kind)
	assert.Equal(t, EventViewChanged, events[3].Kind)
	assert.Empty(t, events[3].View)
	assert.Equal(t, EventDeleted, events[4].Kind)
	assert.Equal(t, rec.ID, events[4].Expense.ID)
}

func Test_Subscriber_ShouldBeAbleToReadStore(t *testing.T) {
	s := NewInMemStorage()
	var seen int
	s.Subscribe(func(Event) {
		seen = len(s.All())
	})

	s.Add("a", dec("1"))

	assert.Equal(t, 1, seen)
}
