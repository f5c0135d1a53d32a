package expense

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"date"`
}

type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortByAmount SortOrder = "amount"
)

var SortOrders = []SortOrder{SortByDate, SortByAmount}

func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", errors.Errorf("unknown sort order %q", s)
}

// Range is an inclusive amount interval; a null bound is open.
type Range struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
}

func DefaultRange() Range {
	return Range{Min: decimal.NewNullDecimal(decimal.Zero)}
}

func NewRange(min, max decimal.Decimal) Range {
	return Range{Min: decimal.NewNullDecimal(min), Max: decimal.NewNullDecimal(max)}
}

func (r Range) Contains(amount decimal.Decimal) bool {
	if r.Min.Valid && amount.LessThan(r.Min.Decimal) {
		return false
	}
	if r.Max.Valid && amount.GreaterThan(r.Max.Decimal) {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min.Valid {
		lo = r.Min.Decimal.String()
	}
	if r.Max.Valid {
		hi = r.Max.Decimal.String()
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}
