package expense

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_Range_Contains(t *testing.T) {
	rng := NewRange(decimal.NewFromInt(5), decimal.NewFromInt(10))

	assert.True(t, rng.Contains(decimal.NewFromInt(5)))
	assert.True(t, rng.Contains(decimal.RequireFromString("7.5")))
	assert.True(t, rng.Contains(decimal.NewFromInt(10)))
	assert.False(t, rng.Contains(decimal.RequireFromString("4.99")))
	assert.False(t, rng.Contains(decimal.RequireFromString("10.01")))
}

func Test_DefaultRange_ShouldExcludeNegativeAndHaveNoUpperBound(t *testing.T) {
	rng := DefaultRange()

	assert.False(t, rng.Contains(decimal.NewFromInt(-1)))
	assert.True(t, rng.Contains(decimal.Zero))
	assert.True(t, rng.Contains(decimal.NewFromInt(1_000_000_000)))
	assert.Equal(t, "[0, +inf]", rng.String())
}

func Test_ParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("amount")
	assert.NoError(t, err)
	assert.Equal(t, SortByAmount, o)

	_, err = ParseSortOrder("Amount")
	assert.Error(t, err)
}
