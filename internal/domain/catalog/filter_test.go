package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		bucket string
		price  int64
		in     bool
	}{
		{"under-1000", 999, true},
		{"under-1000", 1000, false},
		{"1000-5000", 1000, true},
		{"1000-5000", 5000, true},
		{"1000-5000", 5001, false},
		{"5000-10000", 4999, false},
		{"5000-10000", 10000, true},
		{"over-10000", 10000, false},
		{"over-10000", 10001, true},
		{"", 1, true},
		{"all", 99999, true},
	}
	for _, tt := range tests {
		r, ok := ParsePriceRange(tt.bucket)
		assert.True(t, ok)
		assert.Equal(t, tt.in, r.Contains(decimal.NewFromInt(tt.price)), "%s contains %d", tt.bucket, tt.price)
	}

	_, ok := ParsePriceRange("cheap")
	assert.False(t, ok)
}

func TestParseProductSort(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseProductSort("price-low"))
	assert.Equal(t, SortPriceHigh, ParseProductSort("price-high"))
	assert.Equal(t, SortName, ParseProductSort("name"))
	assert.Equal(t, SortNewest, ParseProductSort("newest"))
	assert.Equal(t, SortName, ParseProductSort("bogus"))
	assert.Equal(t, SortName, ParseProductSort(""))
}
