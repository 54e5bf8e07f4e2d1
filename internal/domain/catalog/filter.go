package catalog

import (
	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductSort is a storefront sort order
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price-low"
	SortPriceHigh ProductSort = "price-high"
	SortName      ProductSort = "name"
)

// ParseProductSort maps a query value to a sort, defaulting to name
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortPriceLow, SortPriceHigh, SortNewest:
		return ProductSort(s)
	default:
		return SortName
	}
}

// PriceRange bounds a price filter. A nil bound is open.
type PriceRange struct {
	Min          *decimal.Decimal
	MinExclusive bool
	Max          *decimal.Decimal
	MaxExclusive bool
}

// Contains reports whether price falls inside the range
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Min != nil {
		if r.MinExclusive && !price.GreaterThan(*r.Min) {
			return false
		}
		if !r.MinExclusive && price.LessThan(*r.Min) {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxExclusive && !price.LessThan(*r.Max) {
			return false
		}
		if !r.MaxExclusive && price.GreaterThan(*r.Max) {
			return false
		}
	}
	return true
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ParsePriceRange maps the storefront's price buckets. Empty or "all" returns
// an open range and ok=true; an unknown bucket returns ok=false.
func ParsePriceRange(s string) (PriceRange, bool) {
	switch s {
	case "", "all":
		return PriceRange{}, true
	case "under-1000":
		return PriceRange{Max: amount(1000), MaxExclusive: true}, true
	case "1000-5000":
		return PriceRange{Min: amount(1000), Max: amount(5000)}, true
	case "5000-10000":
		return PriceRange{Min: amount(5000), Max: amount(10000)}, true
	case "over-10000":
		return PriceRange{Min: amount(10000), MinExclusive: true}, true
	default:
		return PriceRange{}, false
	}
}

// ProductFilter narrows product queries
type ProductFilter struct {
	shared.Filter
	Status     *ProductStatus
	CategoryID *uuid.UUID
	PriceRange PriceRange
	Sort       ProductSort
}
