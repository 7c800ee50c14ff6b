package catalog

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	DefaultProductsPerPage   = 20
	DefaultCategoriesPerPage = 100
	MaxPerPage               = 100
)

// SortKey is a product ordering accepted by the store.
type SortKey string

const (
	SortNone       SortKey = ""
	SortRelevance  SortKey = "relevance"
	SortDate       SortKey = "date"
	SortPrice      SortKey = "price"
	SortPopularity SortKey = "popularity"
)

// ParseSortKey returns the key for s, or SortNone for unknown values.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortRelevance, SortDate, SortPrice, SortPopularity:
		return k
	default:
		return SortNone
	}
}

type SortDirection string

const (
	Desc SortDirection = "desc"
	Asc  SortDirection = "asc"
)

// ParseSortDirection accepts "asc" and "desc"; anything else is Desc.
func ParseSortDirection(s string) SortDirection {
	if SortDirection(s) == Asc {
		return Asc
	}
	return Desc
}

// ProductQuery filters a product listing. Zero values are omitted from the
// request, except Page and PerPage which fall back to their defaults.
type ProductQuery struct {
	Search     string
	CategoryID int
	MinPrice   decimal.NullDecimal
	MaxPrice   decimal.NullDecimal
	OrderBy    SortKey
	Order      SortDirection
	Page       int
	PerPage    int
}

// Values encodes the query. Only published products are ever requested.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	v.Set("status", "publish")
	v.Set("per_page", strconv.Itoa(clampPerPage(q.PerPage, DefaultProductsPerPage)))
	v.Set("page", strconv.Itoa(max(q.Page, 1)))

	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		v.Set("category", strconv.Itoa(q.CategoryID))
	}
	if q.MinPrice.Valid {
		v.Set("min_price", q.MinPrice.Decimal.String())
	}
	if q.MaxPrice.Valid {
		v.Set("max_price", q.MaxPrice.Decimal.String())
	}
	if q.OrderBy != SortNone {
		v.Set("orderby", string(q.OrderBy))
		order := q.Order
		if order == "" {
			order = Desc
		}
		v.Set("order", string(order))
	}
	return v
}

// CategoryQuery filters a category listing. Categories are always sorted by name.
type CategoryQuery struct {
	Parent  *int
	PerPage int
}

// TopLevel returns a query for root categories.
func TopLevel(perPage int) CategoryQuery {
	root := 0
	return CategoryQuery{Parent: &root, PerPage: perPage}
}

func (q CategoryQuery) Values() url.Values {
	v := url.Values{}
	v.Set("per_page", strconv.Itoa(clampPerPage(q.PerPage, DefaultCategoriesPerPage)))
	v.Set("orderby", "name")
	v.Set("order", "asc")
	if q.Parent != nil {
		v.Set("parent", strconv.Itoa(*q.Parent))
	}
	return v
}

func clampPerPage(n, def int) int {
	if n <= 0 {
		return def
	}
	return min(n, MaxPerPage)
}
