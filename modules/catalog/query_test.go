package catalog

import "testing"

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"relevance":  SortRelevance,
		"date":       SortDate,
		"price":      SortPrice,
		"popularity": SortPopularity,
		"rating":     SortNone,
		"":           SortNone,
	}
	for in, want := range tests {
		if got := ParseSortKey(in); got != want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProductQuery_OrderDirection(t *testing.T) {
	v := ProductQuery{OrderBy: SortPrice, Order: ParseSortDirection("asc")}.Values()
	if v.Get("order") != "asc" {
		t.Errorf("order = %q, want asc", v.Get("order"))
	}

	v = ProductQuery{OrderBy: SortPrice, Order: ParseSortDirection("sideways")}.Values()
	if v.Get("order") != "desc" {
		t.Errorf("order = %q, want desc", v.Get("order"))
	}

	v = ProductQuery{Order: Asc}.Values()
	if v.Has("order") {
		t.Error("order must not be sent without orderby")
	}
}

func TestCategoryQuery_Defaults(t *testing.T) {
	v := CategoryQuery{}.Values()
	if v.Get("per_page") != "100" {
		t.Errorf("per_page = %q, want 100", v.Get("per_page"))
	}
	if v.Has("parent") {
		t.Error("parent must be omitted when unset")
	}
}
