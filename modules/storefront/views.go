package storefront

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/example/woo-storefront/domain/catalog"
	catalogmod "github.com/example/woo-storefront/modules/catalog"
)

const (
	homeCategories     = 8
	homeLatestProducts = 8
	categoryPageSize   = 20
	searchPageSize     = 20
	metaDescriptionLen = 160
)

// Site holds the storefront identity shown on every page.
type Site struct {
	Name     string
	URL      string
	WANumber string
}

// NavLink is an entry of the static category navigation.
type NavLink struct {
	Name string
	Slug string
}

// navCategories is the fixed header navigation.
var navCategories = []NavLink{
	{Name: "Prebuilt PCs", Slug: "prebuilt-pcs"},
	{Name: "Custom PCs", Slug: "custom-pcs"},
	{Name: "Laptops", Slug: "laptops"},
	{Name: "Components", Slug: "components"},
	{Name: "Monitors", Slug: "monitors"},
	{Name: "Peripherals", Slug: "peripherals"},
}

// Meta is the document head of a page.
type Meta struct {
	Title       string
	Description string
	Image       string
	Canonical   string
}

// ProductCard is a product tile in a listing.
type ProductCard struct {
	Name         string
	Slug         string
	Image        string
	ImageAlt     string
	Price        string
	RegularPrice string
	OnSale       bool
	InStock      bool
	StockLabel   string
}

func newProductCard(p *catalog.Product) ProductCard {
	card := ProductCard{
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        catalog.FormatPrice(p.DisplayPrice()),
		RegularPrice: catalog.FormatPrice(p.RegularPrice),
		OnSale:       p.OnSale(),
		InStock:      p.InStock(),
		StockLabel:   p.StockStatus.Label(),
	}
	if img := p.PrimaryImage(); img != nil {
		card.Image = img.Src
		card.ImageAlt = img.Alt
	}
	if card.ImageAlt == "" {
		card.ImageAlt = p.Name
	}
	return card
}

func productCards(products []catalog.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, newProductCard(&products[i]))
	}
	return cards
}

// HomeView is the landing page.
type HomeView struct {
	Categories []catalog.Category
	Latest     []ProductCard
}

// CategoryView is one page of a category listing.
type CategoryView struct {
	Category    catalog.Category
	Description string
	Products    []ProductCard
	Page        int
	HasMore     bool
	NextPage    int
}

// ProductView is the product detail page.
type ProductView struct {
	Product        *catalog.Product
	Card           ProductCard
	Breadcrumb     *catalog.CategoryRef
	Brand          string
	Condition      string
	WarrantyPeriod string
	WarrantyType   string
	OrderURL       string
	OrderMessage   string
}

// SearchParams are the accepted /search query parameters.
type SearchParams struct {
	Query    string
	OrderBy  catalogmod.SortKey
	Order    catalogmod.SortDirection
	Page     int
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
}

// ParseSearchParams reads search parameters from a query lookup. Invalid
// numbers are ignored.
func ParseSearchParams(get func(key string) string) SearchParams {
	p := SearchParams{
		Query:   strings.TrimSpace(get("q")),
		OrderBy: catalogmod.ParseSortKey(get("orderby")),
		Order:   catalogmod.ParseSortDirection(get("order")),
		Page:    parsePage(get("page")),
	}
	p.MinPrice = parseDecimal(get("min_price"))
	p.MaxPrice = parseDecimal(get("max_price"))
	if p.Query == "" && p.OrderBy == catalogmod.SortNone {
		p.OrderBy = catalogmod.SortDate
		p.Order = catalogmod.Desc
	}
	return p
}

func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// SearchView is the search results page.
type SearchView struct {
	Params   SearchParams
	Products []ProductCard
	HasMore  bool
	NextURL  string
}

// ErrorView is the body of 404 and 500 pages.
type ErrorView struct {
	Status  int
	Heading string
	Message string
}

// Views loads page data from the catalog.
type Views struct {
	catalog Catalog
	site    Site
}

// NewViews creates a view loader over c.
func NewViews(c Catalog, site Site) *Views {
	return &Views{catalog: c, site: site}
}

// Home loads the top-level categories and the latest products concurrently.
func (v *Views) Home(ctx context.Context) (*HomeView, Meta, error) {
	var (
		categories []catalog.Category
		latest     []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = v.catalog.ListCategories(gctx, catalogmod.TopLevel(homeCategories))
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = v.catalog.ListProducts(gctx, catalogmod.ProductQuery{
			PerPage: homeLatestProducts,
			OrderBy: catalogmod.SortDate,
			Order:   catalogmod.Desc,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Meta{}, fmt.Errorf("failed to load home page: %w", err)
	}

	meta := Meta{
		Title:       v.site.Name + " - Premium Computers & Components",
		Description: "Professional tech store offering premium computers, components, and accessories with WhatsApp ordering.",
		Canonical:   strings.TrimRight(v.site.URL, "/") + "/",
	}
	return &HomeView{Categories: categories, Latest: productCards(latest)}, meta, nil
}

// Category loads one page of a category. A nil view means the slug is unknown.
func (v *Views) Category(ctx context.Context, slug string, page int) (*CategoryView, Meta, error) {
	page = max(page, 1)

	var (
		category *catalog.Category
		products []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = v.catalog.GetCategoryBySlug(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = v.catalog.ProductsByCategory(gctx, slug, catalogmod.ProductQuery{
			Page:    page,
			PerPage: categoryPageSize,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Meta{}, fmt.Errorf("failed to load category %q: %w", slug, err)
	}
	if category == nil {
		return nil, Meta{}, nil
	}

	description := catalog.StripHTML(category.Description)
	metaDescription := description
	if metaDescription == "" {
		metaDescription = "Browse our " + category.Name + " collection"
	}

	view := &CategoryView{
		Category:    *category,
		Description: description,
		Products:    productCards(products),
		Page:        page,
		HasMore:     len(products) == categoryPageSize,
		NextPage:    page + 1,
	}
	meta := Meta{
		Title:       category.Name + " - " + v.site.Name,
		Description: catalog.Truncate(metaDescription, metaDescriptionLen),
		Canonical:   strings.TrimRight(v.site.URL, "/") + "/category/" + category.Slug,
	}
	if category.Image != nil {
		meta.Image = category.Image.Src
	}
	return view, meta, nil
}

// Product loads a product page. A nil view means the slug is unknown.
func (v *Views) Product(ctx context.Context, slug string) (*ProductView, Meta, error) {
	p, err := v.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to load product %q: %w", slug, err)
	}
	if p == nil {
		return nil, Meta{}, nil
	}

	description := p.ShortDescription
	if description == "" {
		description = p.Description
	}

	view := &ProductView{
		Product:        p,
		Card:           newProductCard(p),
		Breadcrumb:     p.PrimaryCategory(),
		Brand:          p.Brand(),
		Condition:      p.Condition(),
		WarrantyPeriod: p.WarrantyPeriod(),
		WarrantyType:   p.WarrantyType(),
		OrderURL:       OrderLink(v.site.WANumber, v.site.URL, p),
		OrderMessage:   OrderMessage(v.site.URL, p),
	}
	meta := Meta{
		Title:       p.Name + " - " + v.site.Name,
		Description: catalog.Truncate(catalog.StripHTML(description), metaDescriptionLen),
		Image:       view.Card.Image,
		Canonical:   ProductURL(v.site.URL, p.Slug),
	}
	return view, meta, nil
}

// Search lists products matching params.
func (v *Views) Search(ctx context.Context, params SearchParams) (*SearchView, Meta, error) {
	products, err := v.catalog.ListProducts(ctx, catalogmod.ProductQuery{
		Search:   params.Query,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		OrderBy:  params.OrderBy,
		Order:    params.Order,
		Page:     params.Page,
		PerPage:  searchPageSize,
	})
	if err != nil {
		return nil, Meta{}, fmt.Errorf("failed to search products: %w", err)
	}

	view := &SearchView{
		Params:   params,
		Products: productCards(products),
		HasMore:  len(products) == searchPageSize,
	}
	if view.HasMore {
		view.NextURL = params.nextURL()
	}

	title := "Search - " + v.site.Name
	if params.Query != "" {
		title = "Search: " + params.Query + " - " + v.site.Name
	}
	meta := Meta{
		Title:       title,
		Description: "Search computers, components and accessories at " + v.site.Name,
		Canonical:   strings.TrimRight(v.site.URL, "/") + "/search",
	}
	return view, meta, nil
}

func (p SearchParams) nextURL() string {
	q := make([]string, 0, 6)
	if p.Query != "" {
		q = append(q, "q="+encodeComponent(p.Query))
	}
	if p.OrderBy != catalogmod.SortNone {
		q = append(q, "orderby="+string(p.OrderBy), "order="+string(p.Order))
	}
	if p.MinPrice.Valid {
		q = append(q, "min_price="+p.MinPrice.Decimal.String())
	}
	if p.MaxPrice.Valid {
		q = append(q, "max_price="+p.MaxPrice.Decimal.String())
	}
	q = append(q, "page="+strconv.Itoa(p.Page+1))
	return "/search?" + strings.Join(q, "&")
}
