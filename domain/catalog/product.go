// Package catalog provides the domain entities read from the remote store.
package catalog

import "strconv"

// StockStatus is the availability reported by the store for a product.
type StockStatus string

const (
	InStock     StockStatus = "instock"
	OutOfStock  StockStatus = "outofstock"
	OnBackorder StockStatus = "onbackorder"
)

// Label returns the human readable stock badge text.
func (s StockStatus) Label() string {
	switch s {
	case InStock:
		return "In Stock"
	case OnBackorder:
		return "On Backorder"
	default:
		return "Out of Stock"
	}
}

// Image is a product or category image hosted by the store.
type Image struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// CategoryRef is the short category (or brand) reference embedded in a product.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Attribute is a named product attribute with its ordered option values.
type Attribute struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Product represents a published product in the catalog.
// Prices are kept as the decimal strings sent by the store.
type Product struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Permalink        string        `json:"permalink"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	SalePrice        string        `json:"sale_price"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	SKU              string        `json:"sku"`
	StockStatus      StockStatus   `json:"stock_status"`
	Images           []Image       `json:"images"`
	Categories       []CategoryRef `json:"categories"`
	Brands           []CategoryRef `json:"brands,omitempty"`
	Attributes       []Attribute   `json:"attributes"`
}

// OnSale reports whether the sale price is set and differs from the regular price.
func (p *Product) OnSale() bool {
	if p.SalePrice == "" {
		return false
	}
	return !samePrice(p.SalePrice, p.RegularPrice)
}

// DisplayPrice returns the price shown to shoppers: the sale price while on
// sale, otherwise the effective price computed by the store.
func (p *Product) DisplayPrice() string {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}

// InStock reports whether the product can be ordered right now.
func (p *Product) InStock() bool {
	return p.StockStatus == InStock
}

// PrimaryImage returns the first image, or nil when the product has none.
func (p *Product) PrimaryImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// PrimaryCategory returns the first category, or nil.
func (p *Product) PrimaryCategory() *CategoryRef {
	if len(p.Categories) == 0 {
		return nil
	}
	return &p.Categories[0]
}

// OrderReference is the SKU, falling back to the numeric ID when no SKU is set.
func (p *Product) OrderReference() string {
	if p.SKU != "" {
		return p.SKU
	}
	return strconv.Itoa(p.ID)
}
