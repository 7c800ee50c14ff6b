package storefront

import (
	"net/url"
	"strings"

	"github.com/example/woo-storefront/domain/catalog"
)

const whatsAppBase = "https://wa.me/"

// OrderMessage is the prefilled chat text for ordering p.
func OrderMessage(siteURL string, p *catalog.Product) string {
	return p.Name + " (SKU:" + p.OrderReference() + ") — " +
		ProductURL(siteURL, p.Slug) + " — Price: " +
		catalog.FormatPrice(p.DisplayPrice()) + ". I'm interested."
}

// OrderLink builds the click-to-chat deep link for p. Non-digits are
// stripped from number.
func OrderLink(number, siteURL string, p *catalog.Product) string {
	return whatsAppBase + digitsOnly(number) + "?text=" + encodeComponent(OrderMessage(siteURL, p))
}

// ProductURL is the canonical public URL of a product page.
func ProductURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + "/product/" + slug
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeComponent escapes s for a query value with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
