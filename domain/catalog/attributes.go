package catalog

import "strings"

// AttributeKey enumerates the product attributes the storefront understands.
type AttributeKey string

const (
	AttrBrand          AttributeKey = "brand"
	AttrCondition      AttributeKey = "condition"
	AttrWarrantyPeriod AttributeKey = "warranty period"
	AttrWarrantyType   AttributeKey = "warranty type"
)

// DefaultCondition is shown when a product has no condition attribute.
const DefaultCondition = "New"

// aliases lists, in priority order, the attribute names that resolve to a key.
// Store admins name attributes freely, so matching is by substring.
var aliases = map[AttributeKey][]string{
	AttrBrand:          {"brand"},
	AttrCondition:      {"condition", "product condition"},
	AttrWarrantyPeriod: {"warranty period", "warranty"},
	AttrWarrantyType:   {"warranty type"},
}

// Attributes is a normalized view over a product's attributes, keyed by
// lower-cased attribute name with options joined by ", ".
type Attributes struct {
	names  []string
	values map[string]string
}

// NormalizeAttributes builds the lookup map for a product's attributes.
// The first attribute wins when two normalize to the same name.
func NormalizeAttributes(attrs []Attribute) Attributes {
	a := Attributes{values: make(map[string]string, len(attrs))}
	for _, attr := range attrs {
		name := strings.ToLower(strings.TrimSpace(attr.Name))
		if _, ok := a.values[name]; ok {
			continue
		}
		a.names = append(a.names, name)
		a.values[name] = strings.Join(attr.Options, ", ")
	}
	return a
}

// Get returns the value for a recognized key, or "" when absent.
func (a Attributes) Get(key AttributeKey) string {
	for _, alias := range aliases[key] {
		if v := a.match(alias); v != "" {
			return v
		}
	}
	return ""
}

func (a Attributes) match(alias string) string {
	if v, ok := a.values[alias]; ok && v != "" {
		return v
	}
	for _, name := range a.names {
		if strings.Contains(name, alias) {
			if v := a.values[name]; v != "" {
				return v
			}
		}
	}
	return ""
}

// Attrs returns the normalized attribute lookup for the product.
func (p *Product) Attrs() Attributes {
	return NormalizeAttributes(p.Attributes)
}

// Brand returns the brand attribute, falling back to the first brand term.
func (p *Product) Brand() string {
	if v := p.Attrs().Get(AttrBrand); v != "" {
		return v
	}
	if len(p.Brands) > 0 {
		return p.Brands[0].Name
	}
	return ""
}

// Condition returns the product condition, defaulting to DefaultCondition.
func (p *Product) Condition() string {
	if v := p.Attrs().Get(AttrCondition); v != "" {
		return v
	}
	return DefaultCondition
}

// WarrantyPeriod returns the warranty period attribute, or "".
func (p *Product) WarrantyPeriod() string {
	return p.Attrs().Get(AttrWarrantyPeriod)
}

// WarrantyType returns the warranty type attribute, or "".
func (p *Product) WarrantyType() string {
	return p.Attrs().Get(AttrWarrantyType)
}
