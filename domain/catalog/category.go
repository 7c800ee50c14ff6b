package catalog

// Category represents a product category. Categories form a tree through
// Parent; a Parent of 0 marks a top-level category.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Parent      int    `json:"parent"`
	Count       int    `json:"count"`
	Image       *Image `json:"image,omitempty"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.Parent == 0
}
