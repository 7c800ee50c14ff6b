package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/example/woo-storefront/domain/catalog"
	"github.com/example/woo-storefront/modules/pagecache"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	tmplHome     = "home"
	tmplCategory = "category"
	tmplProduct  = "product"
	tmplSearch   = "search"
	tmplError    = "error"
)

const contentTypeHTML = "text/html; charset=utf-8"

// layoutData is what layout.html executes against.
type layoutData struct {
	Site Site
	Nav  []NavLink
	Meta Meta
	Year int
	Data any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	site  Site
	pages map[string]*template.Template
	now   func() time.Time
}

// NewRenderer parses every page template. It fails on a template syntax error.
func NewRenderer(site Site) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatPrice": catalog.FormatPrice,
		"stripHTML":   catalog.StripHTML,
		"truncate":    catalog.Truncate,
		// Store descriptions are authored HTML from the store admin.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	r := &Renderer{site: site, pages: make(map[string]*template.Template), now: time.Now}
	for _, name := range []string{tmplHome, tmplCategory, tmplProduct, tmplSearch, tmplError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page name and wraps the output for the page cache.
func (r *Renderer) Render(name string, kind pagecache.Kind, status int, meta Meta, data any) (*pagecache.Page, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}

	now := r.now()
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", layoutData{
		Site: r.site,
		Nav:  navCategories,
		Meta: meta,
		Year: now.Year(),
		Data: data,
	}); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return &pagecache.Page{
		Kind:        kind,
		Status:      status,
		ContentType: contentTypeHTML,
		Body:        buf.String(),
		RenderedAt:  now.UTC(),
	}, nil
}

// RenderError renders the error page for status.
func (r *Renderer) RenderError(status int, heading, message string) (*pagecache.Page, error) {
	meta := Meta{Title: heading + " - " + r.site.Name, Description: message}
	return r.Render(tmplError, "", status, meta, ErrorView{
		Status:  status,
		Heading: heading,
		Message: message,
	})
}
