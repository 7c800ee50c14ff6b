package catalog

import "testing"

func TestProduct_DisplayPrice(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		want     string
		wantSale bool
	}{
		{
			name:    "no sale price uses effective price",
			product: Product{Price: "1500", RegularPrice: "1500", SalePrice: ""},
			want:    "1500",
		},
		{
			name:     "sale price below regular",
			product:  Product{Price: "1200", RegularPrice: "1500", SalePrice: "1200"},
			want:     "1200",
			wantSale: true,
		},
		{
			name:    "sale price equal to regular is not a sale",
			product: Product{Price: "1500", RegularPrice: "1500", SalePrice: "1500"},
			want:    "1500",
		},
		{
			name:    "numerically equal strings are not a sale",
			product: Product{Price: "1500.00", RegularPrice: "1500", SalePrice: "1500.00"},
			want:    "1500.00",
		},
		{
			name:     "sale price without regular price",
			product:  Product{Price: "900", RegularPrice: "", SalePrice: "900"},
			want:     "900",
			wantSale: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.DisplayPrice(); got != tt.want {
				t.Errorf("DisplayPrice() = %q, want %q", got, tt.want)
			}
			if got := tt.product.OnSale(); got != tt.wantSale {
				t.Errorf("OnSale() = %v, want %v", got, tt.wantSale)
			}
		})
	}
}

func TestProduct_OrderReference(t *testing.T) {
	p := Product{ID: 42}
	if got := p.OrderReference(); got != "42" {
		t.Errorf("OrderReference() = %q, want %q", got, "42")
	}

	p.SKU = "GPU-4090"
	if got := p.OrderReference(); got != "GPU-4090" {
		t.Errorf("OrderReference() = %q, want %q", got, "GPU-4090")
	}
}

func TestProduct_PrimaryImageAndCategory(t *testing.T) {
	var p Product
	if p.PrimaryImage() != nil {
		t.Error("PrimaryImage() should be nil without images")
	}
	if p.PrimaryCategory() != nil {
		t.Error("PrimaryCategory() should be nil without categories")
	}

	p.Images = []Image{{ID: 1, Src: "a.jpg"}, {ID: 2, Src: "b.jpg"}}
	p.Categories = []CategoryRef{{ID: 7, Name: "GPUs", Slug: "gpus"}}

	if img := p.PrimaryImage(); img == nil || img.Src != "a.jpg" {
		t.Errorf("PrimaryImage() = %+v, want a.jpg", img)
	}
	if cat := p.PrimaryCategory(); cat == nil || cat.Slug != "gpus" {
		t.Errorf("PrimaryCategory() = %+v, want gpus", cat)
	}
}

func TestStockStatus_Label(t *testing.T) {
	tests := map[StockStatus]string{
		InStock:     "In Stock",
		OutOfStock:  "Out of Stock",
		OnBackorder: "On Backorder",
		"":          "Out of Stock",
	}
	for status, want := range tests {
		if got := status.Label(); got != want {
			t.Errorf("%q.Label() = %q, want %q", status, got, want)
		}
	}
}
