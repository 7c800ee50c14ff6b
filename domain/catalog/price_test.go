package catalog

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"125000", "Rs. 125,000"},
		{"1499.50", "Rs. 1,499.5"},
		{"999", "Rs. 999"},
		{"1234567.89", "Rs. 1,234,567.89"},
		{"0", "Rs. 0"},
		{"", "Rs. 0"},
		{"not-a-price", "Rs. 0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatPrice(tt.in); got != tt.want {
				t.Errorf("FormatPrice(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("  <p>Fast <strong>GPU</strong></p>\n")
	if got != "Fast GPU" {
		t.Errorf("StripHTML() = %q, want %q", got, "Fast GPU")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %q, want unchanged", got)
	}
	if got := Truncate("a long description here", 6); got != "a long..." {
		t.Errorf("Truncate() = %q, want %q", got, "a long...")
	}
}
