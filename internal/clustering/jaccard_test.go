package clustering

import "testing"

func TestJaccardText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "seo tools", b: "seo tools", want: 1},
		{name: "disjoint", a: "seo tools", b: "content marketing", want: 0},
		{name: "partial overlap", a: "seo tools", b: "seo software", want: 1.0 / 3},
		{name: "case insensitive", a: "SEO Tools", b: "seo tools", want: 1},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "seo", b: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := JaccardText(tt.a, tt.b); got != tt.want {
				t.Errorf("JaccardText(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestJaccardSymmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"keyword research tools", "free keyword tools"},
		{"link building guide", "guide to building links"},
		{"technical seo audit", "seo"},
	}
	for _, p := range pairs {
		if ab, ba := JaccardText(p[0], p[1]), JaccardText(p[1], p[0]); ab != ba {
			t.Errorf("Jaccard(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}
