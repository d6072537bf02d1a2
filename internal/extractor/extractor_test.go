package extractor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestExtractorScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<html><head>
<title>Home</title>
<meta name="description" content="Welcome page">
<meta name="keywords" content="SEO, Content Marketing">
</head><body>
<h1>Welcome</h1>
<p>This is the home page with some words.</p>
<a href="/blog/first-post">Read the first post</a>
<a href="https://example.org/external">External</a>
<a href="#section">Skip</a>
</body></html>`)
	writeFile(t, dir, filepath.Join("blog", "first-post.html"), `<html><head>
<title>First Post</title>
</head><body>
<h1>First Post</h1>
<h2>Details</h2>
<p>Post body text here.</p>
<script>var ignored = "script text";</script>
</body></html>`)
	writeFile(t, dir, "notes.txt", "not html")

	pages, err := New().Scan(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}

	// Sorted by path: /blog/first-post comes before /
	if pages[0].Path != "/" && pages[1].Path != "/" {
		t.Fatalf("missing root page: %q, %q", pages[0].Path, pages[1].Path)
	}

	homePage, postPage := -1, -1
	for i, p := range pages {
		switch p.Path {
		case "/":
			homePage = i
		case "/blog/first-post":
			postPage = i
		}
	}
	if homePage < 0 || postPage < 0 {
		t.Fatalf("unexpected paths: %q, %q", pages[0].Path, pages[1].Path)
	}

	hp := pages[homePage]
	if hp.Title != "Home" {
		t.Errorf("home title = %q, want %q", hp.Title, "Home")
	}
	if hp.Description != "Welcome page" {
		t.Errorf("home description = %q, want %q", hp.Description, "Welcome page")
	}
	if len(hp.Keywords) != 2 || hp.Keywords[0] != "seo" || hp.Keywords[1] != "content marketing" {
		t.Errorf("home keywords = %v, want [seo content marketing]", hp.Keywords)
	}
	if len(hp.ExistingLinks) != 1 {
		t.Fatalf("home links = %d, want 1", len(hp.ExistingLinks))
	}
	if hp.ExistingLinks[0].TargetURL != "/blog/first-post" {
		t.Errorf("link target = %q, want %q", hp.ExistingLinks[0].TargetURL, "/blog/first-post")
	}
	if hp.ExistingLinks[0].AnchorText != "Read the first post" {
		t.Errorf("anchor = %q", hp.ExistingLinks[0].AnchorText)
	}
	if hp.WordCount == 0 {
		t.Error("home word count should be non-zero")
	}

	pp := pages[postPage]
	if len(pp.Headings) != 2 {
		t.Errorf("post headings = %v, want 2 entries", pp.Headings)
	}
	// No meta keywords tag: headings become topics
	if len(pp.Keywords) == 0 || pp.Keywords[0] != "first post" {
		t.Errorf("post keywords = %v, want heading fallback", pp.Keywords)
	}
}

func TestExtractorScanMissingDir(t *testing.T) {
	t.Parallel()

	pages, err := New().Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 {
		t.Fatalf("len(pages) = %d, want 0", len(pages))
	}
}

func TestURLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root index", path: "index.html", want: "/"},
		{name: "nested page", path: filepath.Join("blog", "post.html"), want: "/blog/post"},
		{name: "nested index", path: filepath.Join("blog", "index.html"), want: "/blog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := urlPath("content", filepath.Join("content", tt.path)); got != tt.want {
				t.Errorf("urlPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
