package extractor

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/seoscan/seoscan/internal/model"
)

// defaultConcurrency bounds how many pages are parsed at once.
// Parsing is CPU-bound on local files; a small limit keeps memory flat
// on large sites without serializing the walk.
const defaultConcurrency = 8

// maxKeywords caps the number of topic keywords detected per page.
const maxKeywords = 10

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor scans a content directory tree and yields page records.
type Extractor struct {
	// concurrency limits parallel page parsing.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConcurrency sets the parallel parse limit.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the extractor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		concurrency: defaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scan walks rootDir for HTML content files and returns the extracted
// page records, sorted by path for deterministic downstream processing.
// A missing root directory is not an error: it yields an empty slice,
// since a site with no local content tree still gets the API-driven
// stages.
func (e *Extractor) Scan(ctx context.Context, rootDir string) ([]*model.Page, error) {
	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		e.logger.Debug("content directory does not exist", "dir", rootDir)
		return []*model.Page{}, nil
	}

	var paths []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm", ".md":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		pages []*model.Page
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			page, err := e.extractFile(rootDir, path)
			if err != nil {
				// One unreadable file should not sink the scan.
				e.logger.Warn("failed to extract page", "path", path, "error", err)
				return nil
			}

			mu.Lock()
			pages = append(pages, page)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })

	e.logger.Info("content scan completed", "dir", rootDir, "pages", len(pages))
	return pages, nil
}

// extractFile parses one HTML file into a page record.
func (e *Extractor) extractFile(rootDir, path string) (*model.Page, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from our own directory walk
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".md") {
		return extractMarkdown(urlPath(rootDir, path), string(data)), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	pagePath := urlPath(rootDir, path)

	// Drop non-content elements before text extraction
	doc.Find("script,noscript,style").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	title := strings.TrimSpace(doc.Find("title").First().Text())
	desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	var headings []string
	doc.Find("h1,h2,h3").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			headings = append(headings, t)
		}
	})

	keywords := detectKeywords(doc, headings)
	links := extractLinks(doc, pagePath)

	var parts []string
	doc.Find("p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))

	return &model.Page{
		Path:          pagePath,
		Title:         title,
		Description:   desc,
		Headings:      headings,
		RawContent:    text,
		Keywords:      keywords,
		ExistingLinks: links,
		WordCount:     len(strings.Fields(text)),
	}, nil
}

// detectKeywords collects topic keywords from the meta keywords tag,
// falling back to heading words when the tag is absent.
func detectKeywords(doc *goquery.Document, headings []string) []string {
	var keywords []string
	seen := make(map[string]bool)

	add := func(k string) {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] || len(keywords) >= maxKeywords {
			return
		}
		seen[k] = true
		keywords = append(keywords, k)
	}

	if kw := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			add(k)
		}
		return keywords
	}

	// No meta keywords: fall back to heading phrases
	for _, h := range headings {
		add(h)
	}
	return keywords
}

// extractLinks collects internal anchors. External links (absolute URLs
// with a host) are ignored; the linking stages only reason about pages
// the site controls.
func extractLinks(doc *goquery.Document, sourcePath string) []model.LinkEdge {
	var links []model.LinkEdge
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.Contains(href, "://") || strings.HasPrefix(href, "//") {
			return
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}

		// Strip fragments and queries; link targets are page paths
		if i := strings.IndexAny(href, "#?"); i >= 0 {
			href = href[:i]
		}
		if href == "" {
			return
		}

		links = append(links, model.LinkEdge{
			SourceURL:  sourcePath,
			TargetURL:  href,
			AnchorText: strings.TrimSpace(s.Text()),
			Kind:       model.LinkKindExisting,
		})
	})
	return links
}

// urlPath converts a content file path to its site URL path:
// content/blog/post.html -> /blog/post, content/index.html -> /.
func urlPath(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if rel == "index" {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/index")
	return "/" + rel
}
