package extractor

import (
	"regexp"
	"strings"

	"github.com/seoscan/seoscan/internal/model"
)

var (
	mdHeadingRe = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
)

// extractMarkdown builds a page record from markdown source. The page
// title is the first level-one heading; topic keywords fall back to
// heading phrases, matching the HTML path's behavior when no meta
// keywords tag exists.
func extractMarkdown(pagePath, content string) *model.Page {
	var (
		title    string
		headings []string
	)
	for _, m := range mdHeadingRe.FindAllStringSubmatch(content, -1) {
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		if title == "" && m[1] == "#" {
			title = text
		}
		headings = append(headings, text)
	}

	var (
		links []model.LinkEdge
		seen  = make(map[string]bool)
	)
	for _, m := range mdLinkRe.FindAllStringSubmatch(content, -1) {
		href := m[2]
		if strings.Contains(href, "://") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") {
			continue
		}
		if i := strings.IndexAny(href, "#?"); i >= 0 {
			href = href[:i]
		}
		if href == "" || seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, model.LinkEdge{
			SourceURL:  pagePath,
			TargetURL:  href,
			AnchorText: strings.TrimSpace(m[1]),
			Kind:       model.LinkKindExisting,
		})
	}

	text := mdText(content)

	var keywords []string
	kwSeen := make(map[string]bool)
	for _, h := range headings {
		k := strings.ToLower(h)
		if kwSeen[k] || len(keywords) >= maxKeywords {
			continue
		}
		kwSeen[k] = true
		keywords = append(keywords, k)
	}

	return &model.Page{
		Path:          pagePath,
		Title:         title,
		Headings:      headings,
		RawContent:    text,
		Keywords:      keywords,
		ExistingLinks: links,
		WordCount:     len(strings.Fields(text)),
	}
}

// mdText strips markdown syntax down to plain prose for word counting.
func mdText(content string) string {
	text := mdHeadingRe.ReplaceAllString(content, "$2")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = strings.NewReplacer("**", "", "*", "", "`", "", ">", "").Replace(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
