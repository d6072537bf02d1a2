// Package extractor turns a directory tree of content pages into
// structured model.Page records: title, meta description, headings,
// internal links, detected topic keywords, and word count. It is the
// sole producer of page data for the clustering and internal linking
// stages.
package extractor
