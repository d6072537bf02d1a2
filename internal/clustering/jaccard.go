package clustering

import "strings"

// Tokenize splits text into a lowercased word set for similarity
// comparison.
func Tokenize(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}

// Jaccard computes the Jaccard similarity of two word sets:
// |intersection| / |union|. Two empty sets are defined as similarity 0.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// JaccardText tokenizes both texts and computes their similarity.
func JaccardText(a, b string) float64 {
	return Jaccard(Tokenize(a), Tokenize(b))
}
