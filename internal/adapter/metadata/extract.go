// Package metadata derives document metadata (title, domain tags,
// document type, year) from the partitioner's element sequence.
package metadata

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docrag/internal/domain"
)

// DomainKeywords maps one domain tag to its keyword list. Table order
// matters: it breaks ties between equally scored tags.
type DomainKeywords struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Title returns the text of the first title-like element, or fallback
// (typically the source filename) when none exists.
func Title(elements []domain.Element, fallback string) string {
	for _, el := range elements {
		typ := strings.ToLower(el.Type)
		text := strings.TrimSpace(el.Text)
		if (typ == "title" || typ == "header") && text != "" {
			return text
		}
	}
	return fallback
}

// FullText assembles the document's full text: every element's trimmed
// non-empty text, in element order, joined by a blank line.
func FullText(elements []domain.Element) string {
	var parts []string
	for _, el := range elements {
		if text := strings.TrimSpace(el.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// DomainTags scores each domain in the table by keyword occurrence
// count (case-insensitive, overlapping hits counted) and returns up to
// the top three tags with a positive score, ordered by descending score.
// Ties keep table order.
func DomainTags(text string, table []DomainKeywords) []string {
	t := strings.ToLower(text)

	type scored struct {
		tag   string
		score int
	}
	var hits []scored
	for _, dk := range table {
		score := 0
		for _, kw := range dk.Keywords {
			score += countOccurrences(t, strings.ToLower(kw))
		}
		if score > 0 {
			hits = append(hits, scored{tag: dk.Tag, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > 3 {
		hits = hits[:3]
	}
	tags := make([]string, 0, len(hits))
	for _, h := range hits {
		tags = append(tags, h.tag)
	}
	return tags
}

// docTypeChecks is the phrase priority list for DocType: the first
// matching entry wins.
var docTypeChecks = []struct {
	docType string
	phrases []string
}{
	{"briefing", []string{"briefing note", "briefing"}},
	{"technical_analysis", []string{"technical assessment", "technical analysis"}},
	{"research", []string{"research objectives", "literature review", "methodology"}},
	{"report", []string{"report", "executive summary"}},
}

// DocType classifies the document. The file extension is checked first
// (presentation formats decide immediately), then the phrase priority
// list; with no match the sentinel "other" is returned.
func DocType(text, path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppt", ".pptx":
		return "presentation"
	}

	t := strings.ToLower(text)
	for _, check := range docTypeChecks {
		for _, phrase := range check.phrases {
			if strings.Contains(t, phrase) {
				return check.docType
			}
		}
	}
	return "other"
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Year returns the largest 4-digit year in the 1900-2099 range found in
// the text. Picking the maximum (rather than the first occurrence)
// favours the most recent date when a document cites older material.
// The second return is false when the text holds no year at all.
func Year(text string) (int, bool) {
	best := 0
	for _, m := range yearPattern.FindAllString(text, -1) {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if y > best {
			best = y
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

// countOccurrences counts occurrences of sub in s, including
// overlapping ones.
func countOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	count := 0
	for i := 0; i+len(sub) <= len(s); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			break
		}
		count++
		i += j + 1
	}
	return count
}
