// Package classify derives content types, tags and scores from normalized
// moment text and engagement counters.
package classify

import (
	"regexp"
	"strings"
)

// hashtagPattern matches # followed by word characters or the extended
// Latin range, so tags like #beyoncé survive extraction.
var hashtagPattern = regexp.MustCompile(`#[\w\x{00C0}-\x{024F}]+`)

// DetectContentType lowercases text and returns the type of the first rule
// with any keyword hit, in fixed priority order. Empty or unmatched text
// falls back to "original".
func DetectContentType(text string) string {
	if text == "" {
		return ContentTypeOriginal
	}
	lower := strings.ToLower(text)
	for _, rule := range contentTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.contentType
			}
		}
	}
	return ContentTypeOriginal
}

// ExtractHashtags returns the lowercased hashtags found in text, deduplicated
// in order of first appearance.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var tags []string
	for _, match := range matches {
		tag := strings.ToLower(match)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// DetectCulturalTags scans the lowercased text against every tag group and
// collects the full tag set of each group with at least one keyword hit.
func DetectCulturalTags(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var tags []string
	for _, group := range culturalTagGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				for _, tag := range group.tags {
					if !seen[tag] {
						seen[tag] = true
						tags = append(tags, tag)
					}
				}
				break // one hit per group is enough
			}
		}
	}
	return tags
}
