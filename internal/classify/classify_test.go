package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Dance rule outranks tutorial rule",
			text:     "Learn to dance: a tutorial",
			expected: "dance",
		},
		{
			name:     "Comedy skit",
			text:     "Funniest SKIT of the year",
			expected: "comedy",
		},
		{
			name:     "Tutorial without earlier matches",
			text:     "How to make gele - full lesson",
			expected: "tutorial",
		},
		{
			name:     "Empty text falls back to original",
			text:     "",
			expected: ContentTypeOriginal,
		},
		{
			name:     "No rule matches",
			text:     "untitled clip 0042",
			expected: ContentTypeOriginal,
		},
		{
			name:     "Case insensitive matching",
			text:     "CHOREO by the crew",
			expected: "dance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectContentType(tt.text))
		})
	}
}

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Case folded and deduplicated in first-appearance order",
			text:     "Great #Dance video #AFROBEAT! #dance",
			expected: []string{"#dance", "#afrobeat"},
		},
		{
			name:     "No hashtags",
			text:     "just a caption",
			expected: nil,
		},
		{
			name:     "Extended Latin characters survive",
			text:     "#beyoncé forever",
			expected: []string{"#beyoncé"},
		},
		{
			name:     "Underscores and digits",
			text:     "#detty_december #top10",
			expected: []string{"#detty_december", "#top10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHashtags(tt.text))
		})
	}
}

func TestDetectCulturalTags(t *testing.T) {
	t.Run("Multiple groups can fire for one text", func(t *testing.T) {
		tags := DetectCulturalTags("Amapiano hits different in Lagos")

		assert.Contains(t, tags, "south africa")
		assert.Contains(t, tags, "mzansi")
		assert.Contains(t, tags, "nigeria")
		assert.Contains(t, tags, "naija")
	})

	t.Run("Single keyword adds the whole group", func(t *testing.T) {
		tags := DetectCulturalTags("new gengetone banger")

		assert.Equal(t, []string{"kenya"}, tags)
	})

	t.Run("Repeated keywords do not duplicate tags", func(t *testing.T) {
		tags := DetectCulturalTags("naija naija lagos nigeria")

		assert.Equal(t, []string{"nigeria", "naija"}, tags)
	})

	t.Run("No keyword hits", func(t *testing.T) {
		assert.Empty(t, DetectCulturalTags("plain caption with nothing"))
	})
}
