package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voyo-music/canonizer/internal/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		doc      RawDocument
		expected models.SourceFormat
	}{
		{
			name:     "extractor marker wins",
			doc:      RawDocument{"extractor": "youtube", "id": "abc"},
			expected: models.FormatYtDlp,
		},
		{
			name:     "extractor_key marker wins",
			doc:      RawDocument{"extractor_key": "TikTok", "id": "abc"},
			expected: models.FormatYtDlp,
		},
		{
			name: "extractor beats tiktok shape",
			doc: RawDocument{
				"extractor": "tiktok",
				"stats":     map[string]interface{}{"playCount": float64(10)},
				"author":    map[string]interface{}{"uniqueId": "user"},
			},
			expected: models.FormatYtDlp,
		},
		{
			name: "stats playCount with author",
			doc: RawDocument{
				"id":     "123",
				"stats":  map[string]interface{}{"playCount": float64(10)},
				"author": map[string]interface{}{"uniqueId": "user"},
			},
			expected: models.FormatTikTokAPI,
		},
		{
			name: "stats diggCount with author",
			doc: RawDocument{
				"id":     "123",
				"stats":  map[string]interface{}{"diggCount": float64(5)},
				"author": map[string]interface{}{"uniqueId": "user"},
			},
			expected: models.FormatTikTokAPI,
		},
		{
			name: "stats without author falls through",
			doc: RawDocument{
				"id":    "123",
				"stats": map[string]interface{}{"playCount": float64(10)},
			},
			expected: models.FormatSiphonInstagram,
		},
		{
			name: "author without counter keys falls through",
			doc: RawDocument{
				"id":     "123",
				"stats":  map[string]interface{}{"shareCount": float64(2)},
				"author": map[string]interface{}{"uniqueId": "user"},
			},
			expected: models.FormatSiphonInstagram,
		},
		{
			name:     "instagram shortcode document",
			doc:      RawDocument{"shortcode": "CxYz", "caption": "hello"},
			expected: models.FormatSiphonInstagram,
		},
		{
			name:     "empty document defaults to instagram",
			doc:      RawDocument{},
			expected: models.FormatSiphonInstagram,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.doc))
		})
	}
}
