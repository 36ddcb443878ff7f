package normalize

import "github.com/voyo-music/canonizer/internal/models"

// DetectFormat decides which scraper wrote a document. Precedence is fixed:
// any extractor marker means yt-dlp; otherwise a stats object carrying
// playCount or diggCount together with an author object means the TikTok
// API; everything else is a siphon Instagram drop.
func DetectFormat(doc RawDocument) models.SourceFormat {
	if doc.has("extractor") || doc.has("extractor_key") {
		return models.FormatYtDlp
	}

	if stats := doc.sub("stats"); stats != nil {
		if (stats.has("playCount") || stats.has("diggCount")) && doc.sub("author") != nil {
			return models.FormatTikTokAPI
		}
	}

	return models.FormatSiphonInstagram
}
