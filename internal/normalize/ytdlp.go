package normalize

import (
	"strings"

	"github.com/voyo-music/canonizer/internal/models"
)

// canonizeYtDlp maps a yt-dlp .info.json document. yt-dlp runs against
// several extractors, so the platform comes from the extractor string, with
// the directory tree as the fallback hint.
func canonizeYtDlp(doc RawDocument, opts Options) (*models.Moment, string, error) {
	sourceID := idString(doc["id"])
	if sourceID == "" {
		sourceID = doc.firstStr("shortcode", "post_id")
	}
	if sourceID == "" {
		return nil, "", &ParseError{File: opts.File, Message: "yt-dlp record has empty id"}
	}

	duration := doc.intVal("duration")
	if duration <= 0 {
		duration = defaultDurationSeconds
	}

	platform := ytDlpPlatform(doc, duration, opts.PlatformHint)

	channel := doc.firstStr("channel", "uploader")
	title := doc.firstStr("title", "fulltitle")
	if title == "" {
		name := channel
		if name == "" {
			name = "unknown"
		}
		title = "Video by " + name
	}

	sourceURL := doc.firstStr("webpage_url", "original_url")
	if sourceURL == "" {
		sourceURL = constructedURL(platform, sourceID, doc.str("uploader_id"))
	}

	moment := &models.Moment{
		SourcePlatform:  platform,
		SourceID:        sourceID,
		SourceURL:       sourceURL,
		Title:           title,
		Description:     doc.str("description"),
		CreatorUsername: doc.firstStr("uploader_id", "channel_id", "uploader"),
		CreatorName:     channel,
		ThumbnailURL:    doc.str("thumbnail"),
		DurationSeconds: duration,
		ViewCount:       doc.intVal("view_count"),
		LikeCount:       doc.intVal("like_count"),
		ShareCount:      doc.intVal("repost_count"),
		CommentCount:    doc.intVal("comment_count"),
	}

	text := joinText(title, doc.str("description"), doc.str("track"), doc.str("artist"))
	return moment, text, nil
}

func ytDlpPlatform(doc RawDocument, duration int, hint models.Platform) models.Platform {
	extractor := strings.ToLower(doc.firstStr("extractor", "extractor_key"))
	switch {
	case strings.Contains(extractor, "youtube"):
		if duration <= 60 {
			return models.PlatformYouTubeShorts
		}
		return models.PlatformYouTube
	case strings.Contains(extractor, "tiktok"):
		return models.PlatformTikTok
	}
	if hint != "" {
		return hint
	}
	return models.PlatformInstagram
}
