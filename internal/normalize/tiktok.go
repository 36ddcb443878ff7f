package normalize

import (
	"strings"

	"github.com/voyo-music/canonizer/internal/models"
)

// canonizeTikTok maps a TikTok API document. Counters live on statsV2 as
// strings on newer captures and on the legacy stats object as numbers;
// statsV2 wins per counter when present.
func canonizeTikTok(doc RawDocument, opts Options) (*models.Moment, string, error) {
	sourceID := idString(doc["id"])
	if sourceID == "" {
		return nil, "", &ParseError{File: opts.File, Message: "tiktok record has empty id"}
	}

	author := doc.sub("author")
	username := author.str("uniqueId")
	nickname := author.str("nickname")

	statsV2 := doc.sub("statsV2")
	stats := doc.sub("stats")
	counter := func(key string) int {
		if statsV2 != nil && statsV2.has(key) {
			return statsV2.intVal(key)
		}
		if stats != nil {
			return stats.intVal(key)
		}
		return 0
	}

	video := doc.sub("video")
	music := doc.sub("music")

	duration := 0
	if video != nil {
		duration = video.intVal("duration")
	}
	if duration <= 0 && music != nil {
		duration = music.intVal("duration")
	}
	if duration <= 0 {
		duration = doc.intVal("duration")
	}
	if duration <= 0 {
		duration = defaultDurationSeconds
	}

	// "original sound" is TikTok's placeholder for an unnamed track; it
	// carries no signal, so it is suppressed entirely.
	musicTitle := ""
	if music != nil {
		musicTitle = music.str("title")
		if isOriginalSound(musicTitle) {
			musicTitle = ""
		}
	}

	desc := doc.str("desc")
	title := desc
	if title == "" {
		name := username
		if name == "" {
			name = "unknown"
		}
		title = "Video by @" + name
	}

	thumbnail := ""
	if video != nil {
		thumbnail = video.firstStr("cover", "originCover", "dynamicCover")
	}

	sourceURL := doc.firstStr("webpage_url", "shareUrl")
	if sourceURL == "" {
		sourceURL = constructedURL(models.PlatformTikTok, sourceID, username)
	}

	moment := &models.Moment{
		SourcePlatform:  models.PlatformTikTok,
		SourceID:        sourceID,
		SourceURL:       sourceURL,
		Title:           title,
		Description:     desc,
		CreatorUsername: username,
		CreatorName:     nickname,
		ThumbnailURL:    thumbnail,
		DurationSeconds: duration,
		ViewCount:       counter("playCount"),
		LikeCount:       counter("diggCount"),
		ShareCount:      counter("shareCount"),
		CommentCount:    counter("commentCount"),
	}

	text := joinText(desc, musicTitle, nickname)
	return moment, text, nil
}

func isOriginalSound(title string) bool {
	return strings.EqualFold(title, "original sound")
}
