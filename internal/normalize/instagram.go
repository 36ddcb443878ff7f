package normalize

import "github.com/voyo-music/canonizer/internal/models"

// canonizeInstagram maps a siphon Instagram drop. These files carry neither
// an extractor marker nor TikTok stats, so they are the detection fallback.
func canonizeInstagram(doc RawDocument, opts Options) (*models.Moment, string, error) {
	sourceID := doc.firstStr("shortcode", "code")
	if sourceID == "" {
		sourceID = idString(doc["post_id"])
	}
	if sourceID == "" {
		sourceID = idString(doc["id"])
	}
	if sourceID == "" {
		return nil, "", &ParseError{File: opts.File, Message: "instagram record has empty shortcode and post id"}
	}

	username := doc.str("username")
	fullName := doc.str("full_name")
	if owner := doc.sub("owner"); owner != nil {
		if username == "" {
			username = owner.str("username")
		}
		if fullName == "" {
			fullName = owner.str("full_name")
		}
	}

	// Creator bio feeds classification only; it is never stored on the row.
	bio := ""
	if user := doc.sub("user"); user != nil {
		bio = user.str("biography")
	}
	if bio == "" {
		if owner := doc.sub("owner"); owner != nil {
			bio = owner.str("biography")
		}
	}

	caption := doc.str("caption")
	title := caption
	if title == "" {
		name := username
		if name == "" {
			name = "unknown"
		}
		title = "Video by " + name
	}

	duration := doc.intVal("video_duration")
	if duration <= 0 {
		duration = defaultDurationSeconds
	}

	views := doc.intVal("video_view_count")
	if views == 0 {
		views = doc.intVal("view_count")
	}

	sourceURL := doc.str("url")
	if sourceURL == "" {
		sourceURL = constructedURL(models.PlatformInstagram, sourceID, username)
	}

	moment := &models.Moment{
		SourcePlatform:  models.PlatformInstagram,
		SourceID:        sourceID,
		SourceURL:       sourceURL,
		Title:           title,
		Description:     caption,
		CreatorUsername: username,
		CreatorName:     fullName,
		ThumbnailURL:    doc.firstStr("display_url", "thumbnail_url"),
		DurationSeconds: duration,
		ViewCount:       views,
		LikeCount:       doc.intVal("like_count"),
		ShareCount:      doc.intVal("reshare_count"),
		CommentCount:    doc.intVal("comment_count"),
	}

	text := joinText(caption, bio)
	return moment, text, nil
}
