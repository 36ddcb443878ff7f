package normalize

import (
	"fmt"
	"strings"

	"github.com/voyo-music/canonizer/internal/classify"
	"github.com/voyo-music/canonizer/internal/models"
)

const (
	// maxThumbnailLen guards the varchar(2000) thumbnail column.
	maxThumbnailLen = 2000

	defaultDurationSeconds = 30
)

// Options carries per-tree context into canonization.
type Options struct {
	// File is the source path, used only for error reporting.
	File string
	// PlatformHint is the platform tree the file was found under. yt-dlp
	// records whose extractor is neither YouTube nor TikTok fall back to it;
	// empty means instagram.
	PlatformHint models.Platform
}

// Canonize maps one raw document into a Moment: detect the format once,
// run that format's field mapping, then classify and score.
func Canonize(doc RawDocument, opts Options) (*models.Moment, error) {
	if !doc.has("id") && !doc.has("shortcode") && !doc.has("post_id") {
		return nil, &ParseError{File: opts.File, Message: "no identifying field (id, shortcode or post_id)"}
	}

	var (
		moment *models.Moment
		text   string
		err    error
	)
	switch DetectFormat(doc) {
	case models.FormatYtDlp:
		moment, text, err = canonizeYtDlp(doc, opts)
	case models.FormatTikTokAPI:
		moment, text, err = canonizeTikTok(doc, opts)
	default:
		moment, text, err = canonizeInstagram(doc, opts)
	}
	if err != nil {
		return nil, err
	}

	finalize(moment, text)
	return moment, nil
}

// finalize derives tags, scores and the fixed provenance flags shared by
// every source format.
func finalize(m *models.Moment, text string) {
	m.ContentType = classify.DetectContentType(text)
	m.VibeTags = classify.ExtractHashtags(text)
	m.CulturalTags = classify.DetectCulturalTags(text)
	m.ViralityScore = classify.ViralityScore(m.LikeCount, m.CommentCount, m.ViewCount)
	m.HeatScore = classify.HeatScore(m.ViralityScore)

	m.ThumbnailURL = truncate(m.ThumbnailURL, maxThumbnailLen)

	m.DiscoveredBy = "siphon"
	m.Verified = false
	m.Featured = false
	m.IsActive = true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// joinText concatenates the non-empty classification inputs.
func joinText(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

func constructedURL(platform models.Platform, sourceID, username string) string {
	switch platform {
	case models.PlatformYouTube:
		return "https://www.youtube.com/watch?v=" + sourceID
	case models.PlatformYouTubeShorts:
		return "https://www.youtube.com/shorts/" + sourceID
	case models.PlatformTikTok:
		if username == "" {
			username = "user"
		}
		return fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", username, sourceID)
	default:
		return fmt.Sprintf("https://www.instagram.com/p/%s/", sourceID)
	}
}
