package models

import "time"

// Platform identifies where a moment was originally published.
type Platform string

const (
	PlatformInstagram     Platform = "instagram"
	PlatformTikTok        Platform = "tiktok"
	PlatformYouTube       Platform = "youtube"
	PlatformYouTubeShorts Platform = "youtube_shorts"
)

// SourceTrees lists the platform directory trees the siphon writes into.
// youtube_shorts is derived during normalization, never a tree of its own.
var SourceTrees = []Platform{PlatformInstagram, PlatformTikTok, PlatformYouTube}

// ParsePlatform maps a platform-tree name onto a Platform. Unrecognized
// names return false and are silently dropped by callers.
func ParsePlatform(name string) (Platform, bool) {
	switch Platform(name) {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube:
		return Platform(name), true
	}
	return "", false
}

// SourceFormat tags which scraper produced a raw metadata file. Detection
// happens exactly once, at ingestion; everything downstream switches on the tag.
type SourceFormat int

const (
	FormatYtDlp SourceFormat = iota
	FormatTikTokAPI
	FormatSiphonInstagram
)

func (f SourceFormat) String() string {
	switch f {
	case FormatYtDlp:
		return "yt-dlp"
	case FormatTikTokAPI:
		return "tiktok-api"
	case FormatSiphonInstagram:
		return "siphon-instagram"
	}
	return "unknown"
}

// Moment is one canonicalized short-video record, shaped to match the
// moments table columns in Supabase.
type Moment struct {
	SourcePlatform  Platform `json:"source_platform"`
	SourceID        string   `json:"source_id"`
	SourceURL       string   `json:"source_url"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CreatorUsername string   `json:"creator_username"`
	CreatorName     string   `json:"creator_name"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	DurationSeconds int      `json:"duration_seconds"`
	ViewCount       int      `json:"view_count"`
	LikeCount       int      `json:"like_count"`
	ShareCount      int      `json:"share_count"`
	CommentCount    int      `json:"comment_count"`
	ContentType     string   `json:"content_type"`
	VibeTags        []string `json:"vibe_tags"`
	CulturalTags    []string `json:"cultural_tags"`
	ViralityScore   int      `json:"virality_score"`
	HeatScore       int      `json:"heat_score"`
	DiscoveredBy    string   `json:"discovered_by"`
	Verified        bool     `json:"verified"`
	Featured        bool     `json:"featured"`
	IsActive        bool     `json:"is_active"`
}

// NaturalKey is the (platform, source id) pair used for deduplication and
// upsert conflict resolution.
type NaturalKey struct {
	Platform Platform
	SourceID string
}

// Key returns the moment's natural key.
func (m *Moment) Key() NaturalKey {
	return NaturalKey{Platform: m.SourcePlatform, SourceID: m.SourceID}
}

// ParseFailure records one metadata file that could not be canonized.
type ParseFailure struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// RecordFailure records one moment rejected by the catalog during the
// per-record fallback pass.
type RecordFailure struct {
	Platform Platform `json:"platform"`
	SourceID string   `json:"source_id"`
	Message  string   `json:"message"`
}

// RunReport is the summary of a single canonizer run.
type RunReport struct {
	StartedAt         time.Time       `json:"started_at"`
	Duration          string          `json:"duration"`
	DryRun            bool            `json:"dry_run"`
	FilesScanned      int             `json:"files_scanned"`
	ParseFailures     []ParseFailure  `json:"parse_failures,omitempty"`
	MomentsPrepared   int             `json:"moments_prepared"`
	DuplicatesDropped int             `json:"duplicates_dropped"`
	MomentsDeduped    int             `json:"moments_deduped"`
	UpsertSucceeded   int             `json:"upsert_succeeded"`
	UpsertFailed      int             `json:"upsert_failed"`
	FailedRecords     []RecordFailure `json:"failed_records,omitempty"`
	ByPlatform        map[string]int  `json:"by_platform"`
	ByContentType     map[string]int  `json:"by_content_type"`
	ByCulturalTag     map[string]int  `json:"by_cultural_tag"`
	TopByVirality     []Moment        `json:"top_by_virality,omitempty"`
}
