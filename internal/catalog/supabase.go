package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/voyo-music/canonizer/internal/models"
)

// conflictColumns is the composite natural key the moments table is keyed on.
const conflictColumns = "source_platform,source_id"

// SupabaseStore talks to the moments table through the Supabase REST API.
type SupabaseStore struct {
	client      *resty.Client
	baseURL     string
	anonKey     string
	accessToken string
	table       string
}

// Ensure SupabaseStore implements Store
var _ Store = (*SupabaseStore)(nil)

// NewSupabaseStore creates a catalog store for one Supabase project.
// The timeout applies to every request; there is no implicit default.
func NewSupabaseStore(baseURL, anonKey, table string, timeout time.Duration) (*SupabaseStore, error) {
	if baseURL == "" || anonKey == "" {
		return nil, fmt.Errorf("supabase URL and anon key are required")
	}

	return &SupabaseStore{
		client:  resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		table:   table,
	}, nil
}

// SetAccessToken switches requests from the anon key to an authenticated
// session token obtained through the auth bridge.
func (s *SupabaseStore) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *SupabaseStore) bearer() string {
	if s.accessToken != "" {
		return s.accessToken
	}
	return s.anonKey
}

func (s *SupabaseStore) tableURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
}

// UpsertBatch writes a batch of moments in one call, overwriting rows that
// collide on the natural key.
func (s *SupabaseStore) UpsertBatch(ctx context.Context, moments []models.Moment) error {
	if len(moments) == 0 {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("apikey", s.anonKey).
		SetHeader("Authorization", "Bearer "+s.bearer()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetQueryParam("on_conflict", conflictColumns).
		SetBody(moments).
		Post(s.tableURL())

	if err != nil {
		return fmt.Errorf("upsert request failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("upsert returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}

// UpsertOne writes a single moment; used by the per-record fallback pass.
func (s *SupabaseStore) UpsertOne(ctx context.Context, moment models.Moment) error {
	return s.UpsertBatch(ctx, []models.Moment{moment})
}

// Count returns the exact number of rows in the moments table.
func (s *SupabaseStore) Count(ctx context.Context) (int, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("apikey", s.anonKey).
		SetHeader("Authorization", "Bearer "+s.bearer()).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "source_id").
		SetQueryParam("limit", "1").
		Get(s.tableURL())

	if err != nil {
		return 0, fmt.Errorf("count request failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return 0, fmt.Errorf("count returned status %d", resp.StatusCode())
	}

	// PostgREST reports the total after the slash in Content-Range, e.g. "0-0/1234".
	contentRange := resp.Header().Get("Content-Range")
	parts := strings.Split(contentRange, "/")
	if len(parts) != 2 || parts[1] == "*" {
		logrus.Debugf("Unparseable Content-Range %q from catalog", contentRange)
		return 0, nil
	}
	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, nil
	}
	return total, nil
}
