// Package ingest runs the canonizer pipeline: discover siphon drops, parse
// and canonize them, deduplicate, and upsert into the moments catalog.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voyo-music/canonizer/internal/catalog"
	"github.com/voyo-music/canonizer/internal/config"
	"github.com/voyo-music/canonizer/internal/dedupe"
	"github.com/voyo-music/canonizer/internal/discovery"
	"github.com/voyo-music/canonizer/internal/models"
	"github.com/voyo-music/canonizer/internal/normalize"
	"github.com/voyo-music/canonizer/internal/notifications"
	"github.com/voyo-music/canonizer/internal/reports"
)

// Options selects what one run processes.
type Options struct {
	// DryRun skips the write stage and produces a preview report only.
	DryRun bool
	// Limit caps the number of files processed across all platforms;
	// zero means no cap. Applied after aggregation, before parsing.
	Limit int
	// Platforms restricts processing to these source trees; empty means all.
	Platforms []models.Platform
}

// Service orchestrates canonizer runs.
type Service struct {
	config   *config.Config
	store    catalog.Store
	notifier notifications.NotificationInterface
	archive  reports.Store
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds the outcome of the most recent run for the ops surface.
type Metrics struct {
	RunCount        int            `json:"run_count"`
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	FilesScanned    int            `json:"files_scanned"`
	ParseFailures   int            `json:"parse_failures"`
	MomentsPrepared int            `json:"moments_prepared"`
	UpsertSucceeded int            `json:"upsert_succeeded"`
	UpsertFailed    int            `json:"upsert_failed"`
	ByPlatform      map[string]int `json:"by_platform"`
	ByContentType   map[string]int `json:"by_content_type"`
}

// NewService creates a new ingest service. store may be nil when every run
// will be a dry run; notifier and archive are optional.
func NewService(cfg *config.Config, store catalog.Store, notifier notifications.NotificationInterface, archive reports.Store) *Service {
	return &Service{
		config:   cfg,
		store:    store,
		notifier: notifier,
		archive:  archive,
		metrics: &Metrics{
			ByPlatform:    make(map[string]int),
			ByContentType: make(map[string]int),
		},
	}
}

type discoveredFile struct {
	path string
	hint models.Platform
}

// Run executes one pipeline pass: Discovering, Parsing, Classifying and
// deduplicating, then either a dry-run preview or upserting, and finally
// summarizing. Recoverable problems land in the report, never in the error.
func (s *Service) Run(ctx context.Context, opts Options) (*models.RunReport, error) {
	start := time.Now()
	logrus.Info("Starting canonizer run")

	if !opts.DryRun && s.store == nil {
		return nil, fmt.Errorf("catalog store is not configured; use --dry-run or set Supabase credentials")
	}

	if s.store != nil {
		if count, err := s.store.Count(ctx); err != nil {
			logrus.Warnf("Could not read catalog count: %v", err)
		} else {
			logrus.Infof("Catalog currently holds %d moments", count)
		}
	}

	report := &models.RunReport{
		StartedAt:     start.UTC(),
		DryRun:        opts.DryRun,
		ByPlatform:    make(map[string]int),
		ByContentType: make(map[string]int),
		ByCulturalTag: make(map[string]int),
	}

	// Discovering
	files := s.discover(opts.Platforms)
	report.FilesScanned = len(files)
	if opts.Limit > 0 && len(files) > opts.Limit {
		logrus.Infof("Limiting run to %d of %d discovered files", opts.Limit, len(files))
		files = files[:opts.Limit]
		report.FilesScanned = len(files)
	}
	logrus.Infof("Discovered %d metadata files", len(files))

	// Parsing + classifying
	moments := s.parse(files, report)
	report.MomentsPrepared = len(moments)
	logrus.Infof("Prepared %d moments (%d parse failures)", len(moments), len(report.ParseFailures))

	// Deduplicating
	deduped := dedupe.Deduplicate(moments)
	report.DuplicatesDropped = deduped.Dropped
	report.MomentsDeduped = len(deduped.Moments)
	logrus.Infof("Deduplicated to %d moments (%d duplicates dropped)", len(deduped.Moments), deduped.Dropped)

	s.breakdown(deduped.Moments, report)

	// DryRunPreview | Upserting
	if opts.DryRun {
		logrus.Infof("Dry run: skipping upsert of %d moments", len(deduped.Moments))
	} else {
		writer := catalog.NewWriter(s.store, s.config.BatchSize, catalog.DefaultRetryPolicy)
		result, err := writer.Write(ctx, deduped.Moments)
		if result != nil {
			report.UpsertSucceeded = result.Succeeded
			report.UpsertFailed = result.Failed
			report.FailedRecords = result.FailedRecords
		}
		if err != nil {
			return report, fmt.Errorf("upsert interrupted: %w", err)
		}
		logrus.Infof("Upsert complete: %s", result.Describe())
	}

	// Summarizing
	report.Duration = time.Since(start).String()
	s.updateMetrics(report)
	s.archiveReport(report)
	s.notify(report)

	logrus.Infof("Canonizer run completed in %v", time.Since(start))
	return report, nil
}

func (s *Service) discover(platforms []models.Platform) []discoveredFile {
	if len(platforms) == 0 {
		platforms = models.SourceTrees
	}

	var files []discoveredFile
	for _, platform := range platforms {
		root := s.config.PlatformDir(string(platform))
		paths, err := discovery.Discover(root)
		if err != nil {
			logrus.Warnf("Discovery failed for %s tree: %v", platform, err)
			continue
		}
		logrus.Infof("Found %d metadata files under %s", len(paths), root)
		for _, path := range paths {
			files = append(files, discoveredFile{path: path, hint: platform})
		}
	}
	return files
}

func (s *Service) parse(files []discoveredFile, report *models.RunReport) []models.Moment {
	var moments []models.Moment
	for _, file := range files {
		doc, err := normalize.ParseFile(file.path)
		if err != nil {
			report.ParseFailures = append(report.ParseFailures, failureFor(file.path, err))
			continue
		}

		moment, err := normalize.Canonize(doc, normalize.Options{File: file.path, PlatformHint: file.hint})
		if err != nil {
			report.ParseFailures = append(report.ParseFailures, failureFor(file.path, err))
			continue
		}
		moments = append(moments, *moment)
	}
	return moments
}

func failureFor(path string, err error) models.ParseFailure {
	if parseErr, ok := err.(*normalize.ParseError); ok {
		return models.ParseFailure{File: parseErr.File, Message: parseErr.Message}
	}
	return models.ParseFailure{File: path, Message: err.Error()}
}

func (s *Service) breakdown(moments []models.Moment, report *models.RunReport) {
	for _, m := range moments {
		report.ByPlatform[string(m.SourcePlatform)]++
		report.ByContentType[m.ContentType]++
		for _, tag := range m.CulturalTags {
			report.ByCulturalTag[tag]++
		}
	}

	top := make([]models.Moment, len(moments))
	copy(top, moments)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ViralityScore > top[j].ViralityScore
	})
	if len(top) > 10 {
		top = top[:10]
	}
	report.TopByVirality = top
}

func (s *Service) archiveReport(report *models.RunReport) {
	if s.archive == nil {
		return
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logrus.Errorf("Failed to marshal run report: %v", err)
		return
	}

	filename := fmt.Sprintf("canonize-run-%s.json", report.StartedAt.Format("2006-01-02-15-04-05"))
	if err := s.archive.Store(filename, data); err != nil {
		logrus.Errorf("Failed to archive run report: %v", err)
	}
}

func (s *Service) notify(report *models.RunReport) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendReport(report); err != nil {
		logrus.Errorf("Failed to send run notification: %v", err)
	}
}

func (s *Service) updateMetrics(report *models.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.RunCount++
	s.metrics.LastRun = report.StartedAt
	s.metrics.LastRunDuration = report.Duration
	s.metrics.FilesScanned = report.FilesScanned
	s.metrics.ParseFailures = len(report.ParseFailures)
	s.metrics.MomentsPrepared = report.MomentsDeduped
	s.metrics.UpsertSucceeded = report.UpsertSucceeded
	s.metrics.UpsertFailed = report.UpsertFailed

	s.metrics.ByPlatform = make(map[string]int)
	for platform, count := range report.ByPlatform {
		s.metrics.ByPlatform[platform] = count
	}
	s.metrics.ByContentType = make(map[string]int)
	for contentType, count := range report.ByContentType {
		s.metrics.ByContentType[contentType] = count
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
