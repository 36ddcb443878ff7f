package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/voyo-music/canonizer/internal/config"
	"github.com/voyo-music/canonizer/internal/ingest"
)

// Service schedules canonizer runs in serve mode.
type Service struct {
	config        *config.Config
	ingestService *ingest.Service
	cron          *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, ingestService *ingest.Service) *Service {
	return &Service{
		config:        cfg,
		ingestService: ingestService,
		cron:          cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled ingest runs
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.IngestSchedule {
	case "hourly":
		cronExpression = "0 0 * * * *"
	default:
		// Run daily at 6 AM UTC, after the overnight siphon sweep
		cronExpression = "0 0 6 * * *"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled canonizer run")
		if _, err := s.ingestService.Run(context.Background(), ingest.Options{}); err != nil {
			logrus.Errorf("Scheduled canonizer run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s ingest schedule", s.config.IngestSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
