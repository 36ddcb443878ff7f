package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyo-music/canonizer/internal/config"
	"github.com/voyo-music/canonizer/internal/models"
)

func sampleReport() *models.RunReport {
	return &models.RunReport{
		StartedAt:       time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC),
		Duration:        "4.5s",
		FilesScanned:    120,
		MomentsPrepared: 115,
		UpsertSucceeded: 114,
		UpsertFailed:    1,
		FailedRecords: []models.RecordFailure{
			{Platform: models.PlatformTikTok, SourceID: "999", Message: "row violates check constraint"},
		},
	}
}

func TestSendReportWebhook(t *testing.T) {
	var received webhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewService(&config.Config{WebhookURL: server.URL})
	require.NoError(t, service.SendReport(sampleReport()))

	assert.Contains(t, received.Text, "114 moments upserted")
	assert.Contains(t, received.Text, "1 failed")
	assert.Equal(t, "120", received.Fields["files_scanned"])
	assert.Equal(t, "114", received.Fields["upsert_succeeded"])
}

func TestSendReportWebhookDryRunPrefix(t *testing.T) {
	var received webhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	report := sampleReport()
	report.DryRun = true

	service := NewService(&config.Config{WebhookURL: server.URL})
	require.NoError(t, service.SendReport(report))
	assert.Contains(t, received.Text, "[dry run]")
}

func TestSendReportWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewService(&config.Config{WebhookURL: server.URL})
	err := service.SendReport(sampleReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook")
}

func TestSendReportNoChannelsConfigured(t *testing.T) {
	service := NewService(&config.Config{})
	assert.NoError(t, service.SendReport(sampleReport()))
}

func TestBuildEmailHTML(t *testing.T) {
	service := NewService(&config.Config{})

	html, err := service.buildEmailHTML(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, html, "VOYO Canonizer Run")
	assert.Contains(t, html, "<strong>Files scanned:</strong> 120")
	assert.Contains(t, html, "tiktok/999: row violates check constraint")
	assert.NotContains(t, html, "DRY RUN")

	report := sampleReport()
	report.DryRun = true
	html, err = service.buildEmailHTML(report)
	require.NoError(t, err)
	assert.Contains(t, html, "DRY RUN")
}
