package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/voyo-music/canonizer/internal/config"
	"github.com/voyo-music/canonizer/internal/models"
)

// Service sends run summaries via the configured channels.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// webhookMessage is the generic JSON payload posted to WEBHOOK_URL.
type webhookMessage struct {
	Text   string            `json:"text"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport delivers the run report to every configured channel. Channel
// failures are collected; a run is never failed retroactively over them.
func (s *Service) SendReport(report *models.RunReport) error {
	var errors []string

	if s.config.WebhookURL != "" {
		if err := s.sendWebhook(report); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Info("Successfully sent run report to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Info("Successfully sent run report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendWebhook(report *models.RunReport) error {
	message := &webhookMessage{
		Text: fmt.Sprintf("VOYO canonizer run: %d moments upserted, %d failed (scanned %d files in %s)",
			report.UpsertSucceeded, report.UpsertFailed, report.FilesScanned, report.Duration),
		Fields: map[string]string{
			"started_at":         report.StartedAt.Format(time.RFC3339),
			"files_scanned":      fmt.Sprintf("%d", report.FilesScanned),
			"parse_failures":     fmt.Sprintf("%d", len(report.ParseFailures)),
			"moments_prepared":   fmt.Sprintf("%d", report.MomentsPrepared),
			"duplicates_dropped": fmt.Sprintf("%d", report.DuplicatesDropped),
			"upsert_succeeded":   fmt.Sprintf("%d", report.UpsertSucceeded),
			"upsert_failed":      fmt.Sprintf("%d", report.UpsertFailed),
		},
	}
	if report.DryRun {
		message.Text = "[dry run] " + message.Text
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) sendEmail(report *models.RunReport) error {
	subject := fmt.Sprintf("VOYO Canonizer Run - %d moments (%d failed)",
		report.UpsertSucceeded, report.UpsertFailed)
	if report.DryRun {
		subject = "[dry run] " + subject
	}

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.RunReport) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>VOYO Canonizer Run</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #7c3aed; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .failure { border-left: 4px solid #d13438; padding: 10px; margin: 10px 0; background-color: #fafafa; }
    </style>
</head>
<body>
    <div class="header">
        <h1>VOYO Canonizer Run</h1>
        <p>Started {{.StartedAt.Format "January 2, 2006 at 3:04 PM UTC"}} · took {{.Duration}}{{if .DryRun}} · DRY RUN{{end}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Files scanned:</strong> {{.FilesScanned}}</p>
        <p><strong>Parse failures:</strong> {{len .ParseFailures}}</p>
        <p><strong>Moments prepared:</strong> {{.MomentsPrepared}} ({{.DuplicatesDropped}} duplicates dropped)</p>
        <p><strong>Upserted:</strong> {{.UpsertSucceeded}} · <strong>Failed:</strong> {{.UpsertFailed}}</p>
    </div>

    {{if .FailedRecords}}
    <h2>Failed Records</h2>
    {{range .FailedRecords}}
    <div class="failure">{{.Platform}}/{{.SourceID}}: {{.Message}}</div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the VOYO canonizer.</small></p>
</body>
</html>
`

	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}
