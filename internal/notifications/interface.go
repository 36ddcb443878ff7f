package notifications

import "github.com/voyo-music/canonizer/internal/models"

// NotificationInterface defines the contract for post-run notifications
type NotificationInterface interface {
	SendReport(report *models.RunReport) error
}
