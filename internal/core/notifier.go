package core

import (
	"github.com/petdirectory/api/internal/activity"
	"github.com/petdirectory/api/internal/models"
	"github.com/petdirectory/api/internal/notifier"
)

// NewNotifier builds the notifier for the configured backend.
func NewNotifier(config models.NotifierConfiguration) notifier.INotifier {
	if config.Type == "smtp" {
		return notifier.NewSMTPNotifier(*config.SMTP)
	}
	return notifier.NewFilesystemNotifier(*config.Filesystem)
}

// NewActivityLogger builds the audit trail client.
func NewActivityLogger(config models.ActivityConfiguration) activity.IActivityLogger {
	return activity.NewFilesystemClient(config)
}
