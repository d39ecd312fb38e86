package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/petdirectory/api/internal/models"

	"go.uber.org/zap"
)

// notificationRecord is the on-disk shape of a delivered notification.
// Body holds the rendered template output, so the file shows the exact
// text an SMTP backend would have mailed.
type notificationRecord struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Template  string    `json:"template"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type FilesystemNotifier struct {
	directory string
	sequence  atomic.Uint64
}

func NewFilesystemNotifier(config models.FilesystemNotifierConfiguration) *FilesystemNotifier {
	if err := os.MkdirAll(config.Directory, 0750); err != nil {
		zap.L().Fatal("Failed to create notification directory", zap.Error(err))
	}
	return &FilesystemNotifier{directory: config.Directory}
}

func (f *FilesystemNotifier) NotifyFromTemplate(
	to string,
	subject string,
	templateName string,
	data any,
) error {
	body, err := renderTemplate(templateName, data)
	if err != nil {
		return err
	}

	record := notificationRecord{
		To:        to,
		Subject:   subject,
		Template:  templateName,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	content, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// Sequence suffix keeps filenames unique when two notifications
	// land in the same nanosecond.
	filename := fmt.Sprintf("%d-%d.json", record.CreatedAt.UnixNano(), f.sequence.Add(1))
	path := filepath.Join(f.directory, filename)

	if err = os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write notification file: %w", err)
	}

	zap.L().Info("Notification written to filesystem",
		zap.String("path", path),
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}
