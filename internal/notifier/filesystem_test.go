package notifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petdirectory/api/internal/models"
)

func newTestFilesystemNotifier(t *testing.T) (*FilesystemNotifier, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "notifications")
	config := models.FilesystemNotifierConfiguration{
		Directory: dir,
	}
	n := NewFilesystemNotifier(config)
	return n, dir
}

func TestFilesystemNotifyFromTemplate_RecordsRenderedBody(t *testing.T) {
	n, dir := newTestFilesystemNotifier(t)

	data := map[string]string{
		"Name":  "New User",
		"Email": "user@example.com",
	}

	err := n.NotifyFromTemplate("user@example.com", "Welcome to the pet directory", "welcome", data)
	if err != nil {
		t.Fatalf("NotifyFromTemplate failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	var record notificationRecord
	if err = json.Unmarshal(content, &record); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	if record.To != "user@example.com" {
		t.Errorf("expected to=user@example.com, got %v", record.To)
	}
	if record.Subject != "Welcome to the pet directory" {
		t.Errorf("expected subject='Welcome to the pet directory', got %v", record.Subject)
	}
	if record.Template != "welcome" {
		t.Errorf("expected template=welcome, got %v", record.Template)
	}
	if !strings.Contains(record.Body, "Hi New User,") {
		t.Errorf("expected body to greet the user, got %q", record.Body)
	}
	if !strings.Contains(record.Body, "user@example.com") {
		t.Errorf("expected body to mention the sign-in email, got %q", record.Body)
	}
	if record.CreatedAt.IsZero() {
		t.Error("expected non-zero created_at")
	}
}

func TestFilesystemNotifyFromTemplate_UnknownTemplate(t *testing.T) {
	n, dir := newTestFilesystemNotifier(t)

	err := n.NotifyFromTemplate("user@example.com", "Subject", "nonexistent", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown template")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("failed to read directory: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files for a failed notification, got %d", len(entries))
	}
}

func TestFilesystemNotifyFromTemplate_MultipleNotifications(t *testing.T) {
	n, dir := newTestFilesystemNotifier(t)

	data := map[string]string{"Name": "New User", "Email": "user@example.com"}

	for i := range 3 {
		err := n.NotifyFromTemplate("user@example.com", "Welcome to the pet directory", "welcome", data)
		if err != nil {
			t.Fatalf("NotifyFromTemplate %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read directory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 files, got %d", len(entries))
	}
}
