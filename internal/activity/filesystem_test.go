package activity

import (
	"strconv"
	"testing"
	"time"

	"github.com/petdirectory/api/internal/models"
)

func newTestFilesystemClient(t *testing.T) *FilesystemClient {
	t.Helper()
	config := models.ActivityConfiguration{
		Type: "filesystem",
		Filesystem: &models.FilesystemActivityConfiguration{
			Directory: t.TempDir(),
		},
	}
	client := NewFilesystemClient(config)
	t.Cleanup(func() { _ = client.Close() })
	return client.(*FilesystemClient)
}

func sendTestActivity(
	t *testing.T, client *FilesystemClient,
	action, objectType, userID, businessID, message string, ts time.Time,
) {
	t.Helper()
	err := client.Send(models.Activity{
		Message: message,
		Filter: models.LogFilter{
			Fields: map[string]string{
				"action":      action,
				"object_type": objectType,
				"user_id":     userID,
				"email":       "owner@example.com",
				"business_id": businessID,
			},
			Timestamp: strconv.FormatInt(ts.UnixNano(), 10),
		},
		Object: map[string]any{"name": "Happy Paws"},
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
}

func TestFilesystemSendAndSearch(t *testing.T) {
	client := newTestFilesystemClient(t)

	now := time.Now()
	sendTestActivity(
		t, client, BusinessCreated, "business", "user-1", "business-1", "Created business", now,
	)

	results, err := client.Search(map[string][]string{
		"action": {BusinessCreated},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r["action"] != BusinessCreated {
		t.Errorf("expected action=%s, got %v", BusinessCreated, r["action"])
	}
	if r["object_type"] != "business" {
		t.Errorf("expected object_type=business, got %v", r["object_type"])
	}
	if r["user_id"] != "user-1" {
		t.Errorf("expected user_id=user-1, got %v", r["user_id"])
	}
	if r["business_id"] != "business-1" {
		t.Errorf("expected business_id=business-1, got %v", r["business_id"])
	}
	if r["message"] != "Created business" {
		t.Errorf("expected message='Created business', got %v", r["message"])
	}

	object, ok := r["object"].(map[string]any)
	if !ok {
		t.Fatal("expected object to round-trip as a map")
	}
	if object["name"] != "Happy Paws" {
		t.Errorf("expected object name='Happy Paws', got %v", object["name"])
	}
}

func TestFilesystemSearch_FiltersByCriteria(t *testing.T) {
	client := newTestFilesystemClient(t)

	now := time.Now()
	sendTestActivity(t, client, UserLoggedIn, "user", "user-1", "", "User logged in", now)
	sendTestActivity(t, client, UserLoggedIn, "user", "user-2", "", "User logged in", now)
	sendTestActivity(t, client, PetCreated, "pet", "user-1", "", "Created pet", now)

	results, err := client.Search(map[string][]string{
		"action":  {UserLoggedIn},
		"user_id": {"user-1"},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0]["user_id"] != "user-1" {
		t.Errorf("expected user_id=user-1, got %v", results[0]["user_id"])
	}
}

func TestFilesystemSearch_ExcludesOldEntries(t *testing.T) {
	client := newTestFilesystemClient(t)

	now := time.Now()
	sendTestActivity(t, client, UserLoggedIn, "user", "user-1", "", "Recent login", now)
	sendTestActivity(
		t, client, UserLoggedIn, "user", "user-1", "", "Ancient login", now.AddDate(0, 0, -45),
	)

	results, err := client.Search(map[string][]string{
		"action": {UserLoggedIn},
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected only the recent entry, got %d results", len(results))
	}
	if results[0]["message"] != "Recent login" {
		t.Errorf("expected the recent entry, got %v", results[0]["message"])
	}
}

func TestFilesystemCountByDay(t *testing.T) {
	client := newTestFilesystemClient(t)

	now := time.Now()
	sendTestActivity(t, client, UserLoggedIn, "user", "user-1", "", "Login today", now.Add(-time.Hour))
	sendTestActivity(t, client, UserLoggedIn, "user", "user-2", "", "Login today", now.Add(-2*time.Hour))
	sendTestActivity(t, client, PetCreated, "pet", "user-1", "", "Created pet", now.Add(-time.Hour))

	points, err := client.CountByDay(map[string][]string{"action": {UserLoggedIn}}, 7)
	if err != nil {
		t.Fatalf("CountByDay failed: %v", err)
	}

	var total int64
	for _, p := range points {
		total += p.Count
		if p.Date == "" {
			t.Error("expected every point to carry a date")
		}
	}
	if total != 2 {
		t.Errorf("expected 2 counted logins, got %d", total)
	}
}
