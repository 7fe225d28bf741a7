package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewActivityLog_Defaults(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 5, 1, 12, 30, 45, 123456789, time.FixedZone("JST", 9*60*60))

	log := NewActivityLog(userID, "login", now)

	if log.ID != uuid.Nil {
		t.Errorf("expected ID to be assigned by the store, got %s", log.ID)
	}
	if log.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, log.UserID)
	}
	if log.Action != "login" {
		t.Errorf("expected action login, got %q", log.Action)
	}
	if log.IsDeleted {
		t.Error("new log should not be deleted")
	}
	if log.CreatedOn.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", log.CreatedOn.Location())
	}
	if log.CreatedOn.Nanosecond() != 123456000 {
		t.Errorf("expected microsecond precision, got %d ns", log.CreatedOn.Nanosecond())
	}
	if !log.CreatedOn.Equal(now.Truncate(time.Microsecond)) {
		t.Errorf("expected %s, got %s", now, log.CreatedOn)
	}
}

func TestNewActivityLog_KeepsActionVerbatim(t *testing.T) {
	log := NewActivityLog(uuid.New(), "  Viewed Page  ", time.Now())

	if log.Action != "  Viewed Page  " {
		t.Errorf("action should not be normalized, got %q", log.Action)
	}

	empty := NewActivityLog(uuid.New(), "", time.Now())
	if empty.Action != "" {
		t.Errorf("empty action should be kept, got %q", empty.Action)
	}
}

func TestActivityLog_MarkDeleted_OneWay(t *testing.T) {
	log := NewActivityLog(uuid.New(), "logout", time.Now())

	if !log.IsActive() {
		t.Fatal("new log should be active")
	}

	log.MarkDeleted()
	if !log.IsDeleted || log.IsActive() {
		t.Error("log should be deleted after MarkDeleted")
	}

	log.MarkDeleted()
	if !log.IsDeleted {
		t.Error("MarkDeleted should be idempotent")
	}
}

func TestReconstructActivityLog_NormalizesToUTC(t *testing.T) {
	id := uuid.New()
	createdOn := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.FixedZone("EST", -5*60*60))

	log := ReconstructActivityLog(id, uuid.New(), "upload", createdOn, true)

	if log.ID != id {
		t.Errorf("expected id %s, got %s", id, log.ID)
	}
	if log.CreatedOn.Location() != time.UTC || !log.CreatedOn.Equal(createdOn) {
		t.Errorf("expected %s in UTC, got %s", createdOn, log.CreatedOn)
	}
	if !log.IsDeleted {
		t.Error("expected deleted flag to be restored")
	}
}
