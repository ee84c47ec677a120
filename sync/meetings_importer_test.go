// ABOUTME: Tests for calendar event filtering and meeting conversion
// ABOUTME: Covers skip rules, attendee extraction, and dedup via the sync log
package sync

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return database
}

func TestShouldSkipEvent(t *testing.T) {
	tests := []struct {
		name       string
		event      *calendar.Event
		wantSkip   bool
		wantReason string
	}{
		{
			name:       "nil event",
			event:      nil,
			wantSkip:   true,
			wantReason: "nil event",
		},
		{
			name:       "missing start",
			event:      &calendar.Event{},
			wantSkip:   true,
			wantReason: "missing start time",
		},
		{
			name: "all-day event",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{Date: "2026-08-25"},
			},
			wantSkip:   true,
			wantReason: "all-day event",
		},
		{
			name: "cancelled",
			event: &calendar.Event{
				Start:  &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
				Status: "cancelled",
			},
			wantSkip:   true,
			wantReason: "cancelled",
		},
		{
			name: "declined by user",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
				Attendees: []*calendar.EventAttendee{
					{Self: true, ResponseStatus: "declined"},
					{Email: "other@example.com"},
				},
			},
			wantSkip:   true,
			wantReason: "declined",
		},
		{
			name: "solo event",
			event: &calendar.Event{
				Start:     &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
				Attendees: []*calendar.EventAttendee{{Self: true}},
			},
			wantSkip:   true,
			wantReason: "solo event",
		},
		{
			name: "real meeting",
			event: &calendar.Event{
				Start: &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
				Attendees: []*calendar.EventAttendee{
					{Self: true, ResponseStatus: "accepted"},
					{Email: "other@example.com"},
				},
			},
			wantSkip: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, reason := shouldSkipEvent(tt.event)
			if skip != tt.wantSkip {
				t.Errorf("shouldSkipEvent() skip = %v, want %v", skip, tt.wantSkip)
			}
			if tt.wantSkip && reason != tt.wantReason {
				t.Errorf("shouldSkipEvent() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestConvertEvent(t *testing.T) {
	event := &calendar.Event{
		Summary:     "Quarterly review",
		Description: "Pipeline walkthrough",
		Start:       &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Self: true, Email: "me@example.com"},
			{Email: "jane@acme.com", DisplayName: "Jane Smith"},
			{Email: "bob@acme.com"},
		},
	}

	meeting, err := convertEvent(event)
	if err != nil {
		t.Fatalf("convertEvent failed: %v", err)
	}

	if meeting.Title != "Quarterly review" {
		t.Errorf("Expected title 'Quarterly review', got %q", meeting.Title)
	}
	if !meeting.Timestamp.Equal(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected timestamp: %v", meeting.Timestamp)
	}

	// Self attendee excluded; display name preferred over email
	if len(meeting.Attendees) != 2 {
		t.Fatalf("Expected 2 attendees, got %d: %v", len(meeting.Attendees), meeting.Attendees)
	}
	if meeting.Attendees[0] != "Jane Smith" {
		t.Errorf("Expected 'Jane Smith', got %q", meeting.Attendees[0])
	}
	if meeting.Attendees[1] != "bob@acme.com" {
		t.Errorf("Expected 'bob@acme.com', got %q", meeting.Attendees[1])
	}
}

func TestConvertEventUntitled(t *testing.T) {
	event := &calendar.Event{
		Start: &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
	}

	meeting, err := convertEvent(event)
	if err != nil {
		t.Fatalf("convertEvent failed: %v", err)
	}
	if meeting.Title != "(untitled meeting)" {
		t.Errorf("Expected placeholder title, got %q", meeting.Title)
	}
}

func TestImportEventMatchesContactsByEmail(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	account := &models.Account{
		Kind:     models.KindCustomer,
		Name:     "Acme",
		Customer: &models.CustomerFields{},
	}
	if err := db.CreateAccount(database, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	contact := &models.Contact{Name: "Jane", Email: "jane@acme.com"}
	if err := db.CreateContact(database, account.ID, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	event := &calendar.Event{
		Id:      "evt-1",
		Summary: "Kickoff",
		Start:   &calendar.EventDateTime{DateTime: "2026-08-25T10:00:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Self: true, Email: "me@example.com"},
			{Email: "jane@acme.com"},
			{Email: "stranger@elsewhere.com"},
		},
	}

	recorded, err := importEvent(database, event)
	if err != nil {
		t.Fatalf("importEvent failed: %v", err)
	}
	if recorded != 1 {
		t.Errorf("Expected 1 recorded meeting, got %d", recorded)
	}

	meetings, err := db.ListMeetingsForContact(database, contact.ID)
	if err != nil {
		t.Fatalf("ListMeetingsForContact failed: %v", err)
	}
	if len(meetings) != 1 {
		t.Fatalf("Expected 1 meeting, got %d", len(meetings))
	}
	if meetings[0].Title != "Kickoff" {
		t.Errorf("Expected title 'Kickoff', got %q", meetings[0].Title)
	}

	// Re-importing the same event is a no-op
	recorded, err = importEvent(database, event)
	if err != nil {
		t.Fatalf("importEvent failed on re-run: %v", err)
	}
	if recorded != 0 {
		t.Errorf("Expected 0 recorded on re-run, got %d", recorded)
	}

	meetings, _ = db.ListMeetingsForContact(database, contact.ID)
	if len(meetings) != 1 {
		t.Errorf("Expected meeting count unchanged, got %d", len(meetings))
	}
}
