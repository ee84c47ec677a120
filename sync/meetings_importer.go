// ABOUTME: Meeting importer from Google Calendar events
// ABOUTME: Matches attendees to known contacts and records meetings with dedup via the sync log
package sync

import (
	"database/sql"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

const (
	calendarService = "calendar"
	maxResults      = 250 // Google Calendar API max per page
)

// shouldSkipEvent determines if an event should be skipped during import.
// Returns (true, reason) if the event should be skipped, (false, "") otherwise.
func shouldSkipEvent(event *calendar.Event) (bool, string) {
	if event == nil {
		return true, "nil event"
	}
	if event.Start == nil {
		return true, "missing start time"
	}

	// All-day events carry Date instead of DateTime
	if event.Start.Date != "" {
		return true, "all-day event"
	}
	if event.Status == "cancelled" {
		return true, "cancelled"
	}

	// Skip events the user declined
	for _, attendee := range event.Attendees {
		if attendee.Self && attendee.ResponseStatus == "declined" {
			return true, "declined"
		}
	}

	// Skip solo events
	if len(event.Attendees) <= 1 {
		return true, "solo event"
	}

	return false, ""
}

// convertEvent maps a calendar event onto a meeting record.
func convertEvent(event *calendar.Event) (*models.Meeting, error) {
	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event start time: %w", err)
	}

	attendees := make([]string, 0, len(event.Attendees))
	for _, attendee := range event.Attendees {
		if attendee.Self {
			continue
		}
		if attendee.DisplayName != "" {
			attendees = append(attendees, attendee.DisplayName)
		} else {
			attendees = append(attendees, attendee.Email)
		}
	}

	title := event.Summary
	if title == "" {
		title = "(untitled meeting)"
	}

	return &models.Meeting{
		Title:     title,
		Summary:   event.Description,
		Attendees: attendees,
		Timestamp: start,
	}, nil
}

// ImportMeetings fetches calendar events and records a meeting on every known
// contact that attended. Events already seen are skipped via the sync log, so
// re-running an import never duplicates meetings.
func ImportMeetings(database *sql.DB, client *calendar.Service, initial bool) error {
	fmt.Println("Syncing Google Calendar...")
	if err := db.UpdateSyncStatus(database, calendarService, models.SyncStatusSyncing, nil); err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	state, err := db.GetSyncState(database, calendarService)
	if err != nil {
		errMsg := err.Error()
		_ = db.UpdateSyncStatus(database, calendarService, models.SyncStatusError, &errMsg)
		return fmt.Errorf("failed to get sync state: %w", err)
	}

	call := client.Events.List("primary").
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime")

	if initial {
		// Initial sync: fetch last 6 months
		sixMonthsAgo := time.Now().AddDate(0, -6, 0)
		call = call.TimeMin(sixMonthsAgo.Format(time.RFC3339))
		fmt.Println("  → Initial sync (last 6 months)...")
	} else if state != nil && state.LastSyncToken != nil {
		call = call.SyncToken(*state.LastSyncToken)
		fmt.Println("  → Incremental sync...")
	} else {
		sixMonthsAgo := time.Now().AddDate(0, -6, 0)
		call = call.TimeMin(sixMonthsAgo.Format(time.RFC3339))
		fmt.Println("  → No previous sync found, fetching last 6 months...")
	}

	totalEvents := 0
	imported := 0
	pageToken := ""
	skipCounts := make(map[string]int)

	for {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			// 410 Gone means the sync token expired; fall back to time-based sync
			if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 410 {
				fmt.Println("  → Sync token invalid, falling back to time-based sync...")

				var fallbackTime time.Time
				if state != nil && state.LastSyncTime != nil {
					fallbackTime = *state.LastSyncTime
				} else {
					fallbackTime = time.Now().AddDate(0, -6, 0)
				}

				call = client.Events.List("primary").
					MaxResults(maxResults).
					SingleEvents(true).
					OrderBy("startTime").
					TimeMin(fallbackTime.Format(time.RFC3339))
				totalEvents = 0

				events, err = call.Do()
				if err != nil {
					errMsg := fmt.Sprintf("failed to fetch events after fallback: %v", err)
					_ = db.UpdateSyncStatus(database, calendarService, models.SyncStatusError, &errMsg)
					return fmt.Errorf("failed to fetch calendar events after fallback: %w", err)
				}
			} else {
				errMsg := fmt.Sprintf("failed to fetch events: %v", err)
				_ = db.UpdateSyncStatus(database, calendarService, models.SyncStatusError, &errMsg)
				return fmt.Errorf("failed to fetch calendar events: %w", err)
			}
		}

		totalEvents += len(events.Items)

		for _, event := range events.Items {
			skip, reason := shouldSkipEvent(event)
			if skip {
				skipCounts[reason]++
				continue
			}

			count, err := importEvent(database, event)
			if err != nil {
				fmt.Printf("  ! Skipping event %q: %v\n", event.Summary, err)
				continue
			}
			imported += count
		}

		pageToken = events.NextPageToken
		if pageToken == "" {
			if events.NextSyncToken != "" {
				if err := db.UpdateSyncToken(database, calendarService, events.NextSyncToken); err != nil {
					errMsg := err.Error()
					_ = db.UpdateSyncStatus(database, calendarService, models.SyncStatusError, &errMsg)
					return fmt.Errorf("failed to update sync token: %w", err)
				}
			}
			break
		}
	}

	if err := db.UpdateSyncStatus(database, calendarService, models.SyncStatusIdle, nil); err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	fmt.Printf("\n✓ Fetched %d events, recorded %d meetings\n", totalEvents, imported)
	for reason, count := range skipCounts {
		fmt.Printf("  ✓ Skipped %d (%s)\n", count, reason)
	}
	fmt.Println("Sync token saved. Next sync will be incremental.")

	return nil
}

// importEvent records the event as a meeting on each attendee that matches a
// known contact by email. Returns the number of meetings recorded.
func importEvent(database *sql.DB, event *calendar.Event) (int, error) {
	seen, err := db.CheckSyncLogExists(database, calendarService, event.Id)
	if err != nil {
		return 0, err
	}
	if seen {
		return 0, nil
	}

	recorded := 0
	for _, attendee := range event.Attendees {
		if attendee.Self || attendee.Email == "" {
			continue
		}

		contact, err := db.FindContactByEmail(database, attendee.Email)
		if err != nil {
			return recorded, err
		}
		if contact == nil {
			continue
		}

		meeting, err := convertEvent(event)
		if err != nil {
			return recorded, err
		}
		if err := db.CreateMeeting(database, contact.ID, meeting); err != nil {
			return recorded, err
		}
		recorded++
	}

	if recorded > 0 {
		if err := db.LogSync(database, calendarService, event.Id, "meeting", event.Id); err != nil {
			return recorded, err
		}
	}

	return recorded, nil
}
