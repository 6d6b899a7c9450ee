package get_activity_feed

import (
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

// ActivityEntryResponse запись ленты активности
type ActivityEntryResponse struct {
	Key         string    `json:"key"`
	Kind        string    `json:"kind"` // "new_request" | "cancelled" | "updated"
	BookingID   int64     `json:"bookingId"`
	RequesterID int64     `json:"requesterId"`
	PartySize   int       `json:"partySize"`
	TrekDate    string    `json:"trekDate"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"isRead"`
}

// ActivityFeedResponse ответ с лентой активности
type ActivityFeedResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
	Unread  int                     `json:"unread"`
}

// FromDomainEntries конвертирует записи ленты в DTO
func FromDomainEntries(entries []domain.ActivityEntry) *ActivityFeedResponse {
	resp := &ActivityFeedResponse{
		Entries: make([]ActivityEntryResponse, len(entries)),
	}

	for i, e := range entries {
		resp.Entries[i] = ActivityEntryResponse{
			Key:         e.Key,
			Kind:        string(e.Kind),
			BookingID:   e.BookingID,
			RequesterID: e.RequesterID,
			PartySize:   e.PartySize,
			TrekDate:    e.TrekDate.String(),
			Timestamp:   e.Timestamp,
			IsRead:      e.IsRead,
		}
		if !e.IsRead {
			resp.Unread++
		}
	}

	return resp
}
