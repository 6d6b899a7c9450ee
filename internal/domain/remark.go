package domain

import "time"

// AdminRemark is a single staff remark attached to a booking.
// Remarks are append-mostly: once the booking is approved or cancelled
// the whole sequence becomes immutable.
type AdminRemark struct {
	ID        int64
	BookingID int64
	Author    string // display identity of the acting administrator, opaque to the core
	Text      string
	Edited    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
