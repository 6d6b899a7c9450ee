package approve_booking

import (
	"time"

	uc "github.com/m04kA/Trek-AdmissionService/internal/usecase/approve_booking"
)

// ApproveBookingResponse HTTP response model
type ApproveBookingResponse struct {
	ID           int64     `json:"id"`
	RequesterID  int64     `json:"requesterId"`
	TrekDate     string    `json:"trekDate"`
	PartySize    int       `json:"partySize"`
	Status       string    `json:"status"`
	ApprovedLoad int       `json:"approvedLoad"`
	Capacity     int       `json:"capacity"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CapacityExceededResponse HTTP 409 с деталями загрузки
type CapacityExceededResponse struct {
	Error   string `json:"error"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

// FromUsecaseResponse конвертирует ответ usecase в HTTP модель
func FromUsecaseResponse(resp *uc.Response) *ApproveBookingResponse {
	return &ApproveBookingResponse{
		ID:           resp.ID,
		RequesterID:  resp.RequesterID,
		TrekDate:     resp.TrekDate.String(),
		PartySize:    resp.PartySize,
		Status:       resp.Status,
		ApprovedLoad: resp.ApprovedLoad,
		Capacity:     resp.Capacity,
		UpdatedAt:    resp.UpdatedAt,
	}
}
