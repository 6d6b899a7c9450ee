package append_remark

import (
	"time"

	uc "github.com/m04kA/Trek-AdmissionService/internal/usecase/append_remark"
)

// AppendRemarkRequest HTTP request model
type AppendRemarkRequest struct {
	Text string `json:"text"`
}

// AppendRemarkResponse HTTP response model
type AppendRemarkResponse struct {
	RemarkID      int64     `json:"remarkId"`
	BookingID     int64     `json:"bookingId"`
	Author        string    `json:"author"`
	Text          string    `json:"text"`
	BookingStatus string    `json:"bookingStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromUsecaseResponse конвертирует ответ usecase в HTTP модель
func FromUsecaseResponse(resp *uc.Response) *AppendRemarkResponse {
	return &AppendRemarkResponse{
		RemarkID:      resp.RemarkID,
		BookingID:     resp.BookingID,
		Author:        resp.Author,
		Text:          resp.Text,
		BookingStatus: resp.BookingStatus,
		CreatedAt:     resp.CreatedAt,
	}
}
