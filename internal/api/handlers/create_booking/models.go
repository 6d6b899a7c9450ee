package create_booking

import (
	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RequesterID int64          `json:"requesterId"`
	TrekDate    types.DateOnly `json:"trekDate"`
	PartySize   int            `json:"partySize"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		RequesterID: r.RequesterID,
		TrekDate:    r.TrekDate,
		PartySize:   r.PartySize,
	}
}
