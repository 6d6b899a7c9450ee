package override_status

import (
	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings/models"
)

// OverrideStatusRequest HTTP request model
type OverrideStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *OverrideStatusRequest) ToServiceRequest(adminID string) *models.OverrideStatusRequest {
	return &models.OverrideStatusRequest{
		AdminID: adminID,
		Status:  r.Status,
		Reason:  r.Reason,
	}
}
