package update_calendar_defaults

import (
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
)

// UpdateDefaultsRequest HTTP request model
type UpdateDefaultsRequest struct {
	DefaultMaxSlots   *int `json:"defaultMaxSlots,omitempty"`
	CriticalThreshold *int `json:"criticalThreshold,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateDefaultsRequest) ToServiceRequest() *models.UpdateDefaultsRequest {
	return &models.UpdateDefaultsRequest{
		DefaultMaxSlots:   r.DefaultMaxSlots,
		CriticalThreshold: r.CriticalThreshold,
	}
}
