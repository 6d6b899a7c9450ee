package upsert_calendar_config

import (
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// UpsertConfigRequest HTTP request model. Дата приходит в пути, не в теле.
type UpsertConfigRequest struct {
	MaxSlots *int    `json:"maxSlots,omitempty"`
	IsClosed bool    `json:"isClosed"`
	Note     *string `json:"note,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertConfigRequest) ToServiceRequest(date types.DateOnly) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		Date:     date,
		MaxSlots: r.MaxSlots,
		IsClosed: r.IsClosed,
		Note:     r.Note,
		Reason:   r.Reason,
	}
}
