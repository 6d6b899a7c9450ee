package models

import (
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание/обновление переопределения даты
type UpsertConfigRequest struct {
	Date     types.DateOnly `json:"date"`
	MaxSlots *int           `json:"maxSlots,omitempty"`
	IsClosed bool           `json:"isClosed"`
	Note     *string        `json:"note,omitempty"`
	Reason   *string        `json:"reason,omitempty"`
}

// UpdateDefaultsRequest запрос на частичное обновление глобальных настроек
type UpdateDefaultsRequest struct {
	DefaultMaxSlots   *int `json:"defaultMaxSlots,omitempty"`
	CriticalThreshold *int `json:"criticalThreshold,omitempty"`
}

// Response модели

// DaySummaryResponse сводка по дате: действующее правило и загрузка
type DaySummaryResponse struct {
	Date      string  `json:"date"` // "2026-04-15"
	Capacity  int     `json:"capacity"`
	IsClosed  bool    `json:"isClosed"`
	Source    string  `json:"source"` // "override" | "default"
	Approved  int     `json:"approved"`
	Remaining int     `json:"remaining"`
	Critical  bool    `json:"critical"` // загрузка достигла советующего порога
	Note      *string `json:"note,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ConfigResponse ответ с переопределением даты
type ConfigResponse struct {
	Date      string    `json:"date"`
	MaxSlots  *int      `json:"maxSlots,omitempty"`
	IsClosed  bool      `json:"isClosed"`
	Note      *string   `json:"note,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultsResponse ответ с глобальными настройками
type DefaultsResponse struct {
	DefaultMaxSlots   int       `json:"defaultMaxSlots"`
	CriticalThreshold int       `json:"criticalThreshold"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OverbookedDateResponse дата с превышением ёмкости
type OverbookedDateResponse struct {
	Date     string `json:"date"`
	Approved int    `json:"approved"`
	Capacity int    `json:"capacity"`
}

// OverbookedListResponse ответ сверочного сканирования
type OverbookedListResponse struct {
	Dates []OverbookedDateResponse `json:"dates"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.CalendarDateConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		Date:      c.Date.String(),
		MaxSlots:  c.MaxSlots,
		IsClosed:  c.IsClosed,
		Note:      c.Note,
		Reason:    c.Reason,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainDefaults конвертирует domain модель в DTO
func FromDomainDefaults(d *domain.CalendarDefaults) *DefaultsResponse {
	if d == nil {
		return nil
	}
	return &DefaultsResponse{
		DefaultMaxSlots:   d.DefaultMaxSlots,
		CriticalThreshold: d.CriticalThreshold,
		UpdatedAt:         d.UpdatedAt,
	}
}

// FromDomainOverbooked конвертирует список overbooked-дат в DTO
func FromDomainOverbooked(dates []domain.OverbookedDate) *OverbookedListResponse {
	resp := &OverbookedListResponse{
		Dates: make([]OverbookedDateResponse, len(dates)),
	}
	for i, d := range dates {
		resp.Dates[i] = OverbookedDateResponse{
			Date:     d.Date.String(),
			Approved: d.Approved,
			Capacity: d.Capacity,
		}
	}
	return resp
}
