package models

import (
	"errors"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

var (
	// ErrInvalidStatusValue возвращается при некорректном статусе в фильтре
	ErrInvalidStatusValue = errors.New("invalid booking status")
)

// Request модели

// CreateBookingRequest запрос на создание заявки на трек
type CreateBookingRequest struct {
	RequesterID int64          `json:"requesterId"`
	TrekDate    types.DateOnly `json:"trekDate"`
	PartySize   int            `json:"partySize"`
}

// ListBookingsRequest запрос на выборку заявок
type ListBookingsRequest struct {
	StartDate *types.DateOnly `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *types.DateOnly `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string         `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !domain.ValidStatus(status) {
			return filter, ErrInvalidStatusValue
		}
		filter.Status = &status
	}

	return filter, nil
}

// OverrideStatusRequest запрос административного override статуса
type OverrideStatusRequest struct {
	AdminID string `json:"adminId"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
}

// Response модели

// RemarkResponse замечание администратора
type RemarkResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID          int64            `json:"id"`
	RequesterID int64            `json:"requesterId"`
	TrekDate    string           `json:"trekDate"` // "2026-04-15"
	PartySize   int              `json:"partySize"`
	Status      string           `json:"status"`
	Remarks     []RemarkResponse `json:"remarks,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		RequesterID: b.RequesterID,
		TrekDate:    b.TrekDate.String(),
		PartySize:   b.PartySize,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if len(b.Remarks) > 0 {
		resp.Remarks = make([]RemarkResponse, len(b.Remarks))
		for i, remark := range b.Remarks {
			resp.Remarks[i] = RemarkResponse{
				ID:        remark.ID,
				Author:    remark.Author,
				Text:      remark.Text,
				Edited:    remark.Edited,
				CreatedAt: remark.CreatedAt,
				UpdatedAt: remark.UpdatedAt,
			}
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
