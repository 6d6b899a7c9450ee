package approve_booking

import (
	"time"

	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Request модель запроса на одобрение заявки
type Request struct {
	BookingID int64  // ID заявки
	AdminID   string // Идентификатор администратора (для аудита)
}

// Response модель ответа с одобренной заявкой
type Response struct {
	ID          int64          // ID заявки
	RequesterID int64          // ID заявителя
	TrekDate    types.DateOnly // Дата трека
	PartySize   int            // Размер группы
	Status      string         // Новый статус (approved)

	// Снимок загрузки даты после одобрения
	ApprovedLoad int // Одобренная загрузка включая эту заявку
	Capacity     int // Действующая ёмкость даты

	UpdatedAt time.Time // Время обновления
}
