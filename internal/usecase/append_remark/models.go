package append_remark

import "time"

// Request модель запроса на добавление замечания
type Request struct {
	BookingID int64  // ID заявки
	Author    string // Идентификатор администратора
	Text      string // Текст замечания
}

// Response модель ответа с добавленным замечанием
type Response struct {
	RemarkID      int64     // ID замечания
	BookingID     int64     // ID заявки
	Author        string    // Автор замечания
	Text          string    // Текст замечания
	BookingStatus string    // Статус заявки после добавления
	CreatedAt     time.Time // Время создания замечания
}
