package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateOnlyFormat формат канонического ключа даты
const DateOnlyFormat = "2006-01-02"

// DateOnly каноническое представление календарной даты без компонента времени.
// Все границы системы (JSON, БД, time.Time) нормализуются в этот тип до того,
// как дата попадает в бизнес-логику: два значения, отличающиеся только
// временем суток, дают одинаковый DateOnly.
type DateOnly struct {
	year  int
	month time.Month
	day   int
}

// NewDateOnly создает DateOnly из time.Time, отбрасывая время суток
func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{year: y, month: m, day: d}
}

// ParseDateOnly парсит строку формата YYYY-MM-DD
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(DateOnlyFormat, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date string %q: %w", s, err)
	}
	return NewDateOnly(t), nil
}

// String возвращает канонический ключ YYYY-MM-DD
func (d DateOnly) String() string {
	return d.Time().Format(DateOnlyFormat)
}

// Time возвращает полночь даты в UTC (начало дня)
func (d DateOnly) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// IsZero возвращает true для нулевого значения
func (d DateOnly) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// AddDays возвращает дату, сдвинутую на n дней
func (d DateOnly) AddDays(n int) DateOnly {
	return NewDateOnly(d.Time().AddDate(0, 0, n))
}

// Before возвращает true, если d раньше other
func (d DateOnly) Before(other DateOnly) bool {
	return d.Time().Before(other.Time())
}

// After возвращает true, если d позже other
func (d DateOnly) After(other DateOnly) bool {
	return d.Time().After(other.Time())
}

// Equal возвращает true, если даты совпадают
func (d DateOnly) Equal(other DateOnly) bool {
	return d == other
}

// MarshalJSON сериализует дату в строку YYYY-MM-DD
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON парсит дату из строки YYYY-MM-DD
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для записи в БД (тип DATE)
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (d *DateOnly) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateOnly(v)
		return nil
	case []byte:
		parsed, err := ParseDateOnly(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}
