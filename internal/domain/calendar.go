package domain

import (
	"time"

	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// CalendarDateConfig per-date override of the trail capacity rule.
// Keyed by calendar date; many bookings reference the same date without owning the config.
type CalendarDateConfig struct {
	Date      types.DateOnly
	MaxSlots  *int // nil = наследуем defaultMaxSlots
	IsClosed  bool // true = дата закрыта, ёмкость 0 независимо от MaxSlots
	Note      *string
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalendarDefaults global capacity rule applied to dates without an override.
// Always passed explicitly into the resolver; never read through a hidden global.
type CalendarDefaults struct {
	DefaultMaxSlots   int
	CriticalThreshold int // advisory UI threshold, no admission effect
	UpdatedAt         time.Time
}

// CapacitySource указывает, откуда взято действующее правило ёмкости
type CapacitySource string

const (
	SourceOverride CapacitySource = "override"
	SourceDefault  CapacitySource = "default"
)

// EffectiveCapacity resolved capacity rule for a single date
type EffectiveCapacity struct {
	Capacity int
	IsClosed bool
	Source   CapacitySource
}

// Remaining возвращает остаток ёмкости при известной занятости
func (e EffectiveCapacity) Remaining(approved int) int {
	if e.IsClosed {
		return 0
	}
	remaining := e.Capacity - approved
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OverbookedDate дата, на которой подтверждённая загрузка превышает ёмкость.
// Результат сверочного сканирования (гонка admission-проверки допускается,
// но должна быть обнаружима).
type OverbookedDate struct {
	Date     types.DateOnly
	Approved int
	Capacity int
}
