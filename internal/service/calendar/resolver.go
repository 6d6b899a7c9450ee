package calendar

import (
	"context"
	"errors"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	calendarRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/calendar"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Resolver вычисляет действующее правило ёмкости даты: переопределение
// поверх глобального дефолта. Defaults всегда передаются вызывающим явно —
// резолвер не хранит и не кеширует глобальное состояние.
type Resolver struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewResolver создает новый резолвер ёмкости календаря
func NewResolver(calendarRepo CalendarRepository, logger Logger) *Resolver {
	return &Resolver{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Resolve возвращает действующую ёмкость даты.
// Отсутствие переопределения или незаданный MaxSlots — наследуем дефолт.
// Транзиентный сбой чтения переопределения не пробрасывается: резолвер
// деградирует к глобальному дефолту и логирует это. Путь чтения
// предпочитает доступность строгой корректности; запись (admission)
// защищена отдельно — подсчёт занятых мест при сбое отклоняет одобрение.
func (r *Resolver) Resolve(ctx context.Context, date types.DateOnly, defaults domain.CalendarDefaults) domain.EffectiveCapacity {
	config, err := r.calendarRepo.GetByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrConfigNotFound) {
			r.logger.Warn("Resolve: override lookup failed for date=%s, falling back to default capacity=%d: %v",
				date, defaults.DefaultMaxSlots, err)
		}
		return domain.EffectiveCapacity{
			Capacity: defaults.DefaultMaxSlots,
			IsClosed: false,
			Source:   domain.SourceDefault,
		}
	}

	if config.IsClosed {
		return domain.EffectiveCapacity{
			Capacity: 0,
			IsClosed: true,
			Source:   domain.SourceOverride,
		}
	}

	if config.MaxSlots == nil {
		// Переопределение есть (например, только заметка), лимит наследуется
		return domain.EffectiveCapacity{
			Capacity: defaults.DefaultMaxSlots,
			IsClosed: false,
			Source:   domain.SourceDefault,
		}
	}

	return domain.EffectiveCapacity{
		Capacity: *config.MaxSlots,
		IsClosed: false,
		Source:   domain.SourceOverride,
	}
}

// ResolveWithConfig вычисляет действующую ёмкость по уже загруженному
// переопределению (или nil). Используется пакетными выборками, когда
// вызывающий сам загрузил диапазон конфигураций одним запросом.
func ResolveWithConfig(config *domain.CalendarDateConfig, defaults domain.CalendarDefaults) domain.EffectiveCapacity {
	if config == nil || (!config.IsClosed && config.MaxSlots == nil) {
		return domain.EffectiveCapacity{
			Capacity: defaults.DefaultMaxSlots,
			IsClosed: false,
			Source:   domain.SourceDefault,
		}
	}

	if config.IsClosed {
		return domain.EffectiveCapacity{Capacity: 0, IsClosed: true, Source: domain.SourceOverride}
	}

	return domain.EffectiveCapacity{
		Capacity: *config.MaxSlots,
		IsClosed: false,
		Source:   domain.SourceOverride,
	}
}
