package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	calendarRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/calendar"
	defaultsRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/defaults"
	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Service сервис управления календарём ёмкости
type Service struct {
	calendarRepo CalendarRepository
	defaultsRepo DefaultsRepository
	bookingRepo  BookingRepository
	resolver     *Resolver
	logger       Logger
}

// NewService создает новый сервис календаря
func NewService(
	calendarRepo CalendarRepository,
	defaultsRepo DefaultsRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		defaultsRepo: defaultsRepo,
		bookingRepo:  bookingRepo,
		resolver:     NewResolver(calendarRepo, logger),
		logger:       logger,
	}
}

// Resolver возвращает резолвер ёмкости (для использования в usecases)
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// GetDaySummary возвращает сводку по дате: действующее правило, загрузку, остаток
func (s *Service) GetDaySummary(ctx context.Context, date types.DateOnly) (*models.DaySummaryResponse, error) {
	s.logger.Info("GetDaySummary: date=%s", date)

	def, err := s.getDefaults(ctx)
	if err != nil {
		return nil, err
	}

	capacity := s.resolver.Resolve(ctx, date, *def)

	approved, err := s.bookingRepo.SumApprovedPartySize(ctx, date, nil)
	if err != nil {
		s.logger.Error("GetDaySummary: failed to sum approved load for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: GetDaySummary - repository error: %v", ErrInternal, err)
	}

	resp := &models.DaySummaryResponse{
		Date:      date.String(),
		Capacity:  capacity.Capacity,
		IsClosed:  capacity.IsClosed,
		Source:    string(capacity.Source),
		Approved:  approved,
		Remaining: capacity.Remaining(approved),
		Critical:  def.CriticalThreshold > 0 && approved >= def.CriticalThreshold,
	}

	// Заметка и причина чисто информационные, их отсутствие не ошибка
	if config, err := s.calendarRepo.GetByDate(ctx, date); err == nil {
		resp.Note = config.Note
		resp.Reason = config.Reason
	}

	return resp, nil
}

// UpsertConfig создает или обновляет переопределение даты
func (s *Service) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: date=%s, maxSlots=%v, isClosed=%v", req.Date, req.MaxSlots, req.IsClosed)

	if err := validateUpsertConfig(req); err != nil {
		s.logger.Warn("UpsertConfig: validation failed for date=%s: %v", req.Date, err)
		return nil, err
	}

	config := &domain.CalendarDateConfig{
		Date:     req.Date,
		MaxSlots: req.MaxSlots,
		IsClosed: req.IsClosed,
		Note:     req.Note,
		Reason:   req.Reason,
	}

	saved, err := s.calendarRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("UpsertConfig: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: UpsertConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertConfig: saved config for date=%s", req.Date)
	return models.FromDomainConfig(saved), nil
}

// DeleteConfig удаляет переопределение даты
func (s *Service) DeleteConfig(ctx context.Context, date types.DateOnly) error {
	s.logger.Info("DeleteConfig: date=%s", date)

	if err := s.calendarRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, calendarRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteConfig: config for date=%s not found", date)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteConfig: repository error for date=%s: %v", date, err)
		return fmt.Errorf("%w: DeleteConfig - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetDefaults возвращает глобальные настройки ёмкости
func (s *Service) GetDefaults(ctx context.Context) (*models.DefaultsResponse, error) {
	def, err := s.getDefaults(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDefaults(def), nil
}

// UpdateDefaults частично обновляет глобальные настройки
func (s *Service) UpdateDefaults(ctx context.Context, req *models.UpdateDefaultsRequest) (*models.DefaultsResponse, error) {
	s.logger.Info("UpdateDefaults: defaultMaxSlots=%v, criticalThreshold=%v", req.DefaultMaxSlots, req.CriticalThreshold)

	if req.DefaultMaxSlots == nil && req.CriticalThreshold == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.DefaultMaxSlots != nil && *req.DefaultMaxSlots <= 0 {
		return nil, fmt.Errorf("%w: defaultMaxSlots must be positive", ErrInvalidInput)
	}
	if req.CriticalThreshold != nil && *req.CriticalThreshold < 0 {
		return nil, fmt.Errorf("%w: criticalThreshold must be non-negative", ErrInvalidInput)
	}

	updated, err := s.defaultsRepo.Update(ctx, req.DefaultMaxSlots, req.CriticalThreshold)
	if err != nil {
		if errors.Is(err, defaultsRepo.ErrDefaultsNotFound) {
			return nil, ErrDefaultsNotFound
		}
		s.logger.Error("UpdateDefaults: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateDefaults - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDefaults: defaults updated, defaultMaxSlots=%d", updated.DefaultMaxSlots)
	return models.FromDomainDefaults(updated), nil
}

// FindOverbooked сверяет одобренную загрузку с действующей ёмкостью по каждой
// дате периода. Admission-проверка допускает узкую гонку конкурентных
// одобрений; это сканирование делает её последствия обнаружимыми.
func (s *Service) FindOverbooked(ctx context.Context, from, to types.DateOnly) ([]domain.OverbookedDate, error) {
	s.logger.Info("FindOverbooked: period %s to %s", from, to)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	def, err := s.getDefaults(ctx)
	if err != nil {
		return nil, err
	}

	load, err := s.bookingRepo.ApprovedLoadByDate(ctx, from, to)
	if err != nil {
		s.logger.Error("FindOverbooked: failed to load approved totals: %v", err)
		return nil, fmt.Errorf("%w: FindOverbooked - repository error: %v", ErrInternal, err)
	}

	configs, err := s.calendarRepo.ListRange(ctx, from, to)
	if err != nil {
		s.logger.Error("FindOverbooked: failed to load date configs: %v", err)
		return nil, fmt.Errorf("%w: FindOverbooked - repository error: %v", ErrInternal, err)
	}

	overbooked := make([]domain.OverbookedDate, 0)
	for date, approved := range load {
		capacity := ResolveWithConfig(configs[date], *def)
		if approved > capacity.Capacity {
			overbooked = append(overbooked, domain.OverbookedDate{
				Date:     date,
				Approved: approved,
				Capacity: capacity.Capacity,
			})
		}
	}

	sort.Slice(overbooked, func(i, j int) bool {
		return overbooked[i].Date.Before(overbooked[j].Date)
	})

	if len(overbooked) > 0 {
		s.logger.Warn("FindOverbooked: found %d overbooked dates in period %s to %s", len(overbooked), from, to)
	}

	return overbooked, nil
}

func (s *Service) getDefaults(ctx context.Context) (*domain.CalendarDefaults, error) {
	def, err := s.defaultsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, defaultsRepo.ErrDefaultsNotFound) {
			return nil, ErrDefaultsNotFound
		}
		s.logger.Error("getDefaults: repository error: %v", err)
		return nil, fmt.Errorf("%w: getDefaults - repository error: %v", ErrInternal, err)
	}
	return def, nil
}

func validateUpsertConfig(req *models.UpsertConfigRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.MaxSlots != nil && (*req.MaxSlots < domain.MinMaxSlots || *req.MaxSlots > domain.MaxMaxSlots) {
		return fmt.Errorf("%w: maxSlots must be between %d and %d", ErrInvalidInput, domain.MinMaxSlots, domain.MaxMaxSlots)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note too long", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxNoteLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}
	return nil
}
