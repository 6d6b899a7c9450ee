package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/ptr"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Service лента активности администратора: снимок заявок + чистая деривация
// + отметки прочтения. Снимку не нужна линеаризуемость — допустимо отставание
// на возраст снимка.
type Service struct {
	bookingRepo  BookingRepository
	readSetRepo  ReadSetRepository
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис ленты активности
func NewService(
	bookingRepo BookingRepository,
	readSetRepo ReadSetRepository,
	policy Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		readSetRepo:  readSetRepo,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Feed строит ленту активности для администратора
func (s *Service) Feed(ctx context.Context, adminID string) ([]domain.ActivityEntry, error) {
	s.logger.Info("Feed: deriving activity for admin=%s", adminID)

	now := s.timeProvider.Now()

	// Снимок заявок: достаточно дат в пределах окна свежести вокруг "сегодня".
	// Старые cancelled/rejected всё равно отфильтрует деривация, а pending
	// заявки на будущие даты должны попасть в ленту.
	windowDays := int(s.policy.RecentWindow / (24 * time.Hour))
	from := types.NewDateOnly(now).AddDays(-windowDays)

	bookings, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		StartDate: ptr.Ptr(from),
	})
	if err != nil {
		s.logger.Error("Feed: failed to load bookings snapshot: %v", err)
		return nil, fmt.Errorf("%w: Feed - repository error: %v", ErrInternal, err)
	}

	readSet, err := s.readSetRepo.Keys(ctx, adminID)
	if err != nil {
		// Лента важнее отметок: при сбое показываем всё непрочитанным
		s.logger.Warn("Feed: failed to load read set for admin=%s, marking all unread: %v", adminID, err)
		readSet = map[string]bool{}
	}

	entries := Derive(bookings, readSet, now, s.policy)

	s.logger.Info("Feed: derived %d entries for admin=%s", len(entries), adminID)
	return entries, nil
}

// MarkRead отмечает запись ленты прочитанной для администратора
func (s *Service) MarkRead(ctx context.Context, adminID string, key string) error {
	if key == "" {
		return fmt.Errorf("%w: entry key is required", ErrInvalidInput)
	}

	if err := s.readSetRepo.MarkRead(ctx, adminID, key); err != nil {
		s.logger.Error("MarkRead: failed to mark key=%s for admin=%s: %v", key, adminID, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRead: admin=%s read key=%s", adminID, key)
	return nil
}
