package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	bookingRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings/models"
)

// Service сервис одиночных операций над заявками: чтение, создание,
// переходы статусов без capacity-проверки. Одобрение (admission) живёт
// отдельно в usecase/approve_booking.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый сервис заявок
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает заявку по ID вместе с замечаниями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	remarks, err := s.bookingRepo.ListRemarks(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load remarks for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	booking.Remarks = remarks

	return models.FromDomainBooking(booking), nil
}

// List получает заявки с фильтрацией по периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v", req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Create создает новую заявку в статусе pending
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: requester=%d, date=%s, partySize=%d", req.RequesterID, req.TrekDate, req.PartySize)

	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterId must be positive", ErrInvalidInput)
	}
	if req.TrekDate.IsZero() {
		return nil, fmt.Errorf("%w: trekDate is required", ErrInvalidInput)
	}
	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: partySize must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	booking := &domain.Booking{
		RequesterID: req.RequesterID,
		TrekDate:    req.TrekDate,
		PartySize:   req.PartySize,
		Status:      domain.StatusPending,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created booking id=%d", created.ID)
	return models.FromDomainBooking(created), nil
}

// Reject отклоняет заявку. Допустимо только из pending.
func (s *Service) Reject(ctx context.Context, id int64, adminID string) (*models.BookingResponse, error) {
	s.logger.Info("Reject: booking id=%d by admin=%s", id, adminID)
	return s.transition(ctx, id, domain.StatusRejected)
}

// ResetToPending возвращает заявку в очередь на рассмотрение.
// Допустимо из rejected и changes_required.
func (s *Service) ResetToPending(ctx context.Context, id int64, adminID string) (*models.BookingResponse, error) {
	s.logger.Info("ResetToPending: booking id=%d by admin=%s", id, adminID)
	return s.transition(ctx, id, domain.StatusPending)
}

// Cancel отменяет заявку. Действие заявителя, допустимо из любого
// нетерминального статуса.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d", id)
	return s.transition(ctx, id, domain.StatusCancelled)
}

// OverrideStatus административный override: единственный путь вывести заявку
// из approved. Обходит таблицу переходов, поэтому логируется как WARN.
func (s *Service) OverrideStatus(ctx context.Context, id int64, req *models.OverrideStatusRequest) (*models.BookingResponse, error) {
	target := domain.BookingStatus(req.Status)
	if !domain.ValidStatus(target) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	// Override предназначен для разблокировки терминального approved;
	// остальные переходы обязаны идти через обычные операции.
	if booking.Status != domain.StatusApproved {
		s.logger.Warn("OverrideStatus: booking id=%d is %s, override applies to approved only", id, booking.Status)
		return nil, ErrIllegalTransition
	}
	if target == domain.StatusApproved {
		return nil, ErrIllegalTransition
	}

	s.logger.Warn("OverrideStatus: admin=%s overrides booking id=%d from approved to %s, reason=%q",
		req.AdminID, id, target, req.Reason)

	if err := s.bookingRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, s.mapUpdateErr("OverrideStatus", id, err)
	}

	booking.Status = target
	return models.FromDomainBooking(booking), nil
}

// transition выполняет обычный переход статуса по таблице допустимых переходов
func (s *Service) transition(ctx context.Context, id int64, target domain.BookingStatus) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(target) {
		s.logger.Warn("transition: illegal %s -> %s for booking id=%d", booking.Status, target, id)
		return nil, ErrIllegalTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, s.mapUpdateErr("transition", id, err)
	}

	s.logger.Info("transition: booking id=%d %s -> %s", id, booking.Status, target)
	booking.Status = target
	return models.FromDomainBooking(booking), nil
}

func (s *Service) loadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("loadBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("loadBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: loadBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) mapUpdateErr(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d disappeared during update", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
