package approve_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	storage "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
)

const (
	outcomeApproved         = "approved"
	outcomeCapacityExceeded = "capacity_exceeded"
	outcomeCapacityUnknown  = "capacity_unknown"
	outcomeDateClosed       = "date_closed"
	outcomeIllegalState     = "illegal_state"
)

// UseCase одобрение заявки с проверкой ёмкости даты.
//
// Проверка и запись выполняются в одной транзакции: строка заявки блокируется
// FOR UPDATE, загрузка даты считается уже под блокировкой, поэтому два
// конкурентных одобрения на последний слот не могут пройти оба. При
// serializeApprovals=true транзакция дополнительно поднимается до
// SERIALIZABLE — тогда гонка ловится и между одобрениями разных заявок.
type UseCase struct {
	bookingRepo        BookingRepository
	defaultsRepo       DefaultsRepository
	resolver           CapacityResolver
	txManager          TransactionManager
	recorder           OutcomeRecorder
	serializeApprovals bool
	capacityTimeout    time.Duration
	logger             Logger
}

// NewUseCase создает новый usecase одобрения заявки
func NewUseCase(
	bookingRepo BookingRepository,
	defaultsRepo DefaultsRepository,
	resolver CapacityResolver,
	txManager TransactionManager,
	recorder OutcomeRecorder,
	serializeApprovals bool,
	capacityTimeout time.Duration,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &UseCase{
		bookingRepo:        bookingRepo,
		defaultsRepo:       defaultsRepo,
		resolver:           resolver,
		txManager:          txManager,
		recorder:           recorder,
		serializeApprovals: serializeApprovals,
		capacityTimeout:    capacityTimeout,
		logger:             logger,
	}
}

// Execute одобряет заявку, если дата открыта и ёмкость позволяет.
//
// Порядок проверок фиксирован: статус -> закрытость даты -> ёмкость.
// Любая неопределённость в занятости даты (таймаут, сбой хранилища)
// трактуется как отказ (ErrCapacityUnknown), а не как нулевая загрузка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	uc.logger.Info("Execute: approving booking id=%d by admin=%s", req.BookingID, req.AdminID)

	var resp *Response

	run := uc.txManager.Do
	if uc.serializeApprovals {
		run = uc.txManager.DoSerializable
	}

	err := run(ctx, func(txCtx context.Context) error {
		var txErr error
		resp, txErr = uc.approveInTx(txCtx, req)
		return txErr
	})
	if err != nil {
		uc.recordFailure(req.BookingID, err)
		return nil, err
	}

	uc.recorder.ApprovalOutcome(outcomeApproved)
	uc.logger.Info("Execute: booking id=%d approved, load=%d/%d on %s",
		resp.ID, resp.ApprovedLoad, resp.Capacity, resp.TrekDate)
	return resp, nil
}

func (uc *UseCase) approveInTx(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("Execute: failed to lock booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - lock booking: %v", ErrInternal, err)
	}

	if booking.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: booking id=%d is %s, approval requires pending",
			ErrIllegalTransition, booking.ID, booking.Status)
	}

	// Настройки ёмкости на пути записи: сбой = отказ, а не дефолт.
	defaults, err := uc.defaultsRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("Execute: failed to load capacity defaults: %v", err)
		return nil, fmt.Errorf("%w: defaults unavailable: %v", ErrCapacityUnknown, err)
	}

	capacity := uc.resolver.Resolve(ctx, booking.TrekDate, *defaults)

	if capacity.IsClosed {
		return nil, fmt.Errorf("%w: %s", ErrDateClosed, booking.TrekDate)
	}

	countCtx := ctx
	if uc.capacityTimeout > 0 {
		var cancel context.CancelFunc
		countCtx, cancel = context.WithTimeout(ctx, uc.capacityTimeout)
		defer cancel()
	}

	// Исключаем саму заявку: повторная обработка после ручной правки статуса
	// не должна считать её собственную группу дважды.
	approved, err := uc.bookingRepo.SumApprovedPartySize(countCtx, booking.TrekDate, &booking.ID)
	if err != nil {
		uc.logger.Error("Execute: approved load unavailable for date=%s: %v", booking.TrekDate, err)
		return nil, fmt.Errorf("%w: %v", ErrCapacityUnknown, err)
	}

	if approved+booking.PartySize > capacity.Capacity {
		return nil, &CapacityExceededError{Current: approved, Max: capacity.Capacity}
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusApproved); err != nil {
		uc.logger.Error("Execute: failed to update booking id=%d status: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - update status: %v", ErrInternal, err)
	}

	return &Response{
		ID:           booking.ID,
		RequesterID:  booking.RequesterID,
		TrekDate:     booking.TrekDate,
		PartySize:    booking.PartySize,
		Status:       string(domain.StatusApproved),
		ApprovedLoad: approved + booking.PartySize,
		Capacity:     capacity.Capacity,
		UpdatedAt:    time.Now(),
	}, nil
}

func (uc *UseCase) recordFailure(bookingID int64, err error) {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		uc.recorder.ApprovalOutcome(outcomeCapacityExceeded)
		uc.logger.Warn("Execute: booking id=%d refused: %v", bookingID, err)
	case errors.Is(err, ErrCapacityUnknown):
		uc.recorder.ApprovalOutcome(outcomeCapacityUnknown)
	case errors.Is(err, ErrDateClosed):
		uc.recorder.ApprovalOutcome(outcomeDateClosed)
		uc.logger.Warn("Execute: booking id=%d refused: %v", bookingID, err)
	case errors.Is(err, ErrIllegalTransition):
		uc.recorder.ApprovalOutcome(outcomeIllegalState)
	}
}
