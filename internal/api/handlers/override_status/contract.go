package override_status

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/service/bookings/models"
)

type BookingService interface {
	OverrideStatus(ctx context.Context, id int64, req *models.OverrideStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
