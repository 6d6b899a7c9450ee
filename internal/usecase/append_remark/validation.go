package append_remark

import (
	"fmt"
	"strings"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.Author == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: remark text is required", ErrInvalidInput)
	}

	if len(req.Text) > domain.MaxRemarkTextLength {
		return fmt.Errorf("%w: remark text exceeds %d characters", ErrInvalidInput, domain.MaxRemarkTextLength)
	}

	return nil
}
