package approve_booking

import "fmt"

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	if req.AdminID == "" {
		return fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}

	return nil
}
