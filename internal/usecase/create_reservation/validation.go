package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// normalizeEmail обрезает пробелы и приводит к нижнему регистру; пустой email - nil
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		return nil
	}
	return &normalized
}

// normalizePhone оставляет только цифры 0-9, полноширинные цифры приводятся к ASCII;
// телефон без цифр - nil
func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r >= '０' && r <= '９':
			return '0' + (r - '０')
		default:
			return -1
		}
	}, *phone)
	if normalized == "" {
		return nil
	}
	return &normalized
}

// validateRequest валидирует входные данные запроса
// email и phone уже нормализованы, их наличие проверено раньше
func validateRequest(req *Request, email, phone *string) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.EndAt != nil && !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if email != nil && utf8.RuneCountInString(*email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customer email is too long", ErrInvalidInput)
	}

	if phone != nil && len(*phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Locale) > domain.MaxLocaleLength {
		return fmt.Errorf("%w: locale is too long", ErrInvalidInput)
	}

	if req.PaymentOption != "" && !req.PaymentOption.IsValid() {
		return fmt.Errorf("%w: unknown payment option %q", ErrInvalidInput, req.PaymentOption)
	}

	return nil
}
