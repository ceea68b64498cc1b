package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reservations/models"
)

// Service сервис для чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
// Времена в ответах отдаются в часовом поясе салона
func NewService(reservationRepo ReservationRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		location:        location,
		logger:          logger,
	}
}

// GetByCode получает бронирование по коду
// Код нечувствителен к регистру и пробелам по краям
func (s *Service) GetByCode(ctx context.Context, code string) (*models.ReservationResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	s.logger.Info("GetByCode: fetching reservation code=%s", code)

	reservation, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByCode: reservation code=%s not found", code)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByCode: successfully fetched reservation id=%d", reservation.ID)
	return models.FromDomainReservation(reservation, s.location), nil
}
