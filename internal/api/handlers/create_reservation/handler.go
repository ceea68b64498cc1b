package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgContactRequired    = "укажите email или телефон"
	msgLeadTime           = "слишком поздно для бронирования этого времени"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotTaken          = "выбранное время уже занято"
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		code := createReservation.ErrorCode(err)
		switch {
		case errors.Is(err, createReservation.ErrContactRequired):
			h.logger.Warn("POST /reservations - Contact required: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusBadRequest, code, msgContactRequired)

		case errors.Is(err, createReservation.ErrLeadTime):
			h.logger.Warn("POST /reservations - Too late to book: service_id=%d, start=%s", req.ServiceID, req.Start)
			handlers.RespondError(w, http.StatusBadRequest, code, msgLeadTime)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, code, msgInvalidInput)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusNotFound, code, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: service_id=%d, start=%s", req.ServiceID, req.Start)
			handlers.RespondError(w, http.StatusConflict, code, msgSlotTaken)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result, h.location)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, code=%s",
		result.ID, result.Code)
	handlers.RespondData(w, http.StatusCreated, response)
}
