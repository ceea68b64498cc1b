package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyReservationConfirmed просит сервис уведомлений отправить клиенту подтверждение
func (c *Client) NotifyReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	url := fmt.Sprintf("%s/internal/notifications/reservation-confirmed", c.baseURL)

	body, err := json.Marshal(ReservationConfirmedRequest{
		ReservationID: reservation.ID,
		Code:          reservation.Code,
		ServiceID:     reservation.ServiceID,
		StaffID:       reservation.StaffID,
		StartAt:       reservation.StartAt,
		EndAt:         reservation.EndAt,
		CustomerName:  reservation.CustomerName,
		CustomerEmail: reservation.CustomerEmail,
		CustomerPhone: reservation.CustomerPhone,
		Locale:        reservation.Locale,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("NotificationService accepted confirmation for reservation code=%s", reservation.Code)
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("%w: %s", ErrInvalidRequest, errResp.Message)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
