package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Publisher публикует события бронирований в Kafka
type Publisher struct {
	writer Writer
	topic  string
	now    func() time.Time
	log    Logger
}

// NewPublisher создает издателя поверх kafka.Writer
// Сообщения одного бронирования попадают в одну партицию (ключ = код бронирования)
func NewPublisher(brokers []string, topic string, log Logger) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})
	return NewPublisherWithWriter(writer, topic, log)
}

// NewPublisherWithWriter создает издателя с произвольным writer
func NewPublisherWithWriter(writer Writer, topic string, log Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		now:    time.Now,
		log:    log,
	}
}

// NotifyReservationConfirmed публикует событие о бронировании, которое не требует предоплаты
func (p *Publisher) NotifyReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	event := ReservationEvent{
		EventID:    uuid.NewString(),
		EventType:  p.topic,
		OccurredAt: p.now().UTC(),
		Data: ReservationPayload{
			ReservationID: reservation.ID,
			Code:          reservation.Code,
			ServiceID:     reservation.ServiceID,
			StaffID:       reservation.StaffID,
			RoomID:        reservation.RoomID,
			StartAt:       reservation.StartAt,
			EndAt:         reservation.EndAt,
			Status:        string(reservation.Status),
			CustomerName:  reservation.CustomerName,
			CustomerEmail: reservation.CustomerEmail,
			CustomerPhone: reservation.CustomerPhone,
			Locale:        reservation.Locale,
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(reservation.Code),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: code=%s: %v", ErrPublish, reservation.Code, err)
	}

	p.log.Info("Published %s event id=%s for reservation code=%s", p.topic, event.EventID, reservation.Code)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
