package eventbus

import "errors"

var (
	// ErrEncode возвращается, когда событие не удается сериализовать
	ErrEncode = errors.New("eventbus: failed to encode event")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("eventbus: failed to publish event")
)
