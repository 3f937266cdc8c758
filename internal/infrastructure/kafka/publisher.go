package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tradelink/escrow-service/internal/domain"
)

// NotificationPublisher pushes notification events to the platform topic
// consumed by the email/push delivery collaborator.
type NotificationPublisher struct {
	writer *kafka.Writer
}

func NewNotificationPublisher(brokers []string, topic string) *NotificationPublisher {
	return &NotificationPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *NotificationPublisher) PublishNotification(event domain.NotificationEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.UserID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
