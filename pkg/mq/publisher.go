package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errors.New("rabbitmq did not confirm the message")

type Message struct {
	ID   string
	Type string
	Body []byte
}

type Publisher interface {
	Publish(ctx context.Context, queue string, msg Message) error
	Close() error
}

type RabbitPublisher struct {
	ch *amqp.Channel
}

func NewRabbitPublisher(ch *amqp.Channel) Publisher { return &RabbitPublisher{ch: ch} }

// Publish sends msg to the default exchange, routed straight to queue, and
// returns only after the broker confirmed it when the channel is in confirm
// mode.
func (r *RabbitPublisher) Publish(ctx context.Context, queue string, msg Message) error {
	confirmation, err := r.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, true, false,
		NewPublishing(msg, time.Now()))
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.ID, queue, err)
	}
	if confirmation == nil {
		return nil
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm for %s: %w", msg.ID, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s", ErrPublishNacked, msg.ID)
	}

	return nil
}

func (r *RabbitPublisher) Close() error {
	if r.ch != nil {
		return r.ch.Close()
	}

	return nil
}

// NewPublishing builds a persistent JSON delivery. The message id lets
// consumers drop redeliveries of the same event.
func NewPublishing(msg Message, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Type,
		Timestamp:    now.UTC(),
		Body:         msg.Body,
	}
}
