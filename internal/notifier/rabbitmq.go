// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// PasswordResetRoutingKey is the topic under which reset requests are published.
	PasswordResetRoutingKey = "auth.password.reset.requested"

	passwordResetEventType = "password_reset"
	dialTimeout            = 10 * time.Second
	traceIDHeader          = "X-Trace-ID"
)

// publisher is the subset of *amqp.Channel used by RabbitMQNotifier.
type publisher interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
	Close() error
}

// passwordResetMessage is the wire format consumed by the mailer.
type passwordResetMessage struct {
	Type string `json:"type"`
	models.PasswordResetEvent
	OccurredAt time.Time `json:"occurred_at"`
}

// RabbitMQNotifier publishes reset events as persistent JSON messages to a
// durable topic exchange and waits for the broker confirm.
type RabbitMQNotifier struct {
	conn     io.Closer
	ch       publisher
	exchange string
	timeout  time.Duration

	// mu serialises publishes so that confirms are matched in order.
	mu     sync.Mutex
	now    func() time.Time
	logger *logger.Logger
}

// NewRabbitMQNotifier dials the broker, declares the exchange and puts the
// channel into confirm mode.
func NewRabbitMQNotifier(cfg config.Notifier, log *logger.Logger) (*RabbitMQNotifier, error) {
	if cfg.BrokerURL == "" {
		return nil, ErrEmptyBrokerURL
	}

	conn, err := amqp.DialConfig(cfg.BrokerURL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectingToBroker, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningChannel, err)
	}

	if err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w %q: %w", ErrDeclaringExchange, cfg.Exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrEnablingConfirms, err)
	}

	log.Info().Str("exchange", cfg.Exchange).Msg("rabbitmq notifier connected")

	return newRabbitMQNotifier(conn, ch, cfg.Exchange, cfg.PublishTimeout, log), nil
}

func newRabbitMQNotifier(conn io.Closer, ch publisher, exchange string, timeout time.Duration, log *logger.Logger) *RabbitMQNotifier {
	return &RabbitMQNotifier{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		now:      time.Now,
		logger:   log,
	}
}

func (n *RabbitMQNotifier) NotifyPasswordReset(ctx context.Context, event models.PasswordResetEvent) error {
	log := n.logger.GetChildLogger()

	body, err := json.Marshal(passwordResetMessage{
		Type:               passwordResetEventType,
		PasswordResetEvent: event,
		OccurredAt:         n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshallingEvent, err)
	}

	headers := amqp.Table{}
	if traceID := utils.GetTraceIDFromContext(ctx); traceID != "" {
		headers[traceIDHeader] = traceID
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	confirm, err := n.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		n.exchange,
		PasswordResetRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    n.now().UTC(),
			Type:         PasswordResetRoutingKey,
			Headers:      headers,
			Body:         body,
		},
	)
	if err != nil {
		log.Err(err).Str("func", "RabbitMQNotifier.NotifyPasswordReset").Str("user_id", event.UserID).Msg("publish failed")
		return fmt.Errorf("%w: %w", ErrPublishingEvent, err)
	}

	// nil when the channel is not in confirm mode
	if confirm == nil {
		return nil
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEventNotConfirmed, err)
	}
	if !acked {
		return ErrEventNotConfirmed
	}

	log.Debug().Str("func", "RabbitMQNotifier.NotifyPasswordReset").Str("user_id", event.UserID).Msg("password reset event published")
	return nil
}

// Close closes the channel and then the connection.
func (n *RabbitMQNotifier) Close() error {
	var chErr, connErr error
	if n.ch != nil {
		chErr = n.ch.Close()
	}
	if n.conn != nil {
		connErr = n.conn.Close()
	}
	if chErr != nil {
		return chErr
	}
	return connErr
}
