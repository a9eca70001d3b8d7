package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"mockui/internal/config"
	"mockui/internal/model"
	"mockui/internal/queue"
	"mockui/internal/service/helper"
)

const (
	CommandLog    = "log"
	CommandRender = "render"
	CommandFetch  = "fetch"
)

// commander is the part of the helper facade that queue commands drive.
type commander interface {
	FetchContext(ctx context.Context, rawURL string, callback helper.Callback) model.Handle
	Log(args ...any) model.Handle
	Render(blockType string, data any) error
}

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type Consumer struct {
	url         string
	cmd         commander
	validate    *validator.Validate
	logger      *zap.Logger
	exchange    string
	queue       string
	routingKey  string
	consumerTag string
}

func NewConsumer(cfg *config.Config, svc *helper.Service, logger *zap.Logger) queue.Consumer {
	if cfg.RabbitMQURL == "" {
		return &noopConsumer{}
	}
	return newConsumer(cfg, svc, logger)
}

func newConsumer(cfg *config.Config, cmd commander, logger *zap.Logger) *Consumer {
	return &Consumer{
		url:         cfg.RabbitMQURL,
		cmd:         cmd,
		validate:    validator.New(),
		logger:      logger,
		exchange:    cfg.RabbitExchange,
		queue:       cfg.RabbitCommandQueue,
		routingKey:  cfg.RabbitCommandKey,
		consumerTag: cfg.RabbitConsumerTag,
	}
}

func (r *Consumer) Start(ctx context.Context) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.consume_loop")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.exchange),
		attribute.String("messaging.destination_kind", "exchange"),
		attribute.String("messaging.rabbitmq.routing_key", r.routingKey),
	)
	defer span.End()

	conn, err := amqp.Dial(r.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "channel failed")
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "qos failed")
		return fmt.Errorf("rabbitmq qos: %w", err)
	}

	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "exchange declare failed")
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	queueInfo, err := ch.QueueDeclare(r.queue, true, false, false, false, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "queue declare failed")
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(queueInfo.Name, r.routingKey, r.exchange, false, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "queue bind failed")
		return fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	deliveries, err := ch.Consume(queueInfo.Name, r.consumerTag, false, false, false, false, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "consume failed")
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	r.logger.Info("RabbitMQ command consumer started",
		zap.String("exchange", r.exchange),
		zap.String("queue", queueInfo.Name),
		zap.String("routing_key", r.routingKey),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				span.SetStatus(codes.Error, "deliveries closed")
				return errors.New("rabbitmq deliveries closed")
			}
			if err := r.handleMessage(ctx, msg); err != nil {
				span.RecordError(err)
				return err
			}
		}
	}
}

type command struct {
	Kind string `json:"kind" validate:"required,oneof=log render fetch"`
	Type string `json:"type" validate:"required_if=Kind render"`
	URL  string `json:"url" validate:"required_if=Kind fetch"`
	Data any    `json:"data"`
	Args []any  `json:"args"`
}

// handleMessage acks every delivery: commands are applied once or dropped,
// never requeued, since none of them can succeed on a second attempt.
func (r *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, amqpHeaderCarrier(msg.Headers))
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.handle_command")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.exchange),
		attribute.String("messaging.rabbitmq.routing_key", msg.RoutingKey),
	)
	defer span.End()

	var c command
	if err := json.Unmarshal(msg.Body, &c); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid json")
		r.logger.Error("rabbitmq invalid json", zap.Error(err))
		return msg.Ack(false)
	}
	if err := r.validate.Struct(c); err != nil {
		span.SetStatus(codes.Error, "invalid command")
		r.logger.Warn("rabbitmq invalid command",
			zap.String("kind", c.Kind),
			zap.String("type", c.Type),
			zap.Error(err),
		)
		return msg.Ack(false)
	}
	span.SetAttributes(attribute.String("mockui.command", c.Kind))

	switch c.Kind {
	case CommandLog:
		r.cmd.Log(c.Args...)
	case CommandFetch:
		url := c.URL
		r.cmd.FetchContext(ctx, url, func(_ any, err error) {
			if err != nil {
				r.logger.Debug("queued fetch failed", zap.String("url", url), zap.Error(err))
			}
		})
	case CommandRender:
		if err := r.cmd.Render(c.Type, c.Data); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render rejected")
			r.logger.Warn("rabbitmq render rejected", zap.String("type", c.Type), zap.Error(err))
		}
	}

	return msg.Ack(false)
}
