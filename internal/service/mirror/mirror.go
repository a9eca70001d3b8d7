package mirror

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"mockui/internal/config"
	"mockui/internal/domain"
	"mockui/internal/model"
	"mockui/internal/queue"
	"mockui/internal/repository"
)

const publishTimeout = 5 * time.Second

// Mirror republishes store changes to the message queue so processes other
// than the demo UI can follow requests, logs and the blueprint.
type Mirror struct {
	pub    queue.Publisher
	prefix string
	queue  chan model.Change
	log    *zap.Logger
}

func New(cfg *config.Config, publisher queue.Publisher, logger *zap.Logger) *Mirror {
	prefix := cfg.RabbitChangePrefix
	if prefix == "" {
		prefix = "change"
	}
	return &Mirror{
		pub:    publisher,
		prefix: prefix,
		queue:  make(chan model.Change, 256),
		log:    logger,
	}
}

// Follow subscribes to every list of source. Changes are queued and published
// by Run so the store never waits on the broker.
func (m *Mirror) Follow(source repository.ChangeSource) (func(), error) {
	var unsubscribers []func()
	stop := func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
	for _, list := range domain.Lists {
		unsubscribe, err := source.Subscribe(list, m.enqueue)
		if err != nil {
			stop()
			return nil, err
		}
		unsubscribers = append(unsubscribers, unsubscribe)
	}
	return stop, nil
}

func (m *Mirror) enqueue(change model.Change) {
	select {
	case m.queue <- change:
	default:
		m.log.Warn("change mirror queue full, dropping change",
			zap.String("event", change.Event),
			zap.Uint64("seq", change.Seq),
		)
	}
}

func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-m.queue:
			m.publish(ctx, change)
		}
	}
}

func (m *Mirror) publish(ctx context.Context, change model.Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		m.log.Error("change marshal failed", zap.String("event", change.Event), zap.Error(err))
		return
	}
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	routingKey := m.prefix + "." + change.List
	if err := m.pub.Publish(publishCtx, payload, routingKey); err != nil {
		m.log.Error("change publish failed",
			zap.String("routing_key", routingKey),
			zap.Uint64("seq", change.Seq),
			zap.Error(err),
		)
	}
}
