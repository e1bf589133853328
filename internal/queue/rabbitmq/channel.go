package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/queue"
)

// noopChannel stands in when no broker is configured: subscriptions open but
// never deliver, so everything rides on resync.
type noopChannel struct{}

func (n *noopChannel) Open(ctx context.Context, recipientID, entityClass string) (queue.Subscription, error) {
	_ = recipientID
	_ = entityClass
	sub := &noopSubscription{events: make(chan queue.Delivery)}
	go func() {
		<-ctx.Done()
		sub.shutdown()
	}()
	return sub, nil
}

type noopSubscription struct {
	events chan queue.Delivery
	once   sync.Once
}

func (n *noopSubscription) Events() <-chan queue.Delivery { return n.events }
func (n *noopSubscription) Err() error                    { return nil }
func (n *noopSubscription) Close() error {
	n.shutdown()
	return nil
}

func (n *noopSubscription) shutdown() {
	n.once.Do(func() { close(n.events) })
}

// Channel opens one RabbitMQ subscription per (recipient, entity class) pair.
// Each subscription gets its own server-named exclusive queue bound to the
// recipient's routing keys, so the broker does the per-recipient filtering.
type Channel struct {
	url         string
	exchange    string
	consumerTag string
	log         *zap.Logger
}

func NewChannel(cfg *config.Config, logger *zap.Logger) queue.Channel {
	if cfg.RabbitMQURL == "" {
		return &noopChannel{}
	}
	return &Channel{
		url:         cfg.RabbitMQURL,
		exchange:    cfg.RabbitExchange,
		consumerTag: cfg.RabbitConsumerTag,
		log:         logger,
	}
}

func (c *Channel) Open(ctx context.Context, recipientID, entityClass string) (queue.Subscription, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		c.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	queueInfo, err := ch.QueueDeclare(
		"", // server-named, one per subscription
		false,
		true,
		true,
		false,
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	bindingKey := entityClass + "." + recipientID + ".*"
	if err := ch.QueueBind(
		queueInfo.Name,
		bindingKey,
		c.exchange,
		false,
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	deliveries, err := ch.Consume(
		queueInfo.Name,
		c.consumerTag+"-"+recipientID,
		true, // auto-ack: the resync fallback covers anything lost in flight
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.log.Info("push subscription opened",
		zap.String("exchange", c.exchange),
		zap.String("queue", queueInfo.Name),
		zap.String("binding_key", bindingKey),
	)

	sub := &subscription{
		conn:   conn,
		events: make(chan queue.Delivery, 16),
	}
	go sub.pump(ctx, deliveries)
	return sub, nil
}

type subscription struct {
	conn   *amqp.Connection
	events chan queue.Delivery

	mu  sync.Mutex
	err error
}

func (s *subscription) Events() <-chan queue.Delivery { return s.events }

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *subscription) Close() error {
	return s.conn.Close()
}

func (s *subscription) pump(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(s.events)
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
			return
		case msg, ok := <-deliveries:
			if !ok {
				if !s.conn.IsClosed() {
					s.setErr(fmt.Errorf("rabbitmq deliveries closed"))
				}
				return
			}
			s.events <- queue.Delivery{
				Op:   opFromRoutingKey(msg.RoutingKey),
				Body: msg.Body,
			}
		}
	}
}

func (s *subscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Routing keys are "<entityClass>.<recipientID>.<op>".
func opFromRoutingKey(routingKey string) string {
	if i := strings.LastIndex(routingKey, "."); i >= 0 {
		return routingKey[i+1:]
	}
	return routingKey
}
