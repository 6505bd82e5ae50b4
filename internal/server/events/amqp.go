package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpDial is a seam for tests.
var amqpDial = amqp.Dial

func declareQueues(ch *amqp.Channel) error {
	for _, q := range Types {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}
	return nil
}

// AMQPPublisher publishes persistent JSON messages to durable queues on the
// default exchange, one queue per event type.
type AMQPPublisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqpDial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := declareQueues(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	ev, err := newEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	return errors.Join(p.ch.Close(), p.conn.Close())
}

// AMQPConsumer delivers queued events to subscribed handlers. A failed
// handler rejects the message without requeueing.
type AMQPConsumer struct {
	url      string
	log      logging.Logger
	handlers map[string]Handler
}

func NewAMQPConsumer(url string, log logging.Logger) *AMQPConsumer {
	return &AMQPConsumer{url: url, log: log.With("module", "events"), handlers: make(map[string]Handler)}
}

// Subscribe must be called before Run. A later handler for the same type
// replaces the earlier one.
func (c *AMQPConsumer) Subscribe(eventType string, h Handler) {
	c.handlers[eventType] = h
}

// Run consumes until ctx is done, reconnecting with backoff when the broker
// goes away.
func (c *AMQPConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn(ctx, "consumer stopped, reconnecting", "error", err, "backoff", backoff.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *AMQPConsumer) consume(ctx context.Context) error {
	conn, err := amqpDial(c.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}
	if err := declareQueues(ch); err != nil {
		return err
	}

	type delivery struct {
		queue string
		d     amqp.Delivery
	}
	in := make(chan delivery)
	var wg sync.WaitGroup
	for queue := range c.handlers {
		msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", queue, err)
		}
		wg.Add(1)
		go func(queue string, msgs <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range msgs {
				select {
				case in <- delivery{queue: queue, d: d}:
				case <-ctx.Done():
					return
				}
			}
		}(queue, msgs)
	}
	closed := make(chan struct{})
	go func() {
		wg.Wait()
		close(closed)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-closed:
			return errors.New("deliveries channel closed")
		case m := <-in:
			c.dispatch(ctx, m.queue, m.d)
		}
	}
}

func (c *AMQPConsumer) dispatch(ctx context.Context, queue string, d amqp.Delivery) {
	var ev Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		c.log.Error(ctx, "malformed event", "queue", queue, "error", err)
		_ = d.Nack(false, false)
		return
	}
	if err := c.handlers[queue](ctx, ev); err != nil {
		c.log.Error(ctx, "event handler failed", "queue", queue, "error", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
