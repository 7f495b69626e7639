// Package rabbitmq publishes and consumes storerate domain events on a
// RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	// guards channel; publishes come from concurrent request handlers
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
	Queue    string
}

// NewClient creates a new RabbitMQ client.
// It connects, declares the durable topic exchange and binds the event
// queue to every routing key on it.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg.Exchange, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected (exchange=%s, queue=%s)", cfg.Exchange, cfg.Queue)

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
	}, nil
}

func declareTopology(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable (persists messages across broker restarts)
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends payload as a persistent JSON message with the given routing key.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newPublishing(payload, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := c.channel.Publish(
		c.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

func newPublishing(payload any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         body,
	}, nil
}

// Event is a consumed domain event.
type Event struct {
	ID         string
	RoutingKey string
	Timestamp  time.Time
	Payload    json.RawMessage
}

// DecodeEvent extracts an Event from a delivery. Non-JSON bodies are rejected.
func DecodeEvent(msg amqp.Delivery) (Event, error) {
	if !json.Valid(msg.Body) {
		return Event{}, fmt.Errorf("message %s is not valid JSON", msg.MessageId)
	}
	return Event{
		ID:         msg.MessageId,
		RoutingKey: msg.RoutingKey,
		Timestamp:  msg.Timestamp,
		Payload:    json.RawMessage(msg.Body),
	}, nil
}

// ConsumeEvents starts a goroutine handing every event on the client's queue
// to handler. Successfully handled events are acked; failures are nacked
// without requeue so a poison message cannot loop. The goroutine stops when
// ctx is done or the channel closes.
func (c *Client) ConsumeEvents(ctx context.Context, handler func(Event) error) error {
	c.mu.Lock()
	if c.channel == nil {
		c.mu.Unlock()
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack: set to false to manually acknowledge messages
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for events on %s", c.queue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Printf("RabbitMQ delivery channel closed")
					return
				}
				handleDelivery(msg, handler)
			}
		}
	}()
	return nil
}

// acknowledger is the subset of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(msg amqp.Delivery, handler func(Event) error) {
	settle(&msg, msg.DeliveryTag, func() error {
		event, err := DecodeEvent(msg)
		if err != nil {
			return err
		}
		return handler(event)
	})
}

func settle(ack acknowledger, tag uint64, process func() error) {
	if err := process(); err != nil {
		log.Printf("Error processing message %d: %v", tag, err)
		if nackErr := ack.Nack(false, false); nackErr != nil {
			log.Printf("Error nacking message %d: %v", tag, nackErr)
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		log.Printf("Error acking message %d: %v", tag, ackErr)
	}
}

// LogEvent is the default consumer handler: it writes each event to the log.
func LogEvent(e Event) error {
	log.Printf("Received %s event (id=%s): %s", e.RoutingKey, e.ID, e.Payload)
	return nil
}
