// Package events publishes attempt events to NATS.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Publisher is the subset of *nats.Conn used to publish events.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Emitter publishes each attempt event on "<subject>.<service>". Publish failures
// are logged and otherwise ignored.
type Emitter struct {
	publisher Publisher
	subject   string
	logger    gmaps.Logger
	conn      *nats.Conn
}

// New creates an emitter over an existing publisher.
func New(publisher Publisher, subject string, logger gmaps.Logger) *Emitter {
	if subject == "" {
		subject = constants.DefaultEventsSubject
	}

	return &Emitter{
		publisher: publisher,
		subject:   subject,
		logger:    logger,
	}
}

// Connect dials the NATS server named by cfg and returns an emitter that owns the
// connection.
func Connect(cfg *gmaps.EventsConfig, logger gmaps.Logger) (*Emitter, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(constants.EventsClientName),
		nats.MaxReconnects(constants.EventsMaxReconnects),
		nats.ReconnectWait(constants.EventsReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil && logger != nil {
				logger.Warn("Events connection lost", map[string]interface{}{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			if logger != nil {
				logger.Info("Events connection restored", map[string]interface{}{"url": nc.ConnectedUrl()})
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gmaps.ErrEventsConnectionFailed, err)
	}

	emitter := New(conn, cfg.Subject, logger)
	emitter.conn = conn

	return emitter, nil
}

// Subject returns the subject an event for the service is published on.
func (e *Emitter) Subject(service string) string {
	return e.subject + "." + service
}

// Emit publishes an attempt event.
func (e *Emitter) Emit(event gmaps.AttemptEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		e.warn("Failed to encode attempt event", event, err)

		return
	}

	err = e.publisher.Publish(e.Subject(event.Service), data)
	if err != nil {
		e.warn("Failed to publish attempt event", event, err)
	}
}

func (e *Emitter) warn(msg string, event gmaps.AttemptEvent, err error) {
	if e.logger == nil {
		return
	}

	e.logger.Warn(msg, map[string]interface{}{
		"request_id": event.RequestID,
		"service":    event.Service,
		"error":      err.Error(),
	})
}

// Close drains the owned connection. Emitters created with New leave their
// publisher open.
func (e *Emitter) Close() error {
	if e.conn == nil {
		return nil
	}

	return e.conn.Drain()
}
