// Package events announces assignment changes so other consumers can reload
// a fresh snapshot.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// Type names the kind of change.
type Type string

const (
	AssignmentCreated   Type = "assignment.created"
	AssignmentUpdated   Type = "assignment.updated"
	AssignmentCompleted Type = "assignment.completion_changed"
	AssignmentDeleted   Type = "assignment.deleted"
)

// Event is the payload published after a mutation.
type Event struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	UserID        string    `json:"user_id"`
	AssignmentID  uint      `json:"assignment_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

type correlationKey struct{}

// WithCorrelationID binds the request correlation id to ctx so events raised
// under it can be traced back to the request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id bound by WithCorrelationID.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// New stamps an event with a fresh identifier and the correlation id bound
// to ctx, if any.
func New(ctx context.Context, eventType Type, userID string, assignmentID uint, at time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		UserID:        userID,
		AssignmentID:  assignmentID,
		OccurredAt:    at.UTC(),
		CorrelationID: CorrelationID(ctx),
	}
}

// Publisher delivers change events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopPublisher struct{}

// Nop returns a publisher that drops every event.
func Nop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error {
	return nil
}

// Broker fans events out to NATS and Redis pub/sub. Either transport may be
// nil, in which case it is skipped.
type Broker struct {
	nats         *nats.Conn
	natsSubject  string
	redis        *redis.Client
	redisChannel string
}

// NewBroker builds a broker over the configured transports.
func NewBroker(natsConn *nats.Conn, subject string, redisClient *redis.Client, channel string) *Broker {
	return &Broker{
		nats:         natsConn,
		natsSubject:  subject,
		redis:        redisClient,
		redisChannel: channel,
	}
}

// Publish sends the event on every configured transport and reports all failures.
func (b *Broker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	var errs []error
	if b.nats != nil && b.natsSubject != "" {
		if err := b.nats.Publish(b.natsSubject, payload); err != nil {
			errs = append(errs, fmt.Errorf("nats publish: %w", err))
		}
	}
	if b.redis != nil && b.redisChannel != "" {
		if err := b.redis.Publish(ctx, b.redisChannel, payload).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis publish: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ConnectNATS dials the NATS server at url. An empty url returns a nil
// connection, which disables the NATS transport.
func ConnectNATS(url, clientName string) (*nats.Conn, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.Timeout(3*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}
	return conn, nil
}
