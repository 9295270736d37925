package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"carwash/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	JOBS_CHANNEL      Channel = "jobs"
	REBALANCE_CHANNEL Channel = "rebalance"
)

type MessageType string

const (
	JOB_SCHEDULED      MessageType = "job_scheduled"
	JOB_STARTED        MessageType = "job_started"
	JOB_COMPLETED      MessageType = "job_completed"
	JOB_CANCELLED      MessageType = "job_cancelled"
	JOB_NO_SHOW        MessageType = "job_no_show"
	JOB_REASSIGNED     MessageType = "job_reassigned"
	JOB_RATED          MessageType = "job_rated"
	REBALANCE_COMPLETE MessageType = "rebalance_complete"
)

type Event struct {
	ID         string         `json:"id"`
	Type       MessageType    `json:"type"`
	Channel    Channel        `json:"channel"`
	CustomerID *uuid.UUID     `json:"customerId,omitempty"`
	Data       map[string]any `json:"data"`
	Timestamp  time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// EventBus fans events out over valkey pub/sub and to in-process handlers.
// A nil bus drops every event, and a bus without a client only notifies
// local handlers.
type EventBus struct {
	client   valkey.Client
	logger   logger.Logger
	config   config.Config
	handlers map[Channel][]EventHandler
	mutex    sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(client valkey.Client, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:   client,
		logger:   logger.New("EventBus"),
		config:   config,
		handlers: make(map[Channel][]EventHandler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (eb *EventBus) Publish(channel Channel, event Event) error {
	if eb == nil {
		return nil
	}
	log := eb.logger.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if event.Channel == "" {
		event.Channel = channel
	}

	if eb.client != nil {
		eventData, err := json.Marshal(event)
		if err != nil {
			return log.Err("failed to marshal event", err, "eventID", event.ID)
		}

		ctx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
		defer cancel()

		err = eb.client.Do(ctx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
			Error()
		if err != nil {
			return log.Err(
				"failed to publish event to valkey",
				err,
				"channel", channel,
				"eventID", event.ID,
			)
		}

		log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)
	}

	eb.notifyLocalHandlers(channel, event)

	return nil
}

// Subscribe registers a handler. Remote events are only received when the bus
// has a valkey client.
func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.logger.Function("Subscribe")

	eb.mutex.Lock()
	first := len(eb.handlers[channel]) == 0
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	if first && eb.client != nil {
		go eb.listenToChannel(channel)
	}

	return nil
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.logger.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := append([]EventHandler(nil), eb.handlers[channel]...)
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		if err := handler(event); err != nil {
			log.Er(
				"handler failed",
				err,
				"channel", channel,
				"eventID", event.ID,
				"handlerIndex", i,
			)
		}
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.logger.Function("listenToChannel")

	ctx, cancel := context.WithCancel(eb.ctx)
	defer cancel()

	log.Info("Starting to listen to channel", "channel", channel)

	err := eb.client.Receive(
		ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel, "message", msg.Message)
				return
			}

			log.Debug("Received event from valkey", "channel", channel, "eventID", event.ID)
			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil && ctx.Err() == nil {
		log.Er("failed to listen to channel", err, "channel", channel)
	}
}

func (eb *EventBus) Close() error {
	if eb == nil {
		return nil
	}
	log := eb.logger.Function("Close")

	eb.cancel()

	log.Info("EventBus closed")
	return nil
}

// PublishJob announces a job lifecycle change on the jobs channel.
func (eb *EventBus) PublishJob(
	eventType MessageType,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	customerID uuid.UUID,
	data map[string]any,
) error {
	if eb == nil {
		return nil
	}

	payload := map[string]any{
		"jobId":      jobID.String(),
		"employeeId": employeeID.String(),
	}
	for k, v := range data {
		payload[k] = v
	}

	return eb.Publish(JOBS_CHANNEL, Event{
		Type:       eventType,
		CustomerID: &customerID,
		Data:       payload,
	})
}
