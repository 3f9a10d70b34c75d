package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - то, что адаптеру нужно от производителя.
// *rabbitmq_producer.Publisher удовлетворяет интерфейсу.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchResultsPublisher - реализация порта SearchResultsQueuePort для RabbitMQ
type SearchResultsPublisher struct {
	producer   MessagePublisher
	routingKey string
}

// NewSearchResultsPublisher - конструктор
func NewSearchResultsPublisher(producer MessagePublisher, routingKey string) (*SearchResultsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchResultsPublisher{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

// searchResultsMessage - тело события о завершенном поиске
type searchResultsMessage struct {
	RunID         string           `json:"run_id"`
	Channel       string           `json:"channel"`
	Locations     []string         `json:"locations"`
	Complete      bool             `json:"complete"`
	StopReason    string           `json:"stop_reason"`
	PagesFetched  int              `json:"pages_fetched"`
	ListingsCount int              `json:"listings_count"`
	Error         string           `json:"error,omitempty"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
	Listings      []domain.Listing `json:"listings"`
}

func (a *SearchResultsPublisher) PublishResults(ctx context.Context, run domain.SearchRun, listings []domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "SearchResultsPublisher",
		"routing_key": a.routingKey,
		"run_id":      run.ID.String(),
	})

	if listings == nil {
		listings = []domain.Listing{}
	}
	locations := run.Locations
	if locations == nil {
		locations = []string{}
	}

	body, err := json.Marshal(searchResultsMessage{
		RunID:         run.ID.String(),
		Channel:       string(run.Channel),
		Locations:     locations,
		Complete:      run.Complete,
		StopReason:    string(run.StopReason),
		PagesFetched:  run.PagesFetched,
		ListingsCount: len(listings),
		Error:         run.ErrorMessage,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Listings:      listings,
	})
	if err != nil {
		adapterLogger.Error("Failed to marshal search results", err, nil)
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    run.ID.String(),
		Headers:      make(amqp.Table),
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing search results", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search results", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish results of run %s: %w", run.ID, err)
	}

	adapterLogger.Info("Successfully published search results", port.Fields{"listings_count": len(listings)})
	return nil
}
