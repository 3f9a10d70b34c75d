package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, msg amqp.Publishing) error {
	f.routingKey = routingKey
	f.msg = msg
	return f.err
}

func TestSearchResultsPublisher_PublishResults(t *testing.T) {
	producer := &fakePublisher{}
	publisher, err := NewSearchResultsPublisher(producer, "search.results.completed")
	require.NoError(t, err)

	run := domain.SearchRun{
		ID:           uuid.New(),
		Channel:      domain.ChannelRent,
		Locations:    []string{"Sydney"},
		Complete:     true,
		StopReason:   domain.StopReasonLimitReached,
		PagesFetched: 2,
		StartedAt:    time.Now().UTC(),
		FinishedAt:   time.Now().UTC(),
	}
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")

	err = publisher.PublishResults(ctx, run, []domain.Listing{{"id": "1"}})
	require.NoError(t, err)

	assert.Equal(t, "search.results.completed", producer.routingKey)
	assert.Equal(t, "application/json", producer.msg.ContentType)
	assert.Equal(t, amqp.Persistent, producer.msg.DeliveryMode)
	assert.Equal(t, run.ID.String(), producer.msg.MessageId)
	assert.Equal(t, "trace-1", producer.msg.Headers["x-trace-id"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(producer.msg.Body, &body))
	assert.Equal(t, run.ID.String(), body["run_id"])
	assert.Equal(t, "rent", body["channel"])
	assert.Equal(t, "limit_reached", body["stop_reason"])
	assert.EqualValues(t, 1, body["listings_count"])
	assert.Len(t, body["listings"], 1)
	assert.NotContains(t, body, "error")
}

func TestSearchResultsPublisher_EmptyListingsEncodeAsList(t *testing.T) {
	producer := &fakePublisher{}
	publisher, err := NewSearchResultsPublisher(producer, "key")
	require.NoError(t, err)

	require.NoError(t, publisher.PublishResults(context.Background(), domain.SearchRun{ID: uuid.New()}, nil))

	assert.Contains(t, string(producer.msg.Body), `"listings":[]`)
	assert.Contains(t, string(producer.msg.Body), `"locations":[]`)
	assert.NotContains(t, producer.msg.Headers, "x-trace-id")
}

func TestSearchResultsPublisher_PublishError(t *testing.T) {
	publishErr := errors.New("channel closed")
	publisher, err := NewSearchResultsPublisher(&fakePublisher{err: publishErr}, "key")
	require.NoError(t, err)

	err = publisher.PublishResults(context.Background(), domain.SearchRun{ID: uuid.New()}, nil)
	assert.ErrorIs(t, err, publishErr)
}

func TestNewSearchResultsPublisher_Validation(t *testing.T) {
	_, err := NewSearchResultsPublisher(nil, "key")
	assert.Error(t, err)

	_, err = NewSearchResultsPublisher(&fakePublisher{}, "")
	assert.Error(t, err)
}
