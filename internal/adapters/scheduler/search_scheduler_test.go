package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/configs"
	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
)

type recordingRunSearch struct {
	mu      sync.Mutex
	configs []domain.SearchConfiguration
	err     error
}

func (r *recordingRunSearch) Execute(_ context.Context, cfg domain.SearchConfiguration) (*domain.SearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.SearchResult{Complete: true, StopReason: domain.StopReasonNoMoreResults}, nil
}

func (r *recordingRunSearch) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.configs)
}

func scheduledRent(schedule string) configs.ScheduledSearch {
	limit := 5
	return configs.ScheduledSearch{
		Name:     "rent",
		Schedule: schedule,
		Search:   configs.SearchParams{Channel: "rent", Limit: &limit, Locations: []string{"Sydney"}},
	}
}

func TestNewSearchScheduler_InvalidSchedule(t *testing.T) {
	logger := contextkeys.LoggerFromContext(context.Background())

	_, err := NewSearchScheduler(&recordingRunSearch{}, []configs.ScheduledSearch{scheduledRent("every tuesday")}, logger)
	assert.Error(t, err)

	_, err = NewSearchScheduler(nil, nil, logger)
	assert.Error(t, err)
}

func TestSearchScheduler_RunJobUsesConfiguration(t *testing.T) {
	logger := contextkeys.LoggerFromContext(context.Background())
	runSearch := &recordingRunSearch{}

	s, err := NewSearchScheduler(runSearch, []configs.ScheduledSearch{scheduledRent("@daily")}, logger)
	require.NoError(t, err)

	s.runJob(s.searches[0])

	require.Equal(t, 1, runSearch.calls())
	cfg := runSearch.configs[0]
	assert.Equal(t, domain.ChannelRent, cfg.Channel)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, []string{"Sydney"}, cfg.Locations)
}

func TestSearchScheduler_StartRunsJobsUntilCancelled(t *testing.T) {
	logger := contextkeys.LoggerFromContext(context.Background())
	runSearch := &recordingRunSearch{}

	s, err := NewSearchScheduler(runSearch, []configs.ScheduledSearch{scheduledRent("@every 1s")}, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	assert.Eventually(t, func() bool { return runSearch.calls() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	assert.NoError(t, s.Close())
}
