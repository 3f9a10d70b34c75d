package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"realestate-search-service/internal/configs"
	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/port"
	usecases_port "realestate-search-service/internal/core/port/usecases"
)

// SearchScheduler запускает поиски из конфигурации по cron-расписанию.
// Запуск, который еще не завершился, пропускает следующее срабатывание.
type SearchScheduler struct {
	cron      *cron.Cron
	runSearch usecases_port.RunSearchPort
	searches  []configs.ScheduledSearch
	logger    port.LoggerPort

	mu      sync.Mutex
	baseCtx context.Context
	running bool
}

// NewSearchScheduler проверяет расписания и регистрирует задания
func NewSearchScheduler(runSearch usecases_port.RunSearchPort, searches []configs.ScheduledSearch, logger port.LoggerPort) (*SearchScheduler, error) {
	if runSearch == nil {
		return nil, fmt.Errorf("scheduler: runSearch cannot be nil")
	}

	schedulerLogger := logger.WithFields(port.Fields{"component": "SearchScheduler"})
	bridge := cronLogger{logger: schedulerLogger}

	s := &SearchScheduler{
		cron: cron.New(
			cron.WithLogger(bridge),
			cron.WithChain(cron.Recover(bridge), cron.SkipIfStillRunning(bridge)),
		),
		runSearch: runSearch,
		searches:  searches,
		logger:    schedulerLogger,
		baseCtx:   context.Background(),
	}

	for _, search := range searches {
		if _, err := s.cron.AddFunc(search.Schedule, func() { s.runJob(search) }); err != nil {
			return nil, fmt.Errorf("scheduler: invalid schedule %q for search %q: %w", search.Schedule, search.Name, err)
		}
	}

	return s, nil
}

// Start запускает планировщик и блокируется до отмены ctx
func (s *SearchScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.running = true
	s.baseCtx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler started", port.Fields{"scheduled_searches": len(s.searches)})

	<-ctx.Done()
	return s.Close()
}

// Close останавливает планировщик и ждет завершения выполняющихся поисков
func (s *SearchScheduler) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped", nil)
	return nil
}

func (s *SearchScheduler) runJob(search configs.ScheduledSearch) {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	jobLogger := s.logger.WithFields(port.Fields{
		"scheduled_search": search.Name,
		"channel":          search.Search.Channel,
	})
	ctx = contextkeys.ContextWithLogger(ctx, jobLogger)

	startedAt := time.Now()
	jobLogger.Info("Scheduled search started", nil)

	result, err := s.runSearch.Execute(ctx, search.Search.ToSearchConfiguration())
	if err != nil {
		jobLogger.Error("Scheduled search rejected", err, nil)
		return
	}

	fields := port.Fields{
		"listings_count": len(result.Listings),
		"complete":       result.Complete,
		"stop_reason":    string(result.StopReason),
		"duration_ms":    time.Since(startedAt).Milliseconds(),
	}
	if result.Err != nil {
		jobLogger.Warn("Scheduled search finished with partial results", fields)
		return
	}
	jobLogger.Info("Scheduled search finished", fields)
}

// cronLogger передает внутренние сообщения cron в LoggerPort
type cronLogger struct {
	logger port.LoggerPort
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, toFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, err, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) port.Fields {
	fields := make(port.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
