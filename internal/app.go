package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	cache_adapter "realestate-search-service/internal/adapters/cache"
	logger_adapter "realestate-search-service/internal/adapters/logger"
	postgres_adapter "realestate-search-service/internal/adapters/postgres"
	rabbitmq_adapter "realestate-search-service/internal/adapters/rabbitmq"
	"realestate-search-service/internal/adapters/realestatefetcher"
	"realestate-search-service/internal/adapters/rest"
	"realestate-search-service/internal/adapters/scheduler"
	"realestate-search-service/internal/configs"
	"realestate-search-service/internal/constants"
	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/port"
	"realestate-search-service/internal/core/usecase"
	fluentlogger "realestate-search-service/pkg/fluent_logger"
	"realestate-search-service/pkg/postgres"
	"realestate-search-service/pkg/rabbitmq/rabbitmq_common"
	"realestate-search-service/pkg/rabbitmq/rabbitmq_producer"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	server        *rest.Server
	dbPool        *pgxpool.Pool
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	fluentClient  *fluent.Fluent
	logFile       io.Closer
	logger        port.LoggerPort

	// nil, если файл с расписанием не задан
	searchScheduler port.BackgroundRunnerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
// Postgres, RabbitMQ, кэш и планировщик необязательны и подключаются по конфигурации.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	application := &App{config: appConfig}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FileLogger.Path != "" {
		fileWriter, err := logger_adapter.NewRotatingFileWriter(logger_adapter.RotatingFileConfig{
			Path:       appConfig.FileLogger.Path,
			MaxSizeMB:  appConfig.FileLogger.MaxSizeMB,
			MaxBackups: appConfig.FileLogger.MaxBackups,
			MaxAgeDays: appConfig.FileLogger.MaxAgeDays,
			Compress:   appConfig.FileLogger.Compress,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		application.logFile = fileWriter
		activeLoggers = append(activeLoggers, logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
			Writer: fileWriter,
			Level:  logger_adapter.ParseLevel(appConfig.FileLogger.Level),
			IsJSON: true,
		}))
	}

	if appConfig.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		application.fluentClient = fluentClient

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			application.closeResources()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	application.logger = appLogger

	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"file_enabled":   appConfig.FileLogger.Path != "",
		"fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	fetcher, err := realestatefetcher.NewRealEstateFetcherAdapter(realestatefetcher.Config{
		SearchURL:      appConfig.RealEstate.SearchURL,
		ContactBaseURL: appConfig.RealEstate.ContactBaseURL,
		Origin:         appConfig.RealEstate.Origin,
		UserAgent:      appConfig.RealEstate.UserAgent,
		RequestTimeout: appConfig.RealEstate.RequestTimeout,
		RandomDelay:    appConfig.RealEstate.RandomDelay,
		Parallelism:    appConfig.RealEstate.Parallelism,
	})
	if err != nil {
		appLogger.Error("Failed to create real estate fetcher", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to initialize real estate fetcher: %w", err)
	}
	appLogger.Info("Real estate fetcher initialized.", port.Fields{"search_url": appConfig.RealEstate.SearchURL})

	// Интерфейсные переменные заполняются только реальными значениями, чтобы nil оставался nil
	var searchCache port.SearchCachePort
	if appConfig.Cache.Enabled {
		memoryCache, err := cache_adapter.NewSearchCache(appConfig.Cache.Size, appConfig.Cache.TTL)
		if err != nil {
			appLogger.Error("Failed to create search cache", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create search cache: %w", err)
		}
		searchCache = memoryCache
		appLogger.Info("Search cache enabled.", port.Fields{"size": appConfig.Cache.Size, "ttl": appConfig.Cache.TTL.String()})
	}

	var searchHistory port.SearchHistoryPort
	if appConfig.Postgres.DatabaseURL != "" {
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
			DatabaseURL: appConfig.Postgres.DatabaseURL,
			MaxConns:    appConfig.Postgres.MaxConns,
		})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		historyRepo, err := postgres_adapter.NewSearchHistoryRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		searchHistory = historyRepo
	}

	var resultsPublisher port.SearchResultsQueuePort
	if appConfig.RabbitMQ.URL != "" {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewConnectionManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		eventProducer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.SearchEventsExchange,
			ExchangeType:             constants.SearchEventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		application.eventProducer = eventProducer
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)

		publisher, err := rabbitmq_adapter.NewSearchResultsPublisher(eventProducer, constants.RoutingKeySearchResults)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		resultsPublisher = publisher
	}

	appLogger.Info("All outgoing adapters initialized.", port.Fields{
		"cache_enabled":     searchCache != nil,
		"history_enabled":   searchHistory != nil,
		"publisher_enabled": resultsPublisher != nil,
	})

	// --- 4. USE CASES ---
	searchListingsUC := usecase.NewSearchListingsUseCase(fetcher, appConfig.Search.MaxPages)
	runSearchUC := usecase.NewRunSearchUseCase(searchListingsUC, searchCache, searchHistory, resultsPublisher)
	batchSearchUC := usecase.NewBatchSearchUseCase(runSearchUC, appConfig.Search.BatchConcurrency)
	contactAgentUC := usecase.NewContactAgentUseCase(fetcher)
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	if appConfig.Scheduler.SearchesFile != "" {
		searches, err := configs.LoadScheduledSearches(appConfig.Scheduler.SearchesFile)
		if err != nil {
			appLogger.Error("Failed to load scheduled searches", err, port.Fields{"file": appConfig.Scheduler.SearchesFile})
			application.closeResources()
			return nil, err
		}
		searchScheduler, err := scheduler.NewSearchScheduler(runSearchUC, searches, baseLogger)
		if err != nil {
			appLogger.Error("Failed to create search scheduler", err, nil)
			application.closeResources()
			return nil, err
		}
		application.searchScheduler = searchScheduler
		appLogger.Info("Search scheduler initialized.", port.Fields{"searches": len(searches)})
	}

	handlers := rest.NewSearchHandlers(runSearchUC, batchSearchUC, contactAgentUC, constants.DefaultSearch())
	application.server = rest.NewServer(appConfig.Rest.PORT, handlers, baseLogger, appConfig.Rest.CORSAllowedOrigins)

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	appCtx = contextkeys.ContextWithLogger(appCtx, a.logger)

	var wg sync.WaitGroup
	componentErrors := make(chan error, 2)

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			a.logger.Error("REST server shutdown failed", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.server.Start(); err != nil {
			componentErrors <- fmt.Errorf("rest server error: %w", err)
		}
	}()

	if a.searchScheduler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.searchScheduler.Start(appCtx); err != nil && !errors.Is(err, context.Canceled) {
				componentErrors <- fmt.Errorf("search scheduler error: %w", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-componentErrors:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	cancelApp()
	return runErr
}

// closeResources освобождает все, что успело создаться. Безопасен при частичной инициализации.
func (a *App) closeResources() {
	logger := a.logger
	if logger == nil {
		logger = contextkeys.LoggerFromContext(context.Background())
	}

	if a.searchScheduler != nil {
		if err := a.searchScheduler.Close(); err != nil {
			logger.Error("Error closing search scheduler", err, nil)
		}
	}
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		logger.Info("PostgreSQL pool closed.", nil)
	}

	logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			log.Printf("App: Error closing log file: %v\n", err)
		}
	}
}
