package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"realestate-search-service/internal/constants"
)

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
}

// RealEstateClientConfig - параметры клиента удаленного GraphQL-сервиса
type RealEstateClientConfig struct {
	SearchURL      string
	ContactBaseURL string
	Origin         string
	UserAgent      string
	RequestTimeout time.Duration
	RandomDelay    time.Duration
	Parallelism    int
}

type SearchConfig struct {
	MaxPages         int
	BatchConcurrency int
}

type CacheConfig struct {
	Enabled bool
	Size    int
	TTL     time.Duration
}

// PostgresConfig - история поисков. Пустой DatabaseURL отключает запись истории.
type PostgresConfig struct {
	DatabaseURL string
	MaxConns    int32
}

// RabbitMQConfig - публикация результатов. Пустой URL отключает публикацию.
type RabbitMQConfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level string
}

// FileLogConfig - JSON-лог в файл с ротацией. Пустой Path отключает файловый лог.
type FileLogConfig struct {
	Path       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

type SchedulerConfig struct {
	SearchesFile string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	RealEstate   RealEstateClientConfig
	Search       SearchConfig
	Cache        CacheConfig
	Postgres     PostgresConfig
	RabbitMQ     RabbitMQConfig
	StdoutLogger StdoutLogConfig
	FileLogger   FileLogConfig
	FluentBit    FluentBitConfig
	Scheduler    SchedulerConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: без него используются переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found (path: %v), using process environment.\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "realestate-search-service")

	cfg.Rest.PORT = getEnvAsString("HTTP_PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.RealEstate.SearchURL = getEnvAsString("SEARCH_ENDPOINT", constants.DefaultSearchEndpoint)
	cfg.RealEstate.ContactBaseURL = getEnvAsString("CONTACT_AGENT_BASE_URL", constants.DefaultContactAgentBaseURL)
	cfg.RealEstate.Origin = getEnvAsString("SITE_ORIGIN", constants.DefaultSiteOrigin)
	cfg.RealEstate.UserAgent = getEnvAsString("USER_AGENT", "")
	cfg.RealEstate.RequestTimeout = time.Duration(getEnvAsInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond
	cfg.RealEstate.RandomDelay = time.Duration(getEnvAsInt("REQUEST_RANDOM_DELAY_MS", 0)) * time.Millisecond
	cfg.RealEstate.Parallelism = getEnvAsInt("REQUEST_PARALLELISM", 2)

	cfg.Search.MaxPages = getEnvAsInt("SEARCH_MAX_PAGES", 50)
	cfg.Search.BatchConcurrency = getEnvAsInt("BATCH_SEARCH_CONCURRENCY", 4)
	if cfg.Search.MaxPages <= 0 {
		return nil, fmt.Errorf("SEARCH_MAX_PAGES must be positive, got %d", cfg.Search.MaxPages)
	}

	cfg.Cache.Size = getEnvAsInt("SEARCH_CACHE_SIZE", 256)
	cfg.Cache.TTL = time.Duration(getEnvAsInt("SEARCH_CACHE_TTL_SEC", 300)) * time.Second
	cfg.Cache.Enabled = cfg.Cache.Size > 0

	cfg.Postgres.DatabaseURL = getEnvAsString("DATABASE_URL", "")
	cfg.Postgres.MaxConns = int32(getEnvAsInt("DATABASE_MAX_CONNS", 4))

	cfg.RabbitMQ.URL = getEnvAsString("RABBITMQ_URL", "")

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.FileLogger.Path = getEnvAsString("LOG_FILE_PATH", "")
	cfg.FileLogger.Level = getEnvAsString("LOG_FILE_LEVEL", "info")
	cfg.FileLogger.MaxSizeMB = getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 100)
	cfg.FileLogger.MaxBackups = getEnvAsInt("LOG_FILE_MAX_BACKUPS", 3)
	cfg.FileLogger.MaxAgeDays = getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 28)
	cfg.FileLogger.Compress = getEnvAsBool("LOG_FILE_COMPRESS", true)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.Scheduler.SearchesFile = getEnvAsString("SCHEDULED_SEARCHES_FILE", "")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsList читает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
