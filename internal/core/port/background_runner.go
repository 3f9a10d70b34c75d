package port

import "context"

// BackgroundRunnerPort - компонент, работающий в фоне до отмены контекста
// (планировщик поисков)
type BackgroundRunnerPort interface {
	// Start блокируется до отмены ctx или критической ошибки
	Start(ctx context.Context) error

	// Close корректно останавливает компонент
	Close() error
}
