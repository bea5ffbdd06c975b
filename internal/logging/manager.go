package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Имена компонентов симуляции; у каждого свой файл лога
const (
	ComponentWorld    = "world"
	ComponentSim      = "sim"
	ComponentEventBus = "eventbus"
	ComponentMetrics  = "metrics"
)

// LoggerManager хранит по одному логгеру на компонент
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{loggers: make(map[string]*Logger)}
	})
	return globalManager
}

// Component возвращает логгер компонента, создавая его при первом обращении.
// Если файл лога открыть не удалось, логгер пишет только в консоль
// и в реестр не попадает.
func (lm *LoggerManager) Component(name string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[name]; ok {
		return logger
	}
	logger, err := NewLogger(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "логгер %s: %v, вывод только в консоль\n", name, err)
		return newLoggerWithSinks(name, zapcore.Lock(os.Stdout), nil)
	}
	lm.loggers[name] = logger
	return logger
}

// each вызывает fn для каждого созданного логгера под блокировкой
func (lm *LoggerManager) each(fn func(*Logger)) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	for _, logger := range lm.loggers {
		fn(logger)
	}
}

// CloseAll закрывает логгеры компонентов и очищает реестр
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for name, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("закрытие логгера %s: %w", name, err)
		}
	}
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

func GetWorldLogger() *Logger { return GetLoggerManager().Component(ComponentWorld) }
func GetSimLogger() *Logger { return GetLoggerManager().Component(ComponentSim) }
func GetEventBusLogger() *Logger { return GetLoggerManager().Component(ComponentEventBus) }
func GetMetricsLogger() *Logger { return GetLoggerManager().Component(ComponentMetrics) }
