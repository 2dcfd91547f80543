package logging

import (
	"sort"
	"sync"
)

// LoggerManager раздаёт логгеры компонентов, производные от глобального.
// Пока глобальный логгер не задан, компоненты получают nil и молчат.
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	levels  map[string]LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers: make(map[string]*Logger),
			levels:  make(map[string]LogLevel),
		}
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) *Logger {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger
	}
	lm.mu.RUnlock()

	base := DefaultLogger()
	if base == nil {
		return nil
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if logger, exists := lm.loggers[component]; exists {
		return logger
	}

	logger := base.WithComponent(component)
	if level, ok := lm.levels[component]; ok {
		logger.minConsoleLevel = level
	}
	lm.loggers[component] = logger
	return logger
}

// SetLogLevel задаёт порог консоли для компонента, в том числе на будущее
func (lm *LoggerManager) SetLogLevel(component string, level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.levels[component] = level
	if logger, exists := lm.loggers[component]; exists {
		logger.minConsoleLevel = level
	}
}

// ListComponents возвращает компоненты, уже получившие логгер
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// reset сбрасывает кэш после смены глобального логгера
func (lm *LoggerManager) reset() {
	lm.mu.Lock()
	lm.loggers = make(map[string]*Logger)
	lm.mu.Unlock()
}

// Удобные функции для получения логгеров
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().GetLogger(component)
}

func GetSquareLogger() *Logger {
	return GetComponentLogger("square")
}

func GetGenerationLogger() *Logger {
	return GetComponentLogger("generation")
}

func GetStorageLogger() *Logger {
	return GetComponentLogger("storage")
}
