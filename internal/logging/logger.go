package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int32

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// traceLevel уровень zap ниже Debug для сообщений TRACE
const traceLevel = zapcore.DebugLevel - 1

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня из конфигурации
func ParseLevel(s string) (LogLevel, error) {
	for l := TRACE; l <= ERROR; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return INFO, fmt.Errorf("неизвестный уровень логирования %q", s)
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case TRACE:
		return traceLevel
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Logger представляет логгер компонента.
// Консоль и файл фильтруются по собственным минимальным уровням.
type Logger struct {
	component       string
	zl              *zap.Logger
	file            *os.File
	minConsoleLevel atomic.Int32
	minFileLevel    atomic.Int32
}

var (
	// каталог файловых логов; пустая строка отключает запись в файл
	logDir   string
	logDirMu sync.RWMutex

	defaultLogger   *Logger
	defaultLoggerMu sync.Mutex

	// уровень консоли для новых логгеров
	defaultConsoleLevel atomic.Int32
)

func init() {
	defaultConsoleLevel.Store(int32(INFO))
}

// SetConsoleLevel задаёт уровень консоли для новых логгеров,
// глобального логгера и уже созданных логгеров компонентов
func SetConsoleLevel(level LogLevel) {
	defaultConsoleLevel.Store(int32(level))
	Default().minConsoleLevel.Store(int32(level))

	GetLoggerManager().each(func(logger *Logger) {
		logger.minConsoleLevel.Store(int32(level))
	})
}

// SetOutputDir включает запись логов новых компонентов в указанный каталог
func SetOutputDir(dir string) {
	logDirMu.Lock()
	logDir = dir
	logDirMu.Unlock()
}

func outputDir() string {
	logDirMu.RLock()
	defer logDirMu.RUnlock()
	return logDir
}

// NewLogger создаёт логгер компонента: консоль и, если задан каталог, файл
// <dir>/<component>_<timestamp>.log
func NewLogger(component string) (*Logger, error) {
	var fileSink zapcore.WriteSyncer
	var file *os.File

	if dir := outputDir(); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ошибка создания директории %s: %w", dir, err)
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		filename := filepath.Join(dir, fmt.Sprintf("%s_%s.log", component, timestamp))

		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		file = f
		fileSink = zapcore.AddSync(f)
	}

	logger := newLoggerWithSinks(component, zapcore.Lock(os.Stdout), fileSink)
	logger.file = file
	return logger, nil
}

func newLoggerWithSinks(component string, console, file zapcore.WriteSyncer) *Logger {
	logger := &Logger{component: component}
	logger.minConsoleLevel.Store(defaultConsoleLevel.Load())
	logger.minFileLevel.Store(int32(TRACE))

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encoderCfg.EncodeLevel = encodeLevel
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, console, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= LogLevel(logger.minConsoleLevel.Load()).zapLevel()
		})),
	}
	if file != nil {
		cores = append(cores, zapcore.NewCore(encoder, file, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= LogLevel(logger.minFileLevel.Load()).zapLevel()
		})))
	}

	logger.zl = zap.New(zapcore.NewTee(cores...)).Named(component)
	return logger
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == traceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if l == nil || l.zl == nil {
		return
	}
	if !l.zl.Core().Enabled(level.zapLevel()) {
		return
	}
	if ce := l.zl.Check(level.zapLevel(), fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Trace логирует сообщение уровня TRACE
func (l *Logger) Trace(format string, args ...interface{}) { l.log(TRACE, format, args...) }

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) { l.log(INFO, format, args...) }

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) { l.log(WARN, format, args...) }

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// SetLevels задаёт минимальные уровни консоли и файла
func (l *Logger) SetLevels(console, file LogLevel) {
	l.minConsoleLevel.Store(int32(console))
	l.minFileLevel.Store(int32(file))
}

// Component возвращает имя компонента
func (l *Logger) Component() string {
	return l.component
}

// Close сбрасывает буферы и закрывает файл логов
func (l *Logger) Close() error {
	if l == nil || l.zl == nil {
		return nil
	}
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// InitDefaultLogger инициализирует глобальный логгер с записью в файл.
// Если каталог не задан через SetOutputDir, используется logs.
func InitDefaultLogger(component string) error {
	if outputDir() == "" {
		SetOutputDir("logs")
	}

	logger, err := NewLogger(component)
	if err != nil {
		return err
	}

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger != nil {
		defaultLogger.Close()
		defaultLogger = nil
	}
}

// Default возвращает глобальный логгер; без инициализации пишет только в консоль
func Default() *Logger {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newLoggerWithSinks("default", zapcore.Lock(os.Stdout), nil)
	}
	return defaultLogger
}

// Trace логирует сообщение уровня TRACE в глобальный логгер
func Trace(format string, args ...interface{}) { Default().Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG в глобальный логгер
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info логирует сообщение уровня INFO в глобальный логгер
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn логирует сообщение уровня WARN в глобальный логгер
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error логирует сообщение уровня ERROR в глобальный логгер
func Error(format string, args ...interface{}) { Default().Error(format, args...) }
