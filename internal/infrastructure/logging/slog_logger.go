package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/rafabene/contenthub-backend/internal/domain/ports"
)

// SlogLogger implementa ports.Logger usando slog do stdlib
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger cria um logger JSON em stdout; níveis inválidos caem em info
func NewSlogLogger(level string) ports.Logger {
	return NewSlogLoggerWithWriter(level, os.Stdout)
}

// NewSlogLoggerWithWriter permite redirecionar a saída (útil em testes)
func NewSlogLoggerWithWriter(level string, w io.Writer) ports.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return &SlogLogger{logger: slog.New(handler)}
}

// parseLevel aceita os nomes do slog sem diferenciar maiúsculas ("DEBUG",
// "warn"); qualquer outro valor vira info
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Component devolve um logger filho etiquetado com o nome do componente,
// para filtrar as linhas de um subsistema na saída agregada
func Component(logger ports.Logger, name string) ports.Logger {
	return logger.With("component", name)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) With(args ...any) ports.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
