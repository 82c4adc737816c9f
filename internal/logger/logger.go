package logger

import (
	"fmt"
	"strings"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
)

// New builds the JSON logger shared by the request logger and the relay service.
// Request headers are left out of access logs so the signature never reaches them.
func New(service, level string) (zerolog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	logger := httplog.NewLogger(service, httplog.Options{
		JSON:     true,
		Concise:  true,
		LogLevel: lvl.String(),
	})
	return logger.Level(lvl), nil
}

func parseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}
