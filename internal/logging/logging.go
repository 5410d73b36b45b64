package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup настраивает глобальный zerolog: в development - читаемая консоль,
// иначе JSON. Возвращает настроенный логгер.
func Setup(env, level string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	log.Logger = zl
	return zl
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
