package httpx

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

type restyAdapter slog.Logger

// RestyAdapter lets resty write through slog.
func RestyAdapter(logger *slog.Logger) resty.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return (*restyAdapter)(logger.With(slog.String("component", "resty")))
}

func (l *restyAdapter) Errorf(message string, v ...interface{}) {
	(*slog.Logger)(l).Error(format(message, v))
}

func (l *restyAdapter) Warnf(message string, v ...interface{}) {
	(*slog.Logger)(l).Warn(format(message, v))
}

func (l *restyAdapter) Debugf(message string, v ...interface{}) {
	(*slog.Logger)(l).Debug(format(message, v))
}

func format(message string, v []interface{}) string {
	if len(v) > 0 {
		return fmt.Sprintf(message, v...)
	}
	return message
}
