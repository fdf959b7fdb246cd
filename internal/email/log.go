package email

import (
	"context"

	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// LogSender escribe el código al log en vez de enviarlo. Para desarrollo
// sin SMTP configurado.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, code string) error {
	logger.L().Info("recovery code (dev delivery)",
		logger.Component("LogSender"),
		logger.String("to", to),
		logger.String("code", code),
	)
	return nil
}
