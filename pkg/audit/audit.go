package audit

import (
	"context"

	"github.com/ryantriananda/fms/pkg/log"
)

type AuditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

// LogAuditLogger records audit entries through the application logger.
// Audit-log durability is out of scope; entries live as structured log lines.
type LogAuditLogger struct {
	logger log.Logger
}

func NewLogAuditLogger(logger log.Logger) *LogAuditLogger {
	return &LogAuditLogger{logger: logger}
}

func (a *LogAuditLogger) Log(ctx context.Context, action string, data interface{}) error {
	a.logger.Info(ctx, "audit", "action", action, "data", data)
	return nil
}
