package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/resort-catalog/internal/store"
)

// LogObserver writes one structured log line per change.
type LogObserver struct {
	logger *zap.SugaredLogger
}

func NewLogObserver() *LogObserver {
	return &LogObserver{logger: zap.S().Named("changes")}
}

func (o *LogObserver) OnChange(_ context.Context, subject store.Subject) error {
	action := subject.LastAction()
	fields := []any{"table", subject.Table(), "action", string(action.Kind)}
	if action.Object != nil {
		fields = append(fields, "object", action.Object)
	}
	if action.Old != nil {
		fields = append(fields, "old", action.Old, "new", action.New)
	}
	o.logger.Infow("data changed", fields...)
	return nil
}
