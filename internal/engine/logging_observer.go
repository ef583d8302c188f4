package engine

import "log/slog"

// LoggingObserver logs lifecycle events using structured logging.
// Row decisions are logged at debug level, everything else at info.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	if d, ok := decisionOf(event); ok {
		lo.logger.Debug("merge_row",
			"merge_id", event.MergeID,
			"kind", d.Kind,
			"shard", d.Shard,
			"actual_table", d.ActualTable,
			"logic_table", d.LogicTable,
			"outcome", d.Outcome,
		)
		return
	}

	lo.logger.Info("merge_lifecycle",
		"event", event.Type,
		"merge_id", event.MergeID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
