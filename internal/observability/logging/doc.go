// Package logging builds the service's log/slog loggers.
//
//	logger := logging.NewLogger()              // LOG_LEVEL, LOG_FORMAT
//	reqLogger := logging.WithRequestID(ctx, logger)
//	reqLogger.Info("Paginated request", "entity", "briefs")
package logging
