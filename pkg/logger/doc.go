// Package logger builds log/slog loggers with the toolkit's conventions:
// JSON output by default, level and format switchable through options or the
// LOG_LEVEL and LOG_FORMAT environment variables.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttrs(slog.String("component", "workerpool")),
//	)
//
//	pool, err := workerpool.New(4, 64, workerpool.WithLogger(log))
package logger
