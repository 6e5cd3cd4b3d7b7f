// Package logging builds the adapter's structured logger.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output formats
//   - A runtime-adjustable level through slog.LevelVar
//   - Request IDs picked up from the context of every *Context call
//
// # Usage
//
//	logger, level, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	ctx := logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "request completed", "status", 200)
//	// {"level":"INFO","msg":"request completed","status":200,"request_id":"req-123"}
//
//	// Later, after a config reload:
//	level.Set(slog.LevelDebug)
package logging
