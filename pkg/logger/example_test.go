package logger_test

import (
	"context"

	"songvault/pkg/logger"
)

func ExampleNewWithContext() {
	ctx := logger.ContextWithTraceID(context.Background(), "req-xyz-789")

	log := logger.NewWithContext(ctx, "songRepository").Function("Search")
	log.Info("searching songs", "query", "love")
}
