package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewWithConfig(Config{
		Name:   "test",
		Format: FormatText,
		Level:  slog.LevelDebug,
		Writer: buf,
	})
}

func TestNew_Success(t *testing.T) {
	logger := New("test-package")

	assert.NotNil(t, logger)
	assert.IsType(t, &SlogLogger{}, logger)
}

func TestNewWithConfig_Formats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatText} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithConfig(Config{Name: "svc", Format: format, Writer: &buf})

			logger.Info("hello", "key", "value")

			assert.Contains(t, buf.String(), "hello")
			assert.Contains(t, buf.String(), "svc")
		})
	}
}

func TestChainedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).File("album.controller").Function("AddSong")

	logger.Info("song added")

	out := buf.String()
	assert.Contains(t, out, "file=album.controller")
	assert.Contains(t, out, "function=AddSong")
}

func TestError_ReturnsMessage(t *testing.T) {
	logger := New("test")

	err := logger.Error("test error message")

	require.Error(t, err)
	assert.Equal(t, "test error message", err.Error())
}

func TestErrorWithType_WrapsCategory(t *testing.T) {
	category := errors.New("not found")
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	err := logger.ErrorWithType(category, "album not found", "albumID", 3)

	assert.ErrorIs(t, err, category)
	assert.Equal(t, "not found: album not found", err.Error())
	assert.Contains(t, buf.String(), "albumID=3")
}

func TestErr_ReturnsOriginal(t *testing.T) {
	logger := New("test")

	originalErr := errors.New("original error")

	assert.Equal(t, originalErr, logger.Err("context message", originalErr))
	assert.Nil(t, logger.Err("message", nil))
}

func TestErrMsg(t *testing.T) {
	err := New("test").ErrMsg("simple error message")

	require.Error(t, err)
	assert.Equal(t, "simple error message", err.Error())
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	done := newBufferLogger(&buf).Timer("search")

	done()

	assert.Contains(t, buf.String(), "operation=search")
}

func TestTraceIDContext(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "trace-123")

	assert.Equal(t, "trace-123", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}

func TestTraceFromContext(t *testing.T) {
	t.Run("with trace id", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := ContextWithTraceID(context.Background(), "context-trace-123")

		newBufferLogger(&buf).TraceFromContext(ctx).Info("traced")

		assert.Contains(t, buf.String(), "traceID=context-trace-123")
	})

	t.Run("without trace id", func(t *testing.T) {
		var buf bytes.Buffer

		newBufferLogger(&buf).TraceFromContext(context.Background()).Info("untraced")

		assert.Contains(t, buf.String(), "untraced")
		assert.NotContains(t, buf.String(), "traceID")
	})
}

func TestTraceID_PersistsAcrossLogCalls(t *testing.T) {
	var buf bytes.Buffer
	traced := newBufferLogger(&buf).WithTraceID("persistent-trace-111")

	traced.Info("first log")
	traced.Warn("second log")
	_ = traced.Error("third log")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, string(line), "traceID=persistent-trace-111")
	}
}
