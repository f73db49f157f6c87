package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_ReturnsEmbeddedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello", "frame", 3)

	assert.Same(t, logger, FromContext(ctx))
	assert.Contains(t, buf.String(), "frame=3")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AttachesAttributesDownstream(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	ctx, logger := With(ctx, "component", "session")
	logger.Info("started")
	FromContext(ctx).Info("frame", "n", 1)

	assert.Same(t, logger, FromContext(ctx))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("component=session")))
}
