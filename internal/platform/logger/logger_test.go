package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "", "bogus"} {
		log, err := Setup(LoggerConfig{Level: level})
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, log)
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel() // Enable parallel execution

	attached := slog.Default().With(slog.String("trace_id", "abc"))
	ctx := WithContext(context.Background(), attached)

	assert.Equal(t, attached, FromContext(ctx))
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.Default().With(slog.String("component", "test"))

	// Context logger wins when present.
	attached := slog.Default().With(slog.String("trace_id", "abc"))
	ctx := WithContext(context.Background(), attached)
	assert.Equal(t, attached, FromContextOrDefault(ctx, fallback))

	// Fallback wins over the process default.
	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))

	// Nil fallback degrades to the process default.
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
