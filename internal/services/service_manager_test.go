package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/masq-social/masq-service/internal/events"
	"github.com/masq-social/masq-service/internal/moderation"
	"github.com/masq-social/masq-service/internal/repositories/memory"
	"github.com/masq-social/masq-service/internal/sessions"
	"github.com/masq-social/masq-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServiceManager(t *testing.T) ServiceManager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sanitizer, err := moderation.NewSanitizer(moderation.DefaultWords, '*')
	require.NoError(t, err)

	return NewServiceManager(
		memory.NewRepository(),
		sessions.NewStore(nil, time.Minute),
		sanitizer,
		events.NewMockEventPublisher(logger),
		logger,
		validator.New(),
	)
}

func TestServiceManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	sm := newTestServiceManager(t)

	assert.Panics(t, func() { sm.Message() })

	require.NoError(t, sm.Initialize(ctx))
	require.NoError(t, sm.Initialize(ctx)) // second call is a no-op

	assert.NotNil(t, sm.Auth())
	assert.NotNil(t, sm.User())
	assert.NotNil(t, sm.Message())
	assert.NotNil(t, sm.Conversation())
	assert.NotNil(t, sm.Guess())
	assert.NotNil(t, sm.Export())

	require.NoError(t, sm.HealthCheck(ctx))

	require.NoError(t, sm.Shutdown(ctx))
	assert.Error(t, sm.HealthCheck(ctx))
}
