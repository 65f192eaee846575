package clienterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestObserve_Success(t *testing.T) {
	called := false
	err := Observe(zap.NewNop(), "connect", func(error) { called = true }, func() error {
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called, "hook must not fire on success")
}

func TestObserve_FailureLogsAndInvokesHook(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	boom := &ConnectionError{Message: "refused"}
	var seen error
	err := Observe(log, "connect", func(e error) { seen = e }, func() error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, boom, seen)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connect failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Failed to connect to MCP server: refused", fields["summary"])
	assert.Equal(t, string(CategoryConnection), fields["category"])
}

func TestObserve_NilHook(t *testing.T) {
	boom := errors.New("boom")
	err := Observe(zap.NewNop(), "execute_tool", nil, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
