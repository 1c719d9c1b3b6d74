package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lkpd/internal/logger"
	"github.com/abhisek/lkpd/internal/store"
)

func loggingFixture(t *testing.T, inner Provider) (Provider, store.EventRepo, *observer.ObservedLogs) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	core, logs := observer.New(zap.DebugLevel)
	repo := st.EventRepo()
	return WithLogging(inner, ProviderGemini, repo, logger.FromZap(zap.New(core))), repo, logs
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: "# LKPD",
		Usage:   Usage{InputTokens: 30, OutputTokens: 70, TotalTokens: 100},
	})
	p, repo, logs := loggingFixture(t, mock)

	ctx := WithRequestID(WithPurpose(context.Background(), PurposeWorksheet), "req-1")
	_, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "Buatkan LKPD"}}})
	require.NoError(t, err)

	events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, ProviderGemini, e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, PurposeWorksheet, e.Purpose)
	assert.Equal(t, 30, e.InputTokens)
	assert.Equal(t, 70, e.OutputTokens)
	assert.True(t, e.Success)
	assert.Equal(t, "# LKPD", e.ResponseBody)
	assert.Equal(t, "[system]\nsys\n\n[user]\nBuatkan LKPD\n\n", e.RequestBody)

	require.Equal(t, 1, logs.FilterMessage("generation complete").Len())
}

func TestLogging_RecordsFailureWithoutKey(t *testing.T) {
	leak := errors.New(`Post "https://example.test/models/x:generateContent?key=AIza-secret": EOF`)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: leak}})
	p, repo, logs := loggingFixture(t, mock)

	_, err := p.Generate(context.Background(), UserPrompt("x"))
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "unknown", events[0].Purpose)
	assert.NotContains(t, events[0].ErrorMessage, "AIza-secret")
	assert.Contains(t, events[0].ErrorMessage, "[REDACTED]")

	warn := logs.FilterMessage("generation failed").All()
	require.Len(t, warn, 1)
	for _, f := range warn[0].Context {
		assert.False(t, strings.Contains(f.String, "AIza-secret"), "field %s leaks the key", f.Key)
	}
}

func TestLogging_NilRepoAndLogger(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: "ok"}), ProviderMock, nil, nil)
	resp, err := p.Generate(context.Background(), UserPrompt("x"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, "mock", p.ModelID())
}
