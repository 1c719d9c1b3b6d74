package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/lkpd/internal/store"
)

func event(id int, success bool) store.LLMEvent {
	return store.LLMEvent{
		ID:        id,
		Timestamp: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Purpose:  "worksheet",
			Success:  success,
		},
	}
}

func TestFailedEvents(t *testing.T) {
	events := []store.LLMEvent{event(5, false), event(4, true), event(3, false), event(2, false)}

	got := failedEvents(events, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 5, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	}
	assert.Len(t, failedEvents(events, 0), 3)
}

func TestWriteEventTable(t *testing.T) {
	var buf bytes.Buffer
	writeEventTable(&buf, nil)
	assert.Contains(t, buf.String(), "Belum ada permintaan")

	buf.Reset()
	writeEventTable(&buf, []store.LLMEvent{event(7, true), event(8, false)})
	out := buf.String()
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestWriteEventSkipsEmptyFields(t *testing.T) {
	e := event(9, false)
	e.ErrorMessage = "HTTP 500"
	e.RequestBody = "Buatkan LKPD"

	var buf bytes.Buffer
	writeEvent(&buf, &e)
	out := buf.String()
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "HTTP 500")
	assert.Contains(t, out, "Buatkan LKPD")
	assert.Contains(t, out, "(tidak tersimpan)")
	assert.NotContains(t, out, "Request:")
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	writeUsage(&buf, nil, nil)
	assert.Contains(t, buf.String(), "Belum ada pemakaian")

	buf.Reset()
	writeUsage(&buf,
		[]store.PurposeUsage{{Purpose: "worksheet", Calls: 2, InputTokens: 100, OutputTokens: 900}},
		[]store.ModelUsage{{Model: "no-such-model", Calls: 2, InputTokens: 100, OutputTokens: 900}},
	)
	out := buf.String()
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "TOTAL (sebagian)")
	assert.Contains(t, out, "Harga tidak diketahui untuk: no-such-model")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
