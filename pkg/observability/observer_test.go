package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/delaneyj/hookparty/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{observability.LevelRender, "render"},
		{observability.LevelCommit, "commit"},
		{observability.LevelWarn, "warn"},
		{observability.LevelFault, "fault"},
		{99, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

// should keep render events below a debug handler
func TestLevelSlogLevel(t *testing.T) {
	assert.Less(t, observability.LevelRender.SlogLevel(), slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, observability.LevelCommit.SlogLevel())
	assert.Equal(t, slog.LevelWarn, observability.LevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelError, observability.LevelFault.SlogLevel())
}

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: observability.LevelRender.SlogLevel()}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.Event{
		Type:      "hooks.render",
		Level:     observability.LevelRender,
		Time:      time.Now(),
		Root:      "r1",
		Component: "Counter",
		Data:      map[string]any{"generation": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "msg=hooks.render")
	assert.Contains(t, out, "root=r1")
	assert.Contains(t, out, "component=Counter")
	assert.Contains(t, out, "generation=3")
}

// should not format events below the handler level
func TestSlogObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.Event{Type: "hooks.render", Level: observability.LevelRender})
	obs.OnEvent(context.Background(), observability.Event{Type: "hooks.commit", Level: observability.LevelCommit})
	assert.Empty(t, buf.String())

	obs.OnEvent(context.Background(), observability.Event{Type: "hooks.fault", Level: observability.LevelFault})
	assert.Contains(t, buf.String(), "hooks.fault")
}

func TestMultiObserver(t *testing.T) {
	a, b := observability.NewRecorder(), observability.NewRecorder()
	multi := observability.NewMultiObserver(a, nil, b, observability.NoOpObserver{})

	multi.OnEvent(context.Background(), observability.Event{Type: "hooks.commit"})

	require.Len(t, a.Events(), 1)
	require.Len(t, b.Events(), 1)
	assert.Equal(t, observability.EventType("hooks.commit"), b.Events()[0].Type)
}

func TestRecorderCount(t *testing.T) {
	r := observability.NewRecorder()
	ctx := context.Background()
	r.OnEvent(ctx, observability.Event{Type: "hooks.render", Component: "A"})
	r.OnEvent(ctx, observability.Event{Type: "hooks.render", Component: "B"})
	r.OnEvent(ctx, observability.Event{Type: "hooks.render", Component: "A"})
	r.OnEvent(ctx, observability.Event{Type: "hooks.commit"})

	assert.Equal(t, 2, r.Count("hooks.render", "A"))
	assert.Equal(t, 3, r.Count("hooks.render", ""))
	assert.Equal(t, 1, r.Count("hooks.commit", ""))

	r.Reset()
	assert.Empty(t, r.Events())
}
