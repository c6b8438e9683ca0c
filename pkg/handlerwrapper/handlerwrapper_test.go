package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type ping struct {
	Name string `json:"name"`
}

type pong struct {
	Greeting string `json:"greeting"`
}

type countingMetrics struct {
	attempts, successes, failures int
}

func (c *countingMetrics) RecordHandlerAttempt(context.Context, string)                { c.attempts++ }
func (c *countingMetrics) RecordHandlerSuccess(context.Context, string)                { c.successes++ }
func (c *countingMetrics) RecordHandlerFailure(context.Context, string)                { c.failures++ }
func (c *countingMetrics) RecordHandlerDuration(context.Context, string, time.Duration) {}

func TestWrapTransformingTyped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	greet := func(_ context.Context, p *ping) ([]Result, error) {
		if p.Name == "" {
			return nil, errors.New("no name")
		}
		return []Result{{Topic: "pong", Payload: pong{Greeting: "hi " + p.Name}, Metadata: map[string]string{"k": "v"}}}, nil
	}

	tests := []struct {
		name        string
		payload     []byte
		wantErr     bool
		wantSuccess int
		wantFailure int
	}{
		{name: "success", payload: []byte(`{"name":"ace"}`), wantSuccess: 1},
		{name: "handler error", payload: []byte(`{}`), wantErr: true, wantFailure: 1},
		{name: "bad json", payload: []byte(`{`), wantErr: true, wantFailure: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &countingMetrics{}
			h := WrapTransformingTyped("test.ping", logger, tracer, metrics, greet)

			in := message.NewMessage("in-1", tt.payload)
			middleware.SetCorrelationID("corr-1", in)

			out, err := h(in)
			assert.Equal(t, 1, metrics.attempts)
			assert.Equal(t, tt.wantSuccess, metrics.successes)
			assert.Equal(t, tt.wantFailure, metrics.failures)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "pong", out[0].Metadata.Get(TopicMetadataKey))
			assert.Equal(t, "v", out[0].Metadata.Get("k"))
			assert.Equal(t, "corr-1", middleware.MessageCorrelationID(out[0]))

			var got pong
			require.NoError(t, json.Unmarshal(out[0].Payload, &got))
			assert.Equal(t, "hi ace", got.Greeting)
		})
	}
}

func TestNewMessageRequiresTopic(t *testing.T) {
	_, err := NewMessage(Result{Payload: pong{}}, "")
	assert.Error(t, err)

	m, err := NewMessage(Result{Topic: "t", Payload: pong{}}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, middleware.MessageCorrelationID(m))
}
