package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_ExportsNestedSpans(t *testing.T) {
	// GIVEN an in-memory exporter
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter("keepaway-sim", "test", exporter)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	// WHEN a parent and a failing child span are recorded
	ctx, parent := StartSpan(context.Background(), "run", attribute.Int("rounds", 20))
	_, child := StartSpan(ctx, "simulate")
	EndSpan(child, errors.New("boom"))
	EndSpan(parent, nil)

	// THEN both are exported with parentage and status
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "simulate", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, "run", spans[1].Name)
	assert.Contains(t, spans[1].Attributes, attribute.Int("rounds", 20))
}

func TestInit_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init("keepaway-sim", "test", &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "load-input")
	EndSpan(span, nil)
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"load-input"`)
}
