package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(Options{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan_WithRecorder(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, root := StartSpan(context.Background(), "test", "Root")
	_, child := StartSpan(ctx, "test", "Child")
	RecordError(child, errors.New("boom"))
	child.End()
	root.End()

	assert.NotEmpty(t, ExtractTraceID(ctx))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Child", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Equal(t, "", ExtractTraceID(context.Background()))
}

func TestRecordError_Nil(t *testing.T) {
	_, span := StartSpan(context.Background(), "test", "noop")
	defer span.End()
	RecordError(span, nil)
}
