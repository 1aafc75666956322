package pool

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/zylabs/gopool/pkg/pool"

// tracer returns the Tracer derived from the pool's configured
// TracerProvider. With no provider configured (the default) this is the
// global no-op provider's tracer, so spans below cost a handful of
// pointer-dereferences unless the embedding program installs a real SDK
// TracerProvider via WithTracerProvider.
func (p *Pool) tracer() trace.Tracer {
	return p.tracerProvider.Tracer(tracerName)
}

func (p *Pool) startSubmitSpan(ctx context.Context, id uuid.UUID) (context.Context, trace.Span) {
	return p.tracer().Start(ctx, "gopool.submit", trace.WithAttributes(
		attribute.String("gopool.submission_id", id.String()),
		attribute.String("gopool.mode", p.mode.String()),
	))
}

func (p *Pool) startExecSpan(ctx context.Context, id uuid.UUID, workerID uint64) (context.Context, trace.Span) {
	return p.tracer().Start(ctx, "gopool.exec", trace.WithAttributes(
		attribute.String("gopool.submission_id", id.String()),
		attribute.Int64("gopool.worker_id", int64(workerID)),
	))
}

func recordSpanOutcome(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return
	}
	span.SetStatus(codes.Ok, "")
}
