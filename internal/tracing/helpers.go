package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DBOperation represents the type of database operation being traced.
type DBOperation string

const (
	DBOperationFind      DBOperation = "find"
	DBOperationUpsert    DBOperation = "upsert"
	DBOperationUpdate    DBOperation = "update"
	DBOperationDelete    DBOperation = "delete"
	DBOperationAggregate DBOperation = "aggregate"
)

// StartDBSpan creates a span for a MongoDB operation against a named
// collection. Returns the new context and a function to end the span:
//
//	ctx, endSpan := tracing.StartDBSpan(ctx, "usuarios", tracing.DBOperationUpdate)
//	defer endSpan(err)
func StartDBSpan(ctx context.Context, collection string, operation DBOperation) (context.Context, func(error)) {
	tracer := otel.Tracer("praca/db")

	spanName := string(operation)
	if collection != "" {
		spanName = spanName + " " + collection
	}

	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.operation", string(operation)),
		),
	)
	if collection != "" {
		span.SetAttributes(attribute.String("db.mongodb.collection", collection))
	}

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// StartSpan creates a span for a general operation:
//
//	ctx, endSpan := tracing.StartSpan(ctx, "import_facilities")
//	defer endSpan(err)
func StartSpan(ctx context.Context, name string) (context.Context, func(error)) {
	tracer := otel.Tracer("praca")

	ctx, span := tracer.Start(ctx, name)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// AddEvent adds an event to the current span.
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SetAttributes sets attributes on the current span.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attrs...)
}
