package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestStartDBSpan(t *testing.T) {
	ctx, endSpan := StartDBSpan(context.Background(), "usuarios", DBOperationUpdate)
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	endSpan(nil)
}

func TestStartDBSpanRecordsError(t *testing.T) {
	_, endSpan := StartDBSpan(context.Background(), "servicos", DBOperationAggregate)
	// Ending with an error must not panic even without a configured provider.
	endSpan(errors.New("boom"))
}

func TestStartSpan(t *testing.T) {
	ctx, endSpan := StartSpan(context.Background(), "import_facilities")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	AddEvent(ctx, "row_processed", attribute.Int("linha", 2))
	SetAttributes(ctx, attribute.String("arquivo", "servicos.csv"))

	endSpan(nil)
}
