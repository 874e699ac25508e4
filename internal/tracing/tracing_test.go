package tracing

import (
	"context"
	"testing"
	"time"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(Config{ServiceName: "praca-api", Enabled: false})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if provider.IsEnabled() {
		t.Error("IsEnabled() = true for a disabled provider")
	}

	// Shutdown must be safe even though no tracer provider was built.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProviderValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing service name", Config{Enabled: true, SamplingRate: 0.1}},
		{"negative sampling rate", Config{ServiceName: "praca-api", Enabled: true, SamplingRate: -0.1}},
		{"sampling rate above 1", Config{ServiceName: "praca-api", Enabled: true, SamplingRate: 1.5}},
		{"unknown exporter", Config{ServiceName: "praca-api", Enabled: true, SamplingRate: 0.1, ExporterType: "jaeger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProvider(tt.cfg); err == nil {
				t.Error("NewProvider() error = nil, want validation failure")
			}
		})
	}
}

func TestNewProviderExporters(t *testing.T) {
	tests := []struct {
		name         string
		exporterType string
		endpoint     string
		samplingRate float64
	}{
		{"otlp-http ratio sampled", "otlp-http", "localhost:4318", 0.1},
		{"otlp-grpc always sampled", "otlp-grpc", "localhost:4317", 1.0},
		{"default exporter never sampled", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(Config{
				ServiceName:  "praca-api",
				Enabled:      true,
				Environment:  "test",
				ExporterType: tt.exporterType,
				OTLPEndpoint: tt.endpoint,
				SamplingRate: tt.samplingRate,
				InsecureMode: true,
			})
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if !provider.IsEnabled() {
				t.Error("IsEnabled() = false")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestProviderTracerCreatesSpans(t *testing.T) {
	provider, err := NewProvider(Config{
		ServiceName:  "praca-api",
		Enabled:      true,
		Environment:  "test",
		ExporterType: "otlp-http",
		SamplingRate: 1.0,
		InsecureMode: true,
	})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	tracer := provider.Tracer("praca/test")
	if tracer == nil {
		t.Fatal("Tracer() returned nil")
	}
	_, span := tracer.Start(context.Background(), "test-span")
	if span == nil {
		t.Fatal("Start() returned a nil span")
	}
	span.End()
}
