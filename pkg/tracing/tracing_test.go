package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

func TestInitTracing(t *testing.T) {
	log := logger.NewMockLogger(t)

	tests := []struct {
		name    string
		cfg     config.TracingConfig
		wantErr string
	}{
		{
			name: "disabled",
			cfg:  config.TracingConfig{Enabled: false, TraceExporter: "invalid"},
		},
		{
			name: "no exporters",
			cfg:  config.TracingConfig{Enabled: true, TraceExporter: "none", MetricsExporter: "none"},
		},
		{
			name: "empty exporters",
			cfg:  config.TracingConfig{Enabled: true},
		},
		{
			name:    "unknown trace exporter",
			cfg:     config.TracingConfig{Enabled: true, TraceExporter: "invalid"},
			wantErr: "unsupported trace exporter: invalid",
		},
		{
			name:    "jaeger without endpoint",
			cfg:     config.TracingConfig{Enabled: true, TraceExporter: "jaeger"},
			wantErr: "Jaeger endpoint is required",
		},
		{
			name:    "zipkin without endpoint",
			cfg:     config.TracingConfig{Enabled: true, TraceExporter: "zipkin"},
			wantErr: "Zipkin endpoint is required",
		},
		{
			name:    "xray without region",
			cfg:     config.TracingConfig{Enabled: true, TraceExporter: "xray"},
			wantErr: "AWS region is required",
		},
		{
			name:    "unknown metrics exporter",
			cfg:     config.TracingConfig{Enabled: true, MetricsExporter: "prometheus, statsd"},
			wantErr: "unsupported metrics exporter: statsd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := InitTracing(&cfg, log)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRegisterCustomViews(t *testing.T) {
	assert.NoError(t, registerCustomViews())
	// registering identical views twice is accepted
	assert.NoError(t, registerCustomViews())
}

func TestCount(t *testing.T) {
	assert.NoError(t, view.Register(DomainViews...))

	ctx := context.Background()
	Count(ctx, VisitsCounted)
	Count(ctx, VisitsSkipped, tag.Upsert(KeyReason, "bot"))

	rows, err := view.RetrieveData("kitchen/visits_skipped")
	assert.NoError(t, err)
	assert.NotEmpty(t, rows)
}
