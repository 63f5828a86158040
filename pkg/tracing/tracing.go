package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// InitTracing configures sampling, the trace exporter and the metrics
// exporters. It is a no-op when tracing is disabled.
// codecov:ignore:start
func InitTracing(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return err
	}
	if err := initMetricsExporters(cfg, log); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	switch cfg.TraceExporter {
	case "jaeger":
		return initJaegerExporter(cfg, log)
	case "zipkin":
		return initZipkinExporter(cfg, log)
	case "xray":
		return initXRayExporter(cfg, log)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

// initMetricsExporters accepts a comma separated exporter list
func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, exporter := range strings.Split(cfg.MetricsExporter, ",") {
		exporter = strings.TrimSpace(exporter)
		switch exporter {
		case "":
			continue
		case "prometheus":
			if err := initPrometheusExporter(cfg, log); err != nil {
				return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
			}
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", exporter)
		}
	}

	return registerCustomViews()
}

func registerCustomViews() error {
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := view.Register(DomainViews...); err != nil {
		return fmt.Errorf("failed to register domain views: %w", err)
	}
	return nil
}

func initJaegerExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	log.WithField("endpoint", cfg.JaegerEndpoint).Info("Jaeger exporter initialized")
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}

	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	log.WithField("endpoint", cfg.ZipkinEndpoint).Info("Zipkin exporter initialized")
	return nil
}

func initXRayExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.XRayRegion == "" {
		return fmt.Errorf("AWS region is required for X-Ray exporter")
	}

	exporter, err := aws.NewExporter(
		aws.WithRegion(cfg.XRayRegion),
		aws.WithVersion("latest"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}

	trace.RegisterExporter(exporter)
	log.WithField("region", cfg.XRayRegion).Info("AWS X-Ray exporter initialized")
	return nil
}

// initPrometheusExporter serves /metrics on its own port when one is set
func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Error(fmt.Sprintf("Prometheus exporter error: %v", err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		log.Info("Prometheus metrics server not started (port not configured)")
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}
		log.WithField("port", cfg.PrometheusPort).Info("Starting Prometheus metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(fmt.Sprintf("Prometheus metrics server stopped: %v", err))
		}
	}()
	return nil
}

// codecov:ignore:end
