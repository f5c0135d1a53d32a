package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/logger"
)

type config interface {
	Enabled() bool
	AgentHostPort() string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init installs a jaeger tracer as the global opentracing tracer. When
// tracing is disabled the global no-op tracer stays in place.
func Init(serviceName string, cfg config) (io.Closer, error) {
	if !cfg.Enabled() {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		return nopCloser{}, nil
	}

	jcfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: cfg.AgentHostPort(),
		},
	}

	closer, err := jcfg.InitGlobalTracer(serviceName)
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	logger.Info("tracing enabled", zap.String("agent", cfg.AgentHostPort()))
	return closer, nil
}
