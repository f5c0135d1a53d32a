package tracing

import (
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracingConfig struct {
	on   bool
	addr string
}

func (c tracingConfig) Enabled() bool         { return c.on }
func (c tracingConfig) AgentHostPort() string { return c.addr }

func Test_Init_WhenDisabled_ShouldKeepNoopTracer(t *testing.T) {
	closer, err := Init("expense-assistant", tracingConfig{})
	require.NoError(t, err)

	assert.IsType(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())
	assert.NoError(t, closer.Close())
}

func Test_Init_WhenEnabled_ShouldInstallTracer(t *testing.T) {
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	closer, err := Init("expense-assistant", tracingConfig{on: true, addr: "127.0.0.1:6831"})
	require.NoError(t, err)
	defer closer.Close()

	assert.NotEqual(t, opentracing.NoopTracer{}, opentracing.GlobalTracer())
}
