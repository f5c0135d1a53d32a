package config

type TracingConfig struct {
	On        bool   `yaml:"enabled"`
	AgentAddr string `yaml:"agent-addr"`
}

func (t *TracingConfig) Enabled() bool {
	return t.On
}

func (t *TracingConfig) AgentHostPort() string {
	return t.AgentAddr
}
