package config

const defaultMetricsAddr = ":9090"

type MetricsConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (m *MetricsConfig) Addr() string {
	return m.ListenAddr
}
