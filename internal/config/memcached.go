package config

import "time"

const defaultCacheTTLSeconds = 600

type MemcachedConfig struct {
	NodeHosts  []string `yaml:"hosts"`
	TTLSeconds int32    `yaml:"ttl-seconds"`
}

func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

func (s *MemcachedConfig) Expiration() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}
