package config

import "time"

const defaultMessageTimeout = time.Minute

type AppConfig struct {
	Name           string        `yaml:"name"`
	MessageTimeout time.Duration `yaml:"message-timeout"`
}

func (s *AppConfig) ServiceName() string {
	return s.Name
}

// HandleTimeout bounds the handling of one incoming chat message,
// remote text generation included.
func (s *AppConfig) HandleTimeout() time.Duration {
	return s.MessageTimeout
}
