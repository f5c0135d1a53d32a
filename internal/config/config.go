package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile = "data/config.yaml"

	geminiKeyEnv     = "GEMINI_API_KEY"
	telegramTokenEnv = "TELEGRAM_TOKEN"
)

type config struct {
	App       AppConfig       `yaml:"app"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type Service struct {
	config config
}

// New reads the yaml file at path. Secrets from the environment, or from a
// .env file next to the binary, override the file.
func New(path string) (*Service, error) {
	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	s, err := Parse(rawYAML)
	if err != nil {
		return nil, err
	}

	if err = godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}
	s.applyEnv()

	return s, s.validate()
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{config: defaults()}
	if err := yaml.Unmarshal(rawYAML, &s.config); err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}
	return s, nil
}

func defaults() config {
	return config{
		App: AppConfig{
			Name:           "expense-assistant",
			MessageTimeout: defaultMessageTimeout,
		},
		Gemini: GeminiConfig{
			URL:     defaultGeminiURL,
			ModelID: defaultGeminiModel,
			Timeout: defaultGeminiTimeout,
		},
		Telegram: TelegramConfig{
			PollTimeout: defaultPollTimeout,
		},
		Memcached: MemcachedConfig{
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Metrics: MetricsConfig{
			ListenAddr: defaultMetricsAddr,
		},
	}
}

func (s *Service) applyEnv() {
	if key := os.Getenv(geminiKeyEnv); key != "" {
		s.config.Gemini.Key = key
	}
	if token := os.Getenv(telegramTokenEnv); token != "" {
		s.config.Telegram.ApiToken = token
	}
}

func (s *Service) validate() error {
	if s.config.Gemini.Key == "" {
		return errors.Errorf("gemini api key is not set, use gemini.api-key or %s", geminiKeyEnv)
	}
	if s.config.Kafka.Enabled() && s.config.Kafka.RepTopic == "" {
		return errors.New("kafka brokers are set but events-topic is empty")
	}
	return nil
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Gemini() *GeminiConfig {
	return &s.config.Gemini
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Metrics() *MetricsConfig {
	return &s.config.Metrics
}

func (s *Service) Tracing() *TracingConfig {
	return &s.config.Tracing
}
