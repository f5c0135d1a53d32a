package config

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers"`
	Consumer   string   `yaml:"consumer-group"`
	RepTopic   string   `yaml:"events-topic"`
}

// Enabled reports whether change events should be published.
func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) ConsumerGroup() string {
	return s.Consumer
}

func (s *KafkaConfig) EventsTopic() string {
	return s.RepTopic
}
