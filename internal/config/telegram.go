package config

const defaultPollTimeout = 60

type TelegramConfig struct {
	ApiToken    string `yaml:"token"`
	PollTimeout int    `yaml:"poll-timeout-seconds"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

func (t *TelegramConfig) PollTimeoutSeconds() int {
	return t.PollTimeout
}
