package cli

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/clients/cache"
	"max.ks1230/expense-assistant/internal/clients/gemini"
	"max.ks1230/expense-assistant/internal/clients/kafka"
	"max.ks1230/expense-assistant/internal/config"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/messages"
	"max.ks1230/expense-assistant/internal/model/reports"
	"max.ks1230/expense-assistant/internal/model/storage"
	"max.ks1230/expense-assistant/internal/tracing"
)

type messageSender interface {
	SendMessage(text string, userID int64) error
}

// app is the message service with everything it depends on.
type app struct {
	conf    *config.Service
	service *messages.Service
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func loadConfig() (*config.Service, error) {
	conf, err := config.New(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "init config")
	}
	return conf, nil
}

func newApp(conf *config.Service, sender messageSender) (*app, error) {
	a := &app{conf: conf}

	tracer, err := tracing.Init(conf.App().ServiceName(), conf.Tracing())
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeLogged("tracer", tracer))

	sessions := messages.NewSessions(gemini.New(conf.Gemini()))

	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka())
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, producer.Close)
		sessions.AddHook(func(userID int64, sess *messages.Session) {
			sess.Storage.Subscribe(producer.Subscriber(userID))
		})
	}

	generator := reports.NewGenerator(sessions, nil)
	if conf.Memcached().Enabled() {
		mc, err := cache.NewMemcache(conf.Memcached())
		if err != nil {
			a.Close()
			return nil, err
		}
		generator = reports.NewGenerator(sessions, mc)
	}
	sessions.AddHook(func(userID int64, sess *messages.Session) {
		sess.Storage.Subscribe(func(ev storage.Event) {
			if ev.Kind != storage.EventViewChanged {
				generator.Invalidate(userID)
			}
		})
	})

	a.service = messages.NewService(sender, sessions, generator)
	return a, nil
}

func closeLogged(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close "+name, zap.Error(err))
		}
	}
}
