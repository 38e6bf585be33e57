package editor

import (
	"errors"
	"log/slog"

	"github.com/arloliu/malie/container"
	"github.com/arloliu/malie/internal/logging"
	"github.com/arloliu/malie/internal/options"
	"github.com/arloliu/malie/segment"
)

// Config holds Editor settings.
type Config struct {
	logger        *slog.Logger
	classifier    segment.Classifier
	filter        bool
	engineOptions []container.Option
}

func newConfig() *Config {
	return &Config{
		logger:     logging.Discard(),
		classifier: segment.DefaultClassifier{},
	}
}

// Option is a functional option for configuring an Editor.
type Option = options.Option[*Config]

// WithLogger sets the logger of the editor and its engine.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logging.OrDiscard(logger)
	})
}

// WithClassifier sets the label classifier used in filter mode.
func WithClassifier(classifier segment.Classifier) Option {
	return options.New(func(c *Config) error {
		if classifier == nil {
			return errors.New("nil classifier")
		}
		c.classifier = classifier

		return nil
	})
}

// WithFilter sets the initial filter mode.
func WithFilter(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.filter = enabled
	})
}

// WithEngineOptions passes options through to the container engine.
func WithEngineOptions(opts ...container.Option) Option {
	return options.NoError(func(c *Config) {
		c.engineOptions = append(c.engineOptions, opts...)
	})
}
