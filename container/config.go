package container

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/internal/logging"
	"github.com/arloliu/malie/internal/options"
	"github.com/arloliu/malie/locate"
)

// MaxStrategies is the number of locate attempts Import makes at most.
const MaxStrategies = 2

// DefaultStrategies is the attempt order used unless WithStrategies overrides it.
var DefaultStrategies = []format.LocateStrategy{
	format.StrategyTrailingLength,
	format.StrategyTerminatorScan,
}

// EngineConfig holds Engine settings.
type EngineConfig struct {
	logger     *slog.Logger
	locator    locate.Locator
	strategies []format.LocateStrategy
}

func newEngineConfig() *EngineConfig {
	return &EngineConfig{
		logger:     logging.Discard(),
		locator:    locate.Heuristic{},
		strategies: DefaultStrategies,
	}
}

// Option is a functional option for configuring an Engine.
type Option = options.Option[*EngineConfig]

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *EngineConfig) {
		c.logger = logging.OrDiscard(logger)
	})
}

// WithLocator replaces the region locator, for containers whose layout is
// known in advance.
func WithLocator(locator locate.Locator) Option {
	return options.New(func(c *EngineConfig) error {
		if locator == nil {
			return errors.New("nil locator")
		}
		c.locator = locator

		return nil
	})
}

// WithStrategies sets the locate strategies tried by Import, in order.
// One or two strategies are accepted.
func WithStrategies(strategies ...format.LocateStrategy) Option {
	return options.New(func(c *EngineConfig) error {
		if len(strategies) == 0 || len(strategies) > MaxStrategies {
			return fmt.Errorf("%w: %d", errs.ErrInvalidStrategyCount, len(strategies))
		}
		c.strategies = append([]format.LocateStrategy(nil), strategies...)

		return nil
	})
}
