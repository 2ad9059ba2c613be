package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type TableConfig struct {
	// Stake is the fallback betting unit for areas configured without one.
	Stake int64 `env:"TABLE_STAKE" envDefault:"10"`
	// MaxBetUnits caps a bet at this many multiples of the stake.
	MaxBetUnits int64 `env:"TABLE_MAX_BET_UNITS" envDefault:"10"`
	// StartingBalance seeds players the ledger has never seen.
	StartingBalance int64 `env:"TABLE_STARTING_BALANCE" envDefault:"1000"`

	DealerCardDelay time.Duration `env:"TABLE_DEALER_CARD_DELAY" envDefault:"1s"`
	SettlePause     time.Duration `env:"TABLE_SETTLE_PAUSE" envDefault:"3s"`
}

func LoadTable() (TableConfig, error) {
	var cfg TableConfig
	err := env.Parse(&cfg)
	return cfg, err
}
