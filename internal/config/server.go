package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	// PostgresDSN is optional: without it the server runs on the in-memory
	// ledger, which is enough for local play.
	PostgresDSN string `env:"POSTGRES_DSN"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// Areas lists the casino map zones to open, as "id:stake" pairs.
	Areas string `env:"CASINO_AREAS" envDefault:"blackjack-1:10"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// AreaDef is one configured table zone.
type AreaDef struct {
	ID    string
	Stake int64
}

// ParseAreas expands the CASINO_AREAS value. A pair without a stake uses the
// table default.
func (c ServerConfig) ParseAreas(defaultStake int64) ([]AreaDef, error) {
	var out []AreaDef
	for _, part := range strings.Split(c.Areas, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, stakeStr, found := strings.Cut(part, ":")
		if id == "" {
			return nil, fmt.Errorf("area %q has no id", part)
		}
		stake := defaultStake
		if found {
			v, err := strconv.ParseInt(stakeStr, 10, 64)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("area %q has invalid stake %q", id, stakeStr)
			}
			stake = v
		}
		out = append(out, AreaDef{ID: id, Stake: stake})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("CASINO_AREAS %q defines no areas", c.Areas)
	}
	return out, nil
}
