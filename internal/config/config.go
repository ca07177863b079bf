package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults point at the weETH/USDC GammaSwap pool on Arbitrum the series was
// originally built for.
const (
	DefaultPoolID = "0xd63c125b169bc5655f9fdefb47c7d33e622416c7"
	DefaultStart  = "1711690366" // 2024-03-29 05:32:46 UTC, pool creation
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PoolID           string
	Start            string
	End              string
	Step             time.Duration
	BlockSubgraphURL string
	PoolSubgraphURL  string
	RPCURL           string
	Out              string
	PGDSN            string
	LogLevel         string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SAMPLER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("pool", DefaultPoolID)
	v.SetDefault("start", DefaultStart)
	v.SetDefault("step", 7*24*time.Hour)
	v.SetDefault("out", "./data/weETH-USDC.csv")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		PoolID:           v.GetString("pool"),
		Start:            v.GetString("start"),
		End:              v.GetString("end"),
		Step:             v.GetDuration("step"),
		BlockSubgraphURL: v.GetString("block-subgraph"),
		PoolSubgraphURL:  v.GetString("pool-subgraph"),
		RPCURL:           v.GetString("rpc"),
		Out:              v.GetString("out"),
		PGDSN:            v.GetString("pg-dsn"),
		LogLevel:         v.GetString("log-level"),
	}

	return cfg, nil
}
