// Package config enables config file parsing.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/DrW3RK/parachain-node/keys"
	"github.com/DrW3RK/parachain-node/log"
)

// EnvPrefix is the prefix of environment variables merged into the config.
const EnvPrefix = "PARACHAIN_"

// Config contains the CLI configuration.
type Config struct {
	ChainSpec *ChainSpecConfig `koanf:"chain_spec"`
	Log       *LogConfig       `koanf:"log"`
}

// Validate performs config validation.
func (cfg *Config) Validate() error {
	if cfg.ChainSpec != nil {
		if err := cfg.ChainSpec.Validate(); err != nil {
			return fmt.Errorf("chain_spec: %w", err)
		}
	}
	if cfg.Log != nil {
		if err := cfg.Log.Validate(); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}
	return nil
}

// ChainSpecConfig is the configuration of the chain spec builder.
type ChainSpecConfig struct {
	// Runtime is the path to the compiled runtime blob. Can be overridden
	// on the command line.
	Runtime string `koanf:"runtime"`

	// Live overrides the live network profile.
	Live *LiveConfig `koanf:"live"`
}

// Validate validates the chain spec configuration.
func (cfg *ChainSpecConfig) Validate() error {
	if cfg.Live != nil {
		if err := cfg.Live.Validate(); err != nil {
			return fmt.Errorf("live: %w", err)
		}
	}
	return nil
}

// LiveConfig is the configuration of the live network profile.
type LiveConfig struct {
	Name       string `koanf:"name"`
	ID         string `koanf:"id"`
	ProtocolID string `koanf:"protocol_id"`

	// RelayChain is the name of the relay chain the parachain connects to.
	RelayChain string `koanf:"relay_chain"`
	// ParaID is the para id registered on the relay chain.
	ParaID uint32 `koanf:"para_id"`

	Properties PropertiesConfig `koanf:"properties"`

	// Collators are the invulnerable collators, in order.
	Collators []CollatorConfig `koanf:"collators"`
	// Endowed are the hex public keys of the accounts endowed at genesis, in order.
	Endowed []string `koanf:"endowed"`
	// Root is the hex public key of the sudo account.
	Root string `koanf:"root"`
}

// CollatorConfig is an invulnerable collator.
type CollatorConfig struct {
	// Account is the hex public key of the collator account.
	Account string `koanf:"account"`
	// Session is the hex public key of the collator's Aura session key.
	Session string `koanf:"session"`
}

// PropertiesConfig holds the display properties of the chain.
type PropertiesConfig struct {
	TokenSymbol   string `koanf:"token_symbol"`
	TokenDecimals uint8  `koanf:"token_decimals"`
	SS58Format    uint16 `koanf:"ss58_format"`
}

// Validate validates the live network configuration. Every key must parse.
func (cfg *LiveConfig) Validate() error {
	if cfg.Name == "" {
		return fmt.Errorf("missing name")
	}
	if cfg.ID == "" {
		return fmt.Errorf("missing id")
	}
	if cfg.RelayChain == "" {
		return fmt.Errorf("missing relay_chain")
	}
	if err := cfg.Properties.Validate(); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	for i, c := range cfg.Collators {
		if _, err := keys.ParsePublicKey(c.Account); err != nil {
			return fmt.Errorf("collators[%d].account: %w", i, err)
		}
		if _, err := keys.ParsePublicKey(c.Session); err != nil {
			return fmt.Errorf("collators[%d].session: %w", i, err)
		}
	}
	for i, e := range cfg.Endowed {
		if _, err := keys.ParsePublicKey(e); err != nil {
			return fmt.Errorf("endowed[%d]: %w", i, err)
		}
	}
	if _, err := keys.ParsePublicKey(cfg.Root); err != nil {
		return fmt.Errorf("root: %w", err)
	}
	return nil
}

// Validate validates the display properties.
func (cfg *PropertiesConfig) Validate() error {
	if cfg.TokenSymbol == "" {
		return fmt.Errorf("missing token_symbol")
	}
	if !keys.ValidSS58Format(uint64(cfg.SS58Format)) {
		return fmt.Errorf("ss58_format %d out of range", cfg.SS58Format)
	}
	return nil
}

// LogConfig contains the logging configuration.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
	File   string `koanf:"file"`
}

// Validate validates the logging configuration.
func (cfg *LogConfig) Validate() error {
	var format log.Format
	if err := format.Set(cfg.Format); err != nil {
		return err
	}
	var level log.Level
	return level.Set(cfg.Level)
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		ChainSpec: &ChainSpecConfig{Live: DefaultLiveConfig()},
	}
}

// InitConfig initializes configuration from file. An empty path loads the
// defaults, still merged with the environment.
func InitConfig(f string) (*Config, error) {
	var p koanf.Provider
	if f != "" {
		p = file.Provider(f)
	}
	return initConfig(p)
}

func initConfig(p koanf.Provider) (*Config, error) {
	var config Config
	k := koanf.New(".")

	// Start from the live network defaults.
	if err := k.Load(confmap.Provider(defaultsMap(), ""), nil); err != nil {
		return nil, err
	}

	// Load configuration from the yaml config.
	if p != nil {
		if err := k.Load(p, yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Load environment variables and merge into the loaded config.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		// `__` is used as a hierarchy delimiter.
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	// Unmarshal into config.
	if err := k.Unmarshal("", &config); err != nil {
		return nil, err
	}

	// Validate config.
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
