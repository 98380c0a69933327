// Package config loads and validates chainsocksd's TOML configuration:
// the server listen address and the proxy-chain specification.
package config

import (
	"errors"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/simorgh-net/chainsocks/internal/logger"
)

// ServerAddr is the `[server]` table: the TCP endpoint chainsocksd binds.
type ServerAddr struct {
	Host string `toml:"host"`
	Port uint16 `toml:"port"`
}

// ProxyEntry is one candidate hop in a chain stage, as written in TOML.
type ProxyEntry struct {
	Type string `toml:"type"`
	IP   string `toml:"ip"`
	Port uint16 `toml:"port"`
}

// Stage is one `chains` element: a non-empty list of candidate proxies.
type Stage []ProxyEntry

// Config is the full decoded document: `[server]` plus `chains`.
type Config struct {
	Server ServerAddr `toml:"server"`
	Chains []Stage    `toml:"chains"`
}

var (
	config     *Config
	loadOnce   sync.Once
)

// Get loads and returns the configuration at path, exactly once. A second
// call with a different path still returns the first load's result.
// Invalid configuration is a fatal startup error.
func Get(path string) *Config {
	loadOnce.Do(func() {
		var err error
		if config, err = load(path); err != nil {
			logger.Fatal(errors.Join(errInvalidConfigFile, err))
		}
	})
	return config
}

// load decodes path, rejects unknown keys, and validates the result.
func load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errUnknownField(undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
