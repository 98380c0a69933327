package config

import (
	"errors"
	"fmt"
)

var (
	errInvalidConfigFile = errors.New("invalid config file")
	errEmptyChains       = errors.New("chains must be a non-empty list")
	errEmptyStage        = errors.New("chains: each stage must be a non-empty list of proxies")
)

func errUnknownField(key string) error {
	return fmt.Errorf("unknown config field: %s", key)
}

func errUnknownProxyType(stage int, proxyType string) error {
	return fmt.Errorf("chains[%d]: unknown proxy type %q, expected \"socks4\" or \"socks5\"", stage, proxyType)
}

func errInvalidProxyIP(stage, proxy int, ip string) error {
	return fmt.Errorf("chains[%d][%d]: invalid IPv4 address %q", stage, proxy, ip)
}
