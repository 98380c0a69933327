package config

import (
	"net"

	"github.com/simorgh-net/chainsocks/core/net/protocol"
	"github.com/simorgh-net/chainsocks/core/net/proxychain"
)

// validate checks the non-empty-chains, non-empty-stage, and
// known-proxy-type invariants from §6. It does not mutate cfg.
func (c *Config) validate() error {
	if len(c.Chains) == 0 {
		return errEmptyChains
	}
	for i, stage := range c.Chains {
		if len(stage) == 0 {
			return errEmptyStage
		}
		for j, proxy := range stage {
			if proxy.Type != "socks4" && proxy.Type != "socks5" {
				return errUnknownProxyType(i, proxy.Type)
			}
			if net.ParseIP(proxy.IP).To4() == nil {
				return errInvalidProxyIP(i, j, proxy.IP)
			}
		}
	}
	return nil
}

// Specification converts the validated TOML chains document into the
// proxychain.Specification the planner and establisher operate on.
func (c *Config) Specification() proxychain.Specification {
	spec := make(proxychain.Specification, len(c.Chains))
	for i, stage := range c.Chains {
		hops := make(proxychain.Stage, len(stage))
		for j, proxy := range stage {
			hops[j] = proxychain.Hop{
				Variant: variantOf(proxy.Type),
				IP:      net.ParseIP(proxy.IP).To4(),
				Port:    proxy.Port,
			}
		}
		spec[i] = hops
	}
	return spec
}

func variantOf(proxyType string) protocol.Variant {
	if proxyType == "socks4" {
		return protocol.SOCKS4
	}
	return protocol.SOCKS5
}
