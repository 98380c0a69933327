package proxychain

import (
	"net"
	"testing"

	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

func TestPlanLengthAndMembership(t *testing.T) {
	spec := Specification{
		{
			{Variant: protocol.SOCKS4, IP: net.IPv4(1, 1, 1, 1), Port: 1},
			{Variant: protocol.SOCKS5, IP: net.IPv4(1, 1, 1, 2), Port: 2},
		},
		{
			{Variant: protocol.SOCKS5, IP: net.IPv4(2, 2, 2, 1), Port: 3},
		},
		{
			{Variant: protocol.SOCKS4, IP: net.IPv4(3, 3, 3, 1), Port: 4},
			{Variant: protocol.SOCKS4, IP: net.IPv4(3, 3, 3, 2), Port: 5},
			{Variant: protocol.SOCKS5, IP: net.IPv4(3, 3, 3, 3), Port: 6},
		},
	}

	for i := 0; i < 50; i++ {
		chain, err := Plan(spec)
		if err != nil {
			t.Fatalf("Plan: %v", err)
		}
		if len(chain) != len(spec) {
			t.Fatalf("got chain length %d, want %d", len(chain), len(spec))
		}
		for stageIdx, hop := range chain {
			if !memberOf(spec[stageIdx], hop) {
				t.Fatalf("stage %d: hop %+v not drawn from its stage", stageIdx, hop)
			}
		}
	}
}

func memberOf(stage Stage, hop Hop) bool {
	for _, candidate := range stage {
		if candidate.Variant == hop.Variant && candidate.Port == hop.Port && candidate.IP.Equal(hop.IP) {
			return true
		}
	}
	return false
}
