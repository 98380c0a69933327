// Package proxychain models the configured proxy-chain specification, the
// per-session planner that materializes one concrete chain from it, and
// the establisher that negotiates that chain over the wire.
package proxychain

import (
	"net"

	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

// Hop is one upstream SOCKS proxy: its dialect and its IPv4 address.
// Immutable once loaded from configuration.
type Hop struct {
	Variant protocol.Variant
	IP      net.IP
	Port    uint16
}

// Stage is a non-empty set of candidate hops; one is sampled per session.
type Stage []Hop

// Specification is a non-empty ordered sequence of stages, shared
// read-only across all sessions.
type Specification []Stage

// Chain is one session's materialized, concrete hop sequence: one hop per
// stage of the specification that produced it.
type Chain []Hop
