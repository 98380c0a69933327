// Package protocol defines the types shared by the SOCKS4 and SOCKS5 wire
// codecs and by everything built on top of them: the proxy-chain planner,
// the establisher, and the session state machine all speak in terms of
// Variant and Command rather than either protocol's raw byte values.
package protocol

// Header is the common shape of an encodable/decodable wire frame.
type Header interface {
	Bytes() []byte
	Size() int
}

// Variant identifies which SOCKS dialect a hop or a client speaks.
type Variant byte

const (
	SOCKS4 Variant = 4
	SOCKS5 Variant = 5
)

func (v Variant) String() string {
	switch v {
	case SOCKS4:
		return "socks4"
	case SOCKS5:
		return "socks5"
	default:
		return "unknown"
	}
}

// Command is the protocol-independent request a session or an
// establishment step is making of a hop. SOCKS4 (CD) and SOCKS5 (CMD) use
// the same byte values for CONNECT and BIND, so both codecs write and read
// a Command's value unchanged and the establisher never has to
// special-case a hop's variant for it.
type Command byte

const (
	CmdConnect Command = 1
	CmdBind    Command = 2
)

// DstPortSize is the width in bytes of a destination port field, shared by
// SOCKS4 and SOCKS5 (both are big-endian u16).
const DstPortSize = 2

// IPv4Size is the width in bytes of the IPv4-only address field this
// module supports; neither domain names nor IPv6 addresses are part of
// this spec's scope.
const IPv4Size = 4

