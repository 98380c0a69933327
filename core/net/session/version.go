package session

import (
	"context"
	"net"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/ioutil"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

// detectVersion reads and consumes the single version byte a client sends
// first, returning the protocol.Variant it selects. Subsequent parsing for
// that variant MUST NOT re-read this byte.
func detectVersion(ctx context.Context, conn net.Conn) (protocol.Variant, error) {
	b := make([]byte, 1)
	if err := ioutil.ReadFull(ctx, conn, b); err != nil {
		return 0, err
	}
	switch b[0] {
	case byte(protocol.SOCKS4):
		return protocol.SOCKS4, nil
	case byte(protocol.SOCKS5):
		return protocol.SOCKS5, nil
	default:
		return 0, chainerr.ErrUnsupportedVersion
	}
}
