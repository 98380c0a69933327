package session

import (
	"context"
	"net"
	"testing"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

func TestDetectVersion(t *testing.T) {
	for b := 0; b < 256; b++ {
		client, server := net.Pipe()
		go func(b byte) {
			client.Write([]byte{b})
			client.Close()
		}(byte(b))

		v, err := detectVersion(context.Background(), server)
		server.Close()

		switch byte(b) {
		case byte(protocol.SOCKS4):
			if err != nil || v != protocol.SOCKS4 {
				t.Fatalf("byte %d: got (%v, %v), want SOCKS4", b, v, err)
			}
		case byte(protocol.SOCKS5):
			if err != nil || v != protocol.SOCKS5 {
				t.Fatalf("byte %d: got (%v, %v), want SOCKS5", b, v, err)
			}
		default:
			if err != chainerr.ErrUnsupportedVersion {
				t.Fatalf("byte %d: got %v, want ErrUnsupportedVersion", b, err)
			}
		}
	}
}
