// Package session implements the per-client state machine: version
// detection, client-side request parsing, chain planning and
// establishment, the client-facing reply, and handoff into the relay.
package session

import (
	"context"
	"net"

	"github.com/google/uuid"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/ioutil"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
	"github.com/simorgh-net/chainsocks/core/net/proxychain"
	"github.com/simorgh-net/chainsocks/core/net/relay"
	"github.com/simorgh-net/chainsocks/core/net/socks4"
	"github.com/simorgh-net/chainsocks/core/net/socks5"
	"github.com/simorgh-net/chainsocks/internal/logger"
)

// clientRequest is the protocol-independent command parsed from the
// client, before it is re-targeted at the chain's last hop.
type clientRequest struct {
	command protocol.Command
	ip      net.IP
	port    uint16
}

// Handle runs one client connection through the full state machine of
// §4.6. It always closes clientConn before returning; an upstream
// connection, if one was established, is handed to the relay and closed
// when the relay ends.
func Handle(ctx context.Context, clientConn net.Conn, spec proxychain.Specification) {
	id := uuid.New()
	defer clientConn.Close()

	variant, err := detectVersion(ctx, clientConn)
	if err != nil {
		logger.Warn("session ", id, ": version detect failed: ", err)
		return
	}

	req, err := parseClientRequest(ctx, clientConn, variant)
	if err != nil {
		logger.Warn("session ", id, ": client request parse failed: ", err)
		return
	}

	chain, err := proxychain.Plan(spec)
	if err != nil {
		logger.Error("session ", id, ": chain planning failed: ", err)
		return
	}

	result, err := proxychain.Establish(ctx, chain, proxychain.Terminal{
		Command: req.command,
		IP:      req.ip,
		Port:    req.port,
	})
	if err != nil {
		logger.Warn("session ", id, ": chain establishment failed: ", err)
		return
	}
	defer result.Conn.Close()

	if err := writeClientReply(ctx, clientConn, variant, result.IP, result.Port); err != nil {
		logger.Warn("session ", id, ": client reply write failed: ", err)
		return
	}

	logger.Info("session ", id, ": relaying, ", len(chain), " hop(s)")
	if err := relay.Pump(clientConn, result.Conn); err != nil {
		logger.Warn("session ", id, ": relay ended with error: ", err)
		return
	}
	logger.Info("session ", id, ": closed")
}

func parseClientRequest(ctx context.Context, conn net.Conn, variant protocol.Variant) (*clientRequest, error) {
	switch variant {
	case protocol.SOCKS4:
		req, err := socks4.ReadRequest(ctx, conn)
		if err != nil {
			return nil, err
		}
		return &clientRequest{command: req.Command, ip: req.IP, port: req.Port}, nil
	default: // protocol.SOCKS5
		methodReq, err := socks5.ReadMethodRequest(ctx, conn)
		if err != nil {
			return nil, err
		}
		if !methodReq.OffersNoAuth() {
			return nil, chainerr.ErrUnsupportedAuthMethod
		}
		if err := ioutil.WriteFull(ctx, conn, socks5.NoAuthMethodReply().Bytes()); err != nil {
			return nil, err
		}
		req, err := socks5.ReadRequest(ctx, conn)
		if err != nil {
			return nil, err
		}
		return &clientRequest{command: req.Command, ip: req.IP, port: req.Port}, nil
	}
}

func writeClientReply(ctx context.Context, conn net.Conn, variant protocol.Variant, ip net.IP, port uint16) error {
	switch variant {
	case protocol.SOCKS4:
		return ioutil.WriteFull(ctx, conn, socks4.Success(ip, port).Bytes())
	default: // protocol.SOCKS5
		return ioutil.WriteFull(ctx, conn, socks5.Success(ip, port).Bytes())
	}
}
