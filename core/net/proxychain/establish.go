package proxychain

import (
	"context"
	"net"
	"strconv"

	"github.com/simorgh-net/chainsocks/core/net/ioutil"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
	"github.com/simorgh-net/chainsocks/core/net/socks4"
	"github.com/simorgh-net/chainsocks/core/net/socks5"
)

// Terminal is the command directed at the last hop: the client's own
// request, retargeted at the chain's final destination.
type Terminal struct {
	Command protocol.Command
	IP      net.IP
	Port    uint16
}

// Result is what establishment hands back to the session: the live
// connection to the first hop, and the bound address H_n reported.
type Result struct {
	Conn net.Conn
	IP   net.IP
	Port uint16
}

// Establish dials chain[0] and runs the pipelined negotiation of §4.5:
// every outbound byte is buffered and written as one write before any
// reply is read, because later hops' replies interleave on the same
// socket as writes meant for hops further down the chain.
//
// On any failure the dialed connection is closed before returning.
func Establish(ctx context.Context, chain Chain, terminal Terminal) (*Result, error) {
	first := chain[0]
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", net.JoinHostPort(first.IP.String(), strconv.Itoa(int(first.Port))))
	if err != nil {
		return nil, err
	}

	if err := ioutil.WriteFull(ctx, conn, buildOutbound(chain, terminal)); err != nil {
		conn.Close()
		return nil, err
	}

	bndIP, bndPort, err := readReplies(ctx, conn, chain)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Result{Conn: conn, IP: bndIP, Port: bndPort}, nil
}

// buildOutbound constructs the full outbound byte stream: an adjacency
// request for every hop but the last, then the terminal request to the
// last hop, each in that hop's own protocol.
func buildOutbound(chain Chain, terminal Terminal) []byte {
	var buf []byte
	n := len(chain)
	for i := 0; i < n-1; i++ {
		buf = append(buf, adjacencyRequest(chain[i], chain[i+1])...)
	}
	buf = append(buf, terminalRequest(chain[n-1], terminal)...)
	return buf
}

// adjacencyRequest instructs hop to CONNECT to next, regardless of the
// client's originally requested command kind.
func adjacencyRequest(hop, next Hop) []byte {
	switch hop.Variant {
	case protocol.SOCKS4:
		r := &socks4.Request{Command: protocol.CmdConnect, IP: next.IP, Port: next.Port}
		return r.Bytes()
	default: // protocol.SOCKS5
		var buf []byte
		buf = append(buf, socks5.NoAuthMethodRequest().Bytes()...)
		r := &socks5.Request{Command: protocol.CmdConnect, IP: next.IP, Port: next.Port}
		buf = append(buf, r.Bytes()...)
		return buf
	}
}

// terminalRequest encodes the client's own command, re-targeted at the
// chain's last hop, in that hop's protocol.
func terminalRequest(hop Hop, terminal Terminal) []byte {
	switch hop.Variant {
	case protocol.SOCKS4:
		r := &socks4.Request{Command: terminal.Command, IP: terminal.IP, Port: terminal.Port}
		return r.Bytes()
	default: // protocol.SOCKS5
		var buf []byte
		buf = append(buf, socks5.NoAuthMethodRequest().Bytes()...)
		r := &socks5.Request{Command: terminal.Command, IP: terminal.IP, Port: terminal.Port}
		buf = append(buf, r.Bytes()...)
		return buf
	}
}

// readReplies consumes H1..Hn's replies in order, returning H_n's bound
// address. A SOCKS5 hop's method-negotiation reply is read before its
// request reply.
func readReplies(ctx context.Context, conn net.Conn, chain Chain) (net.IP, uint16, error) {
	var ip net.IP
	var port uint16
	n := len(chain)
	for i := 0; i < n; i++ {
		hop := chain[i]
		switch hop.Variant {
		case protocol.SOCKS4:
			reply, err := socks4.ReadReply(ctx, conn)
			if err != nil {
				return nil, 0, err
			}
			ip, port = reply.IP, reply.Port
		default: // protocol.SOCKS5
			if _, err := socks5.ReadMethodReply(ctx, conn); err != nil {
				return nil, 0, err
			}
			reply, err := socks5.ReadReply(ctx, conn)
			if err != nil {
				return nil, 0, err
			}
			ip, port = reply.IP, reply.Port
		}
	}
	return ip, port, nil
}
