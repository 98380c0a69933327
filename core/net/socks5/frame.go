// Package socks5 encodes and decodes SOCKS5 method-negotiation and
// CONNECT/BIND request/reply frames (RFC 1928). Only the IPv4 address
// type and the "no authentication" method are supported, matching this
// project's scope.
package socks5

import (
	"context"
	"encoding/binary"
	"net"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/ioutil"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

const (
	version byte = 5

	methodNoAuth byte = 0x00
	atypIPv4     byte = 0x01
	replySuccess byte = 0x00
)

// MethodRequest is the client's (or, outbound, this system's own) method
// negotiation request: VER=5, NMETHODS, METHODS[NMETHODS].
type MethodRequest struct {
	Methods []byte
}

// NoAuthMethodRequest is the outbound negotiation this system sends to a
// SOCKS5 upstream hop: NMETHODS=1, METHODS=[0x00].
func NoAuthMethodRequest() *MethodRequest {
	return &MethodRequest{Methods: []byte{methodNoAuth}}
}

func (m *MethodRequest) Size() int {
	return 2 + len(m.Methods)
}

func (m *MethodRequest) Bytes() []byte {
	buf := make([]byte, 0, m.Size())
	buf = append(buf, version, byte(len(m.Methods)))
	buf = append(buf, m.Methods...)
	return buf
}

// ReadMethodRequest parses a client's method-negotiation request. The
// version byte is assumed already consumed by the version detector.
func ReadMethodRequest(ctx context.Context, conn net.Conn) (*MethodRequest, error) {
	n := make([]byte, 1)
	if err := ioutil.ReadFull(ctx, conn, n); err != nil {
		return nil, err
	}
	methods := make([]byte, n[0])
	if len(methods) > 0 {
		if err := ioutil.ReadFull(ctx, conn, methods); err != nil {
			return nil, err
		}
	}
	return &MethodRequest{Methods: methods}, nil
}

// OffersNoAuth reports whether 0x00 is among the offered methods.
func (m *MethodRequest) OffersNoAuth() bool {
	for _, meth := range m.Methods {
		if meth == methodNoAuth {
			return true
		}
	}
	return false
}

// MethodReply is the server's method-negotiation reply: VER=5, METHOD.
type MethodReply struct {
	Method byte
}

func (m *MethodReply) Size() int { return 2 }

func (m *MethodReply) Bytes() []byte {
	return []byte{version, m.Method}
}

// NoAuthMethodReply is the reply this system writes to its own SOCKS5
// clients. It is also the only method reply ReadMethodReply accepts from
// an upstream SOCKS5 hop.
func NoAuthMethodReply() *MethodReply {
	return &MethodReply{Method: methodNoAuth}
}

// ReadMethodReply parses a method-negotiation reply received from an
// upstream SOCKS5 hop, failing with chainerr.ErrAuthRejected unless the
// selected method is "no authentication".
func ReadMethodReply(ctx context.Context, conn net.Conn) (*MethodReply, error) {
	buf := make([]byte, 2)
	if err := ioutil.ReadFull(ctx, conn, buf); err != nil {
		return nil, err
	}
	if buf[0] != version {
		return nil, chainerr.ErrProtocolError
	}
	if buf[1] != methodNoAuth {
		return nil, chainerr.ErrAuthRejected
	}
	return &MethodReply{Method: buf[1]}, nil
}

// Request is a SOCKS5 CONNECT/BIND request, IPv4 only:
// VER=5, CMD, RSV=0, ATYP=1, DSTADDR, DSTPORT.
type Request struct {
	Command protocol.Command
	IP      net.IP
	Port    uint16
}

func (r *Request) Size() int {
	return 4 + protocol.IPv4Size + protocol.DstPortSize
}

func (r *Request) Bytes() []byte {
	buf := make([]byte, 0, r.Size())
	buf = append(buf, version, byte(r.Command), 0x00, atypIPv4)
	buf = append(buf, r.IP.To4()...)
	buf = binary.BigEndian.AppendUint16(buf, r.Port)
	return buf
}

// ReadRequest parses a SOCKS5 CONNECT/BIND request, including its own VER
// byte: the version detector consumes only the version byte of the
// method-negotiation request that precedes it.
func ReadRequest(ctx context.Context, conn net.Conn) (*Request, error) {
	head := make([]byte, 4)
	if err := ioutil.ReadFull(ctx, conn, head); err != nil {
		return nil, err
	}
	if head[0] != version || head[2] != 0x00 {
		return nil, chainerr.ErrProtocolError
	}
	cmd := protocol.Command(head[1])
	if cmd != protocol.CmdConnect && cmd != protocol.CmdBind {
		return nil, chainerr.ErrProtocolError
	}
	if head[3] != atypIPv4 {
		return nil, chainerr.ErrUnsupportedCommand
	}

	addr := make([]byte, protocol.IPv4Size+protocol.DstPortSize)
	if err := ioutil.ReadFull(ctx, conn, addr); err != nil {
		return nil, err
	}
	ip := net.IP(addr[:protocol.IPv4Size]).To4()
	port := binary.BigEndian.Uint16(addr[protocol.IPv4Size:])
	return &Request{Command: cmd, IP: ip, Port: port}, nil
}

// Reply is a SOCKS5 reply, IPv4 only: VER=5, REP, RSV=0, ATYP=1, BNDADDR, BNDPORT.
type Reply struct {
	Code byte
	IP   net.IP
	Port uint16
}

func (r *Reply) Size() int {
	return 4 + protocol.IPv4Size + protocol.DstPortSize
}

func (r *Reply) Bytes() []byte {
	buf := make([]byte, 0, r.Size())
	buf = append(buf, version, r.Code, 0x00, atypIPv4)
	buf = append(buf, r.IP.To4()...)
	buf = binary.BigEndian.AppendUint16(buf, r.Port)
	return buf
}

// Success builds the REP=0 reply carrying the given bound address. The
// writer's client-facing success path always emits REP=0 unconditionally.
func Success(ip net.IP, port uint16) *Reply {
	return &Reply{Code: replySuccess, IP: ip, Port: port}
}

// ReadReply parses a SOCKS5 reply received from an upstream hop, failing
// with a RequestFailedError when REP is nonzero.
func ReadReply(ctx context.Context, conn net.Conn) (*Reply, error) {
	head := make([]byte, 4)
	if err := ioutil.ReadFull(ctx, conn, head); err != nil {
		return nil, err
	}
	if head[0] != version || head[2] != 0x00 {
		return nil, chainerr.ErrProtocolError
	}
	if head[3] != atypIPv4 {
		return nil, chainerr.ErrUnsupportedCommand
	}
	code := head[1]

	addr := make([]byte, protocol.IPv4Size+protocol.DstPortSize)
	if err := ioutil.ReadFull(ctx, conn, addr); err != nil {
		return nil, err
	}
	ip := net.IP(addr[:protocol.IPv4Size]).To4()
	port := binary.BigEndian.Uint16(addr[protocol.IPv4Size:])
	if code != replySuccess {
		return nil, chainerr.NewRequestFailed(code)
	}
	return &Reply{Code: code, IP: ip, Port: port}, nil
}
