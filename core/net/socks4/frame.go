// Package socks4 encodes and decodes SOCKS4 request and reply frames
// (the RFC 1928 predecessor). Address support is IPv4-only, matching this
// project's scope.
package socks4

import (
	"context"
	"encoding/binary"
	"net"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/ioutil"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

const (
	version      byte = 4
	replyVersion byte = 0
	replyGranted byte = 90
)

// Request is a SOCKS4 CONNECT/BIND request: VN=4, CD, DSTPORT, DSTIP,
// USERID terminated by a zero byte.
type Request struct {
	Command protocol.Command
	IP      net.IP
	Port    uint16
	UserID  []byte
}

func (r *Request) Size() int {
	return 1 + 1 + protocol.DstPortSize + protocol.IPv4Size + len(r.UserID) + 1
}

func (r *Request) Bytes() []byte {
	buf := make([]byte, 0, r.Size())
	buf = append(buf, version, byte(r.Command))
	buf = binary.BigEndian.AppendUint16(buf, r.Port)
	buf = append(buf, r.IP.To4()...)
	buf = append(buf, r.UserID...)
	buf = append(buf, 0x00)
	return buf
}

// ReadRequest parses a SOCKS4 request off conn. The version byte is
// assumed already consumed by the version detector.
func ReadRequest(ctx context.Context, conn net.Conn) (*Request, error) {
	head := make([]byte, 1+protocol.DstPortSize+protocol.IPv4Size)
	if err := ioutil.ReadFull(ctx, conn, head); err != nil {
		return nil, err
	}
	cmd := protocol.Command(head[0])
	if cmd != protocol.CmdConnect && cmd != protocol.CmdBind {
		return nil, chainerr.ErrProtocolError
	}
	port := binary.BigEndian.Uint16(head[1 : 1+protocol.DstPortSize])
	ip := net.IP(head[1+protocol.DstPortSize:]).To4()

	userID, err := readUserID(ctx, conn)
	if err != nil {
		return nil, err
	}
	return &Request{Command: cmd, IP: ip, Port: port, UserID: userID}, nil
}

// readUserID discards bytes up to and including the first zero terminator,
// returning the bytes read before it. A zero-length USERID is valid.
func readUserID(ctx context.Context, conn net.Conn) ([]byte, error) {
	var id []byte
	b := make([]byte, 1)
	for {
		if err := ioutil.ReadFull(ctx, conn, b); err != nil {
			return nil, err
		}
		if b[0] == 0x00 {
			return id, nil
		}
		id = append(id, b[0])
	}
}

// Reply is a SOCKS4 reply: VN=0, CD, DSTPORT, DSTIP.
type Reply struct {
	Code byte
	IP   net.IP
	Port uint16
}

func (r *Reply) Size() int {
	return 1 + 1 + protocol.DstPortSize + protocol.IPv4Size
}

func (r *Reply) Bytes() []byte {
	buf := make([]byte, 0, r.Size())
	buf = append(buf, replyVersion, r.Code)
	buf = binary.BigEndian.AppendUint16(buf, r.Port)
	buf = append(buf, r.IP.To4()...)
	return buf
}

// Success builds the granted reply carrying the given bound address.
func Success(ip net.IP, port uint16) *Reply {
	return &Reply{Code: replyGranted, IP: ip, Port: port}
}

// ReadReply parses a SOCKS4 reply off conn, failing with
// chainerr.ErrProtocolError on a nonzero VN and with a RequestFailedError
// when CD is not the granted code.
func ReadReply(ctx context.Context, conn net.Conn) (*Reply, error) {
	buf := make([]byte, 1+1+protocol.DstPortSize+protocol.IPv4Size)
	if err := ioutil.ReadFull(ctx, conn, buf); err != nil {
		return nil, err
	}
	if buf[0] != replyVersion {
		return nil, chainerr.ErrProtocolError
	}
	code := buf[1]
	port := binary.BigEndian.Uint16(buf[2 : 2+protocol.DstPortSize])
	ip := net.IP(buf[2+protocol.DstPortSize:]).To4()
	if code != replyGranted {
		return nil, chainerr.NewRequestFailed(code)
	}
	return &Reply{Code: code, IP: ip, Port: port}, nil
}
