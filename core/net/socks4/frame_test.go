package socks4

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/simorgh-net/chainsocks/core/chainerr"
	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

// fakeConn is a net.Conn backed by two independent byte streams, enough to
// exercise Read*/Write* without a real socket.
type fakeConn struct {
	net.Conn
	r *bytes.Reader
	w bytes.Buffer
}

func newFakeConn(in []byte) *fakeConn {
	return &fakeConn{r: bytes.NewReader(in)}
}

func (f *fakeConn) Read(b []byte) (int, error)  { return f.r.Read(b) }
func (f *fakeConn) Write(b []byte) (int, error) { return f.w.Write(b) }

func TestRequestRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		userID []byte
	}{
		{"empty userid", []byte{}},
		{"one byte userid", []byte{0x41}},
		{"16 byte userid", bytes.Repeat([]byte{0x61}, 16)},
		{"255 byte userid", bytes.Repeat([]byte{0x62}, 255)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := &Request{
				Command: protocol.CmdConnect,
				IP:      net.IPv4(192, 168, 0, 1),
				Port:    443,
				UserID:  tc.userID,
			}
			// ReadRequest starts after VN, which the version detector consumes.
			conn := newFakeConn(want.Bytes()[1:])
			got, err := ReadRequest(context.Background(), conn)
			if err != nil {
				t.Fatalf("ReadRequest: %v", err)
			}
			if got.Command != want.Command || got.Port != want.Port || !got.IP.Equal(want.IP) {
				t.Fatalf("got %+v, want %+v", got, want)
			}
			if len(tc.userID) == 0 {
				if len(got.UserID) != 0 {
					t.Fatalf("expected empty userid, got %v", got.UserID)
				}
			} else if !bytes.Equal(got.UserID, tc.userID) {
				t.Fatalf("userid mismatch: got %v, want %v", got.UserID, tc.userID)
			}
		})
	}
}

func TestReadRequestBadCommand(t *testing.T) {
	raw := (&Request{Command: protocol.CmdConnect, IP: net.IPv4(1, 2, 3, 4), Port: 1}).Bytes()
	raw[1] = 9 // invalid CD
	conn := newFakeConn(raw[1:])
	_, err := ReadRequest(context.Background(), conn)
	if err != chainerr.ErrProtocolError {
		t.Fatalf("got %v, want ErrProtocolError", err)
	}
}

func TestReplySuccess(t *testing.T) {
	want := Success(net.IPv4(10, 0, 0, 1), 1234)
	conn := newFakeConn(want.Bytes())
	got, err := ReadReply(context.Background(), conn)
	if err != nil {
		t.Fatalf("ReadReply: %v", err)
	}
	if got.Code != replyGranted || got.Port != want.Port || !got.IP.Equal(want.IP) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReplyFailureCode(t *testing.T) {
	reply := &Reply{Code: 91, IP: net.IPv4(0, 0, 0, 0), Port: 0}
	conn := newFakeConn(reply.Bytes())
	_, err := ReadReply(context.Background(), conn)
	code, ok := chainerr.AsRequestFailed(err)
	if !ok || code != 91 {
		t.Fatalf("got %v, want RequestFailedError{91}", err)
	}
}

func TestReplyBadVersion(t *testing.T) {
	reply := &Reply{Code: replyGranted, IP: net.IPv4(0, 0, 0, 0), Port: 0}
	raw := reply.Bytes()
	raw[0] = 1 // VN must be 0
	conn := newFakeConn(raw)
	_, err := ReadReply(context.Background(), conn)
	if err != chainerr.ErrProtocolError {
		t.Fatalf("got %v, want ErrProtocolError", err)
	}
}
