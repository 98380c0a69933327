// Package server runs the TCP acceptor loop that spawns one session per
// accepted client connection.
package server

import (
	"context"
	"net"

	"github.com/simorgh-net/chainsocks/core/net/proxychain"
	"github.com/simorgh-net/chainsocks/core/net/session"
	"github.com/simorgh-net/chainsocks/internal/logger"
)

// Server binds a listener and hands every accepted connection off to the
// session state machine, running the chain specification it was built
// with.
type Server struct {
	spec     proxychain.Specification
	listener net.Listener
}

// New constructs a Server for the given chain specification. Call Listen
// to bind before Start.
func New(spec proxychain.Specification) *Server {
	return &Server{spec: spec}
}

// Listen binds addr (host:port), returning any bind error to the caller
// so startup failures can be reported as fatal.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr returns the bound listener's address. Listen must have succeeded.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start accepts connections in a loop. An Accept error is logged and the
// loop continues, unless ctx is already done, in which case Start returns
// nil; cancelling ctx does not by itself unblock a pending Accept. Each
// accepted connection is handled in its own goroutine; per-session errors
// are logged and never stop the loop.
func (s *Server) Start(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			logger.Error("accept failed: ", err)
			continue
		}
		go session.Handle(ctx, conn, s.spec)
	}
}
