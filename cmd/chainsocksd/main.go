// Package main is the entry point for chainsocksd, the SOCKS4/5
// proxy-chain multiplexer.
package main

import (
	"context"
	"net"
	"os"
	"strconv"

	"github.com/simorgh-net/chainsocks/internal/banner"
	"github.com/simorgh-net/chainsocks/internal/config"
	"github.com/simorgh-net/chainsocks/internal/logger"
	"github.com/simorgh-net/chainsocks/internal/server"
)

const defaultConfigPath = "config.toml"

func main() {
	path := os.Getenv("CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	cfg := config.Get(path)

	srv := server.New(cfg.Specification())
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(int(cfg.Server.Port)))
	if err := srv.Listen(addr); err != nil {
		logger.Fatal("bind failed: ", err)
	}

	banner.Print()
	banner.PrintListening(srv.Addr().String())

	if err := srv.Start(context.Background()); err != nil {
		logger.Fatal("server stopped: ", err)
	}
}
