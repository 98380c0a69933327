package config

import (
	"testing"

	"github.com/simorgh-net/chainsocks/core/net/protocol"
)

func validConfig() Config {
	return Config{
		Server: ServerAddr{Host: "127.0.0.1", Port: 1080},
		Chains: []Stage{
			{{Type: "socks5", IP: "10.0.0.1", Port: 1080}},
			{
				{Type: "socks4", IP: "10.0.0.2", Port: 1081},
				{Type: "socks5", IP: "10.0.0.3", Port: 1082},
			},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRejectsEmptyChains(t *testing.T) {
	cfg := validConfig()
	cfg.Chains = nil
	if err := cfg.validate(); err != errEmptyChains {
		t.Fatalf("got %v, want errEmptyChains", err)
	}
}

func TestValidateRejectsEmptyStage(t *testing.T) {
	cfg := validConfig()
	cfg.Chains = append(cfg.Chains, Stage{})
	if err := cfg.validate(); err != errEmptyStage {
		t.Fatalf("got %v, want errEmptyStage", err)
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := validConfig()
	cfg.Chains[0][0].Type = "http"
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected an error for unknown proxy type")
	}
}

func TestValidateRejectsBadIP(t *testing.T) {
	cfg := validConfig()
	cfg.Chains[0][0].IP = "not-an-ip"
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected an error for invalid IP")
	}
}

func TestSpecificationTranslatesVariants(t *testing.T) {
	cfg := validConfig()
	spec := cfg.Specification()
	if len(spec) != len(cfg.Chains) {
		t.Fatalf("got %d stages, want %d", len(spec), len(cfg.Chains))
	}
	if spec[0][0].Variant != protocol.SOCKS5 {
		t.Fatalf("got variant %v, want socks5", spec[0][0].Variant)
	}
	if spec[1][0].Variant != protocol.SOCKS4 {
		t.Fatalf("got variant %v, want socks4", spec[1][0].Variant)
	}
}
