package proxychain

import (
	"crypto/rand"
	"math/big"
)

// Plan materializes one concrete Chain from spec by independently sampling
// one hop uniformly at random from each stage. The source of randomness is
// crypto/rand: selection security is irrelevant to the upstream hops'
// security, but a cryptographically unpredictable source is cheap enough
// here not to reach for anything weaker.
func Plan(spec Specification) (Chain, error) {
	chain := make(Chain, len(spec))
	for i, stage := range spec {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(stage))))
		if err != nil {
			return nil, err
		}
		chain[i] = stage[n.Int64()]
	}
	return chain, nil
}
