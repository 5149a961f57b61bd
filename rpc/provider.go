package rpc

import (
	"fmt"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

const (
	ProviderMain     = "main"
	ProviderFallback = "fallback"
)

// Provider is one upstream JSON-RPC endpoint. Providers are tried in Priority order.
type Provider struct {
	Key      string
	URL      string
	Priority int

	client  *gethrpc.Client
	circuit string
}

func providerKey(priority int) string {
	switch priority {
	case 0:
		return ProviderMain
	case 1:
		return ProviderFallback
	}
	return fmt.Sprintf("%s%d", ProviderFallback, priority)
}

func newProvider(clientID string, priority int, url string, client *gethrpc.Client) *Provider {
	key := providerKey(priority)
	return &Provider{
		Key:      key,
		URL:      url,
		Priority: priority,
		client:   client,
		circuit:  fmt.Sprintf("%s-%s", key, clientID),
	}
}
