package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/ethereum/go-ethereum/common"

	"github.com/status-im/ethfacade/account"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/signer"
)

// OnlineOptions describe an account managed by a node. An empty URL reuses
// the client's transport; a zero Address picks the node's first account.
type OnlineOptions struct {
	URL     string
	Address common.Address
}

// UseAccount registers a and makes it the current account.
func (c *Client) UseAccount(a account.Account) string {
	id := c.registry.Use(a)
	c.log.Debug("use account", zap.String("id", id))
	return id
}

// UseAccountID makes a registered account current. It reports false when no
// account with that id is registered.
func (c *Client) UseAccountID(id string) (string, bool) {
	return c.registry.UseID(id)
}

// AddAccount registers a without changing the current account, unless the
// registry was empty.
func (c *Client) AddAccount(a account.Account) string {
	return c.registry.Add(a)
}

// Account returns the current account.
func (c *Client) Account() (account.Account, bool) {
	return c.registry.Front()
}

// Accounts returns the registered accounts, current first.
func (c *Client) Accounts() []account.Account {
	return c.registry.Accounts()
}

// UseOnlineAccount registers a node managed account and makes it current.
func (c *Client) UseOnlineAccount(ctx context.Context, opts OnlineOptions) (string, error) {
	a, err := c.online(ctx, opts)
	if err != nil {
		return "", err
	}
	return c.UseAccount(a), nil
}

// AddOnlineAccount registers a node managed account.
func (c *Client) AddOnlineAccount(ctx context.Context, opts OnlineOptions) (string, error) {
	a, err := c.online(ctx, opts)
	if err != nil {
		return "", err
	}
	return c.AddAccount(a), nil
}

// UseSignerAccount registers a locally signing account and makes it current.
func (c *Client) UseSignerAccount(s signer.Signer) string {
	return c.UseAccount(c.signerAccount(s))
}

// AddSignerAccount registers a locally signing account.
func (c *Client) AddSignerAccount(s signer.Signer) string {
	return c.AddAccount(c.signerAccount(s))
}

// UsePrivateKey registers the account of a hex encoded private key and makes it current.
func (c *Client) UsePrivateKey(hexKey string) (string, error) {
	s, err := signer.NewPrivateKeyFromHex(hexKey)
	if err != nil {
		return "", err
	}
	return c.UseSignerAccount(s), nil
}

// AddPrivateKey registers the account of a hex encoded private key.
func (c *Client) AddPrivateKey(hexKey string) (string, error) {
	s, err := signer.NewPrivateKeyFromHex(hexKey)
	if err != nil {
		return "", err
	}
	return c.AddSignerAccount(s), nil
}

// online resolves the account described by opts. When an account with the
// same id is already registered it is returned instead and the dedicated
// transport, if any, is closed.
func (c *Client) online(ctx context.Context, opts OnlineOptions) (account.Account, error) {
	if opts.URL == "" {
		a, err := account.NewOnline(ctx, nodeCaller{transport: c.transport}, opts.Address)
		if err != nil {
			return nil, err
		}
		if existing, ok := c.registry.Get(a.ID()); ok {
			return existing, nil
		}
		return a, nil
	}

	c.mu.Lock()
	cleanedUp := c.cleanedUp
	c.mu.Unlock()
	if cleanedUp {
		return nil, ErrAlreadyCleanedUp
	}

	config := *c.config
	config.UpstreamConfig.URL = opts.URL
	config.UpstreamConfig.FallbackURLs = nil
	if err := config.UpstreamConfig.Validate(params.NewValidator()); err != nil {
		return nil, err
	}

	transport, err := rpc.NewClient(ctx, &config)
	if err != nil {
		return nil, err
	}
	a, err := account.NewOnline(ctx, transport, opts.Address)
	if err != nil {
		transport.Close()
		return nil, err
	}

	if existing, ok := c.registry.Get(a.ID()); ok {
		transport.Close()
		c.log.Debug("online account already registered", zap.String("id", a.ID()))
		return existing, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleanedUp {
		transport.Close()
		return nil, ErrAlreadyCleanedUp
	}
	c.onlineTransports = append(c.onlineTransports, transport)
	return a, nil
}
