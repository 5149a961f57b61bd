package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/status-im/ethfacade/abi"
	"github.com/status-im/ethfacade/account"
	"github.com/status-im/ethfacade/contract"
	"github.com/status-im/ethfacade/explorer"
	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/signer"
	"github.com/status-im/ethfacade/tracker"
	"github.com/status-im/ethfacade/transactions"
)

var ErrAlreadyCleanedUp = errors.New("client already cleaned up")

// Client is the facade over the transport, the account registry and the
// chain helpers. Operations that need an account are routed to the front of
// the registry.
type Client struct {
	config    *params.ClientConfig
	transport *rpc.Client

	registry   *account.Registry
	fallback   *account.Readonly
	router     *account.Router
	transactor *transactions.Transactor

	explorer *explorer.Explorer
	blocks   *tracker.BlockTracker
	txs      *tracker.TxListener

	mu               sync.Mutex
	onlineTransports []*rpc.Client
	cleanupOnce      sync.Once
	cleanedUp        bool

	log *zap.Logger
}

// New dials the upstream nodes of config and builds a client over them.
func New(ctx context.Context, config *params.ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	transport, err := rpc.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	c, err := NewWithTransport(transport, config)
	if err != nil {
		transport.Close()
		return nil, err
	}
	return c, nil
}

// NewWithTransport builds a client over an existing transport. The client
// owns the transport and closes it on Cleanup. The config is validated but
// its upstream URLs are not dialled.
func NewWithTransport(transport *rpc.Client, config *params.ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	find, err := explorer.New(transport, config.ExplorerCacheSize)
	if err != nil {
		return nil, err
	}

	registry := account.NewRegistry()
	fallback := account.NewReadonly(transport, common.Address{})

	c := &Client{
		config:     config,
		transport:  transport,
		registry:   registry,
		fallback:   fallback,
		router:     account.NewRouter(registry, fallback),
		transactor: transactions.NewTransactor(transport, config.ChainID, config.GasPriceTTL),
		explorer:   find,
		blocks:     tracker.NewBlockTracker(transport, config.BlockPollInterval),
		txs:        tracker.NewTxListener(transport, config.ReceiptPollInterval),
		log:        logutils.ZapLogger().Named("client.Client"),
	}
	transport.RegisterHandler(AccountsMethodName, c.accountsHandler)
	return c, nil
}

// AccountsMethodName is answered locally with the registered accounts.
const AccountsMethodName = "eth_accounts"

func (c *Client) accountsHandler(context.Context, ...interface{}) (interface{}, error) {
	accounts := c.registry.Accounts()
	addresses := make([]common.Address, 0, len(accounts))
	for _, a := range accounts {
		addresses = append(addresses, a.Address())
	}
	return addresses, nil
}

// nodeCaller sends calls to the providers even when a local handler is registered.
type nodeCaller struct {
	transport *rpc.Client
}

func (n nodeCaller) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	return n.transport.CallContextIgnoringLocalHandlers(ctx, result, method, args...)
}

// Request sends a raw JSON-RPC request through the transport.
func (c *Client) Request(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	return c.transport.Request(ctx, method, args...)
}

// Transport returns the underlying JSON-RPC client.
func (c *Client) Transport() *rpc.Client {
	return c.transport
}

// Find returns the explorer for read-only chain queries.
func (c *Client) Find() *explorer.Explorer {
	return c.explorer
}

// Blocks returns the block tracker. It starts polling on first subscription.
func (c *Client) Blocks() *tracker.BlockTracker {
	return c.blocks
}

// Tx returns the transaction listener.
func (c *Client) Tx() *tracker.TxListener {
	return c.txs
}

// Fallback returns the readonly account used when the registry is empty.
func (c *Client) Fallback() account.Account {
	return c.fallback
}

// ABI builds a codec for a JSON interface definition.
func (c *Client) ABI(definition string, opts abi.Options) (*abi.Codec, error) {
	return abi.NewCodec(definition, opts)
}

// ContractOptions combine the codec and binding options.
type ContractOptions struct {
	Address  common.Address
	Bytecode []byte
}

// Contract binds a JSON interface definition to this client.
func (c *Client) Contract(definition string, opts ContractOptions) (*contract.Contract, error) {
	codec, err := abi.NewCodec(definition, abi.Options{Bytecode: opts.Bytecode})
	if err != nil {
		return nil, err
	}
	return contract.New(c, codec, contract.Options{Address: opts.Address}), nil
}

// Sign signs message with the current account.
func (c *Client) Sign(ctx context.Context, message []byte) (hexutil.Bytes, error) {
	return c.router.Sign(ctx, message)
}

// Send sends a transaction from the current account.
func (c *Client) Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error) {
	return c.router.Send(ctx, args)
}

// Call executes msg without creating a transaction. Nil block means latest.
func (c *Client) Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	return c.router.Call(ctx, msg, block)
}

// Gas estimates the gas msg needs.
func (c *Client) Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.router.Gas(ctx, msg)
}

// VM is an alias of Call.
func (c *Client) VM(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	return c.Call(ctx, msg, block)
}

// Simulate is an alias of Gas.
func (c *Client) Simulate(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return c.Gas(ctx, msg)
}

// FilterLogs queries logs through the explorer.
func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return c.explorer.FilterLogs(ctx, q)
}

// Cleanup stops the trackers, closes registered accounts that implement
// io.Closer and closes every transport the client owns. Only the first call
// does anything; later calls return ErrAlreadyCleanedUp.
func (c *Client) Cleanup() error {
	err := ErrAlreadyCleanedUp
	c.cleanupOnce.Do(func() {
		c.txs.Stop()
		c.blocks.Stop()

		err = nil
		for _, a := range c.registry.Accounts() {
			if closer, ok := a.(io.Closer); ok {
				if cerr := closer.Close(); cerr != nil {
					err = multierr.Append(err, fmt.Errorf("close account %s: %w", a.ID(), cerr))
				}
			}
		}

		c.mu.Lock()
		c.cleanedUp = true
		transports := c.onlineTransports
		c.onlineTransports = nil
		c.mu.Unlock()

		for _, t := range transports {
			t.Close()
		}
		c.transport.UnregisterHandler(AccountsMethodName)
		c.transport.Close()
		c.log.Debug("client cleaned up", zap.Int("onlineTransports", len(transports)), zap.Error(err))
	})
	return err
}

var _ contract.Backend = (*Client)(nil)

// signerAccount wraps s into an account sharing the client's transactor.
func (c *Client) signerAccount(s signer.Signer) *account.Signer {
	return account.NewSigner(c.transport, s, c.transactor)
}
