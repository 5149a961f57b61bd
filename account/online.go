package account

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/transactions"
)

// Online forwards every operation to a node that manages the key itself.
type Online struct {
	node    nodeCaller
	address common.Address
}

// NewOnline binds an account of the remote node. A zero address selects the
// first entry of eth_accounts.
func NewOnline(ctx context.Context, transport rpc.Caller, address common.Address) (*Online, error) {
	if address == (common.Address{}) {
		var accounts []common.Address
		if err := transport.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, ErrNoRemoteAccounts
		}
		address = accounts[0]
	}
	return &Online{
		node:    nodeCaller{transport: transport, from: address},
		address: address,
	}, nil
}

func (a *Online) ID() string {
	return ID(a.address)
}

func (a *Online) Address() common.Address {
	return a.address
}

func (a *Online) Capabilities() Capabilities {
	return fullCapabilities
}

func (a *Online) Sign(ctx context.Context, message []byte) (hexutil.Bytes, error) {
	var signature hexutil.Bytes
	if err := a.node.transport.CallContext(ctx, &signature, "eth_sign", a.address, hexutil.Bytes(message)); err != nil {
		return nil, err
	}
	return signature, nil
}

func (a *Online) Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error) {
	if args.From == (common.Address{}) {
		args.From = a.address
	}
	if !args.Valid() {
		return common.Hash{}, transactions.ErrInvalidSendTxArgs
	}
	var hash common.Hash
	if err := a.node.transport.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func (a *Online) Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	return a.node.call(ctx, msg, block)
}

func (a *Online) Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return a.node.estimateGas(ctx, msg)
}
