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

// Readonly can simulate calls but holds no key. The zero address is allowed
// and is what the fallback account uses.
type Readonly struct {
	node    nodeCaller
	address common.Address
}

func NewReadonly(transport rpc.Caller, address common.Address) *Readonly {
	return &Readonly{
		node:    nodeCaller{transport: transport, from: address},
		address: address,
	}
}

func (a *Readonly) ID() string {
	return ID(a.address)
}

func (a *Readonly) Address() common.Address {
	return a.address
}

func (a *Readonly) Capabilities() Capabilities {
	return readonlyCapabilities
}

func (a *Readonly) Sign(context.Context, []byte) (hexutil.Bytes, error) {
	return nil, notSupported(OpSign, a.ID())
}

func (a *Readonly) Send(context.Context, transactions.SendTxArgs) (common.Hash, error) {
	return common.Hash{}, notSupported(OpSend, a.ID())
}

func (a *Readonly) Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	return a.node.call(ctx, msg, block)
}

func (a *Readonly) Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return a.node.estimateGas(ctx, msg)
}
