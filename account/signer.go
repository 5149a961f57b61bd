package account

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/signer"
	"github.com/status-im/ethfacade/transactions"
)

// Signer signs locally with a pluggable signer and submits raw transactions.
type Signer struct {
	node       nodeCaller
	signer     signer.Signer
	transactor *transactions.Transactor
}

func NewSigner(transport rpc.Caller, s signer.Signer, transactor *transactions.Transactor) *Signer {
	return &Signer{
		node:       nodeCaller{transport: transport, from: s.Address()},
		signer:     s,
		transactor: transactor,
	}
}

func (a *Signer) ID() string {
	return ID(a.signer.Address())
}

func (a *Signer) Address() common.Address {
	return a.signer.Address()
}

func (a *Signer) Capabilities() Capabilities {
	return fullCapabilities
}

func (a *Signer) Sign(_ context.Context, message []byte) (hexutil.Bytes, error) {
	return signer.SignMessage(a.signer, message)
}

func (a *Signer) Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error) {
	return a.transactor.SendTransaction(ctx, args, a.signer)
}

func (a *Signer) Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	return a.node.call(ctx, msg, block)
}

func (a *Signer) Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return a.node.estimateGas(ctx, msg)
}
