package account

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	ethcommon "github.com/status-im/ethfacade/common"
	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/transactions"
)

// nodeCaller runs the operations every variant delegates to the node unchanged.
type nodeCaller struct {
	transport rpc.Caller
	from      common.Address
}

func (c nodeCaller) call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	var result hexutil.Bytes
	err := c.transport.CallContext(ctx, &result, "eth_call", transactions.ToCallArg(c.withFrom(msg)), ethcommon.BlockNumArg(block))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c nodeCaller) estimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	var result hexutil.Uint64
	err := c.transport.CallContext(ctx, &result, "eth_estimateGas", transactions.ToCallArg(c.withFrom(msg)))
	if err != nil {
		return 0, err
	}
	return uint64(result), nil
}

func (c nodeCaller) withFrom(msg ethereum.CallMsg) ethereum.CallMsg {
	if msg.From == (common.Address{}) {
		msg.From = c.from
	}
	return msg
}
