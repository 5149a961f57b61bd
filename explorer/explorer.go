package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	ethcommon "github.com/status-im/ethfacade/common"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
)

var ErrUnsignedTransaction = errors.New("server returned transaction without signature")

// Explorer answers read-only chain queries. Headers are immutable once fetched
// by hash and are kept in an LRU cache.
type Explorer struct {
	client  rpc.Caller
	headers *lru.Cache[common.Hash, *types.Header]
}

// New creates an explorer. A non-positive cacheSize uses the default.
func New(client rpc.Caller, cacheSize int) (*Explorer, error) {
	if cacheSize <= 0 {
		cacheSize = params.DefaultExplorerCacheSize
	}
	headers, err := lru.New[common.Hash, *types.Header](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Explorer{client: client, headers: headers}, nil
}

// BlockNumber returns the most recent block number.
func (e *Explorer) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := e.client.CallContext(ctx, &result, "eth_blockNumber")
	return uint64(result), err
}

// HeaderByNumber returns a block header from the current canonical chain. If number is
// nil, the latest known header is returned.
func (e *Explorer) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var head *types.Header
	err := e.client.CallContext(ctx, &head, "eth_getBlockByNumber", ethcommon.BlockNumArg(number), false)
	if err == nil && head == nil {
		err = ethereum.NotFound
	}
	if err != nil {
		return nil, err
	}
	e.headers.Add(head.Hash(), head)
	return head, nil
}

// HeaderByHash returns the block header with the given hash.
func (e *Explorer) HeaderByHash(ctx context.Context, hash common.Hash) (*types.Header, error) {
	if head, ok := e.headers.Get(hash); ok {
		return head, nil
	}
	var head *types.Header
	err := e.client.CallContext(ctx, &head, "eth_getBlockByHash", hash, false)
	if err == nil && head == nil {
		err = ethereum.NotFound
	}
	if err != nil {
		return nil, err
	}
	e.headers.Add(hash, head)
	return head, nil
}

type rpcTransaction struct {
	tx *types.Transaction
	txExtraInfo
}

type txExtraInfo struct {
	BlockNumber *string         `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	From        *common.Address `json:"from,omitempty"`
}

func (tx *rpcTransaction) UnmarshalJSON(msg []byte) error {
	if err := json.Unmarshal(msg, &tx.tx); err != nil {
		return err
	}
	return json.Unmarshal(msg, &tx.txExtraInfo)
}

// TransactionByHash returns the transaction with the given hash.
func (e *Explorer) TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error) {
	var raw *rpcTransaction
	err = e.client.CallContext(ctx, &raw, "eth_getTransactionByHash", hash)
	if err != nil {
		return nil, false, err
	} else if raw == nil {
		return nil, false, ethereum.NotFound
	} else if _, r, _ := raw.tx.RawSignatureValues(); r == nil {
		return nil, false, ErrUnsignedTransaction
	}
	return raw.tx, raw.BlockNumber == nil, nil
}

// TransactionReceipt returns the receipt of a transaction by transaction hash.
// Note that the receipt is not available for pending transactions.
func (e *Explorer) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var r *types.Receipt
	err := e.client.CallContext(ctx, &r, "eth_getTransactionReceipt", hash)
	if err == nil && r == nil {
		return nil, ethereum.NotFound
	}
	return r, err
}

// BalanceAt returns the wei balance of the given account.
// The block number can be nil, in which case the balance is taken from the latest known block.
func (e *Explorer) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	var result hexutil.Big
	err := e.client.CallContext(ctx, &result, "eth_getBalance", account, ethcommon.BlockNumArg(blockNumber))
	return (*big.Int)(&result), err
}

// CodeAt returns the contract code of the given account.
func (e *Explorer) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	var result hexutil.Bytes
	err := e.client.CallContext(ctx, &result, "eth_getCode", account, ethcommon.BlockNumArg(blockNumber))
	return result, err
}

// NonceAt returns the account nonce of the given account.
func (e *Explorer) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	var result hexutil.Uint64
	err := e.client.CallContext(ctx, &result, "eth_getTransactionCount", account, ethcommon.BlockNumArg(blockNumber))
	return uint64(result), err
}

// FilterLogs executes a filter query.
func (e *Explorer) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	var result []types.Log
	arg, err := toFilterArg(q)
	if err != nil {
		return nil, err
	}
	err = e.client.CallContext(ctx, &result, "eth_getLogs", arg)
	return result, err
}

func toFilterArg(q ethereum.FilterQuery) (interface{}, error) {
	arg := map[string]interface{}{
		"address": q.Addresses,
		"topics":  q.Topics,
	}
	if q.BlockHash != nil {
		arg["blockHash"] = *q.BlockHash
		if q.FromBlock != nil || q.ToBlock != nil {
			return nil, errors.New("cannot specify both BlockHash and FromBlock/ToBlock")
		}
	} else {
		if q.FromBlock == nil {
			arg["fromBlock"] = "0x0"
		} else {
			arg["fromBlock"] = ethcommon.BlockNumArg(q.FromBlock)
		}
		arg["toBlock"] = ethcommon.BlockNumArg(q.ToBlock)
	}
	return arg, nil
}
