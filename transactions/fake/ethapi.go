package fake

//go:generate mockgen -package=fake -source=ethapi.go -destination=mock.go

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/golang/mock/gomock"
)

// NewTestServer returns a mocked test server
func NewTestServer(ctrl *gomock.Controller) (*rpc.Server, *MockEthAPI) {
	srv := rpc.NewServer()
	svc := NewMockEthAPI(ctrl)
	if err := srv.RegisterName("eth", svc); err != nil {
		panic(err)
	}
	return srv, svc
}

// CallArgs mirrors the transaction object of eth_call, eth_estimateGas and eth_sendTransaction.
type CallArgs struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to"`
	Gas                  *hexutil.Uint64 `json:"gas"`
	GasPrice             *hexutil.Big    `json:"gasPrice"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas"`
	Value                *hexutil.Big    `json:"value"`
	Nonce                *hexutil.Uint64 `json:"nonce"`
	Data                 hexutil.Bytes   `json:"data"`
	Input                hexutil.Bytes   `json:"input"`
}

// FilterArgs mirrors the eth_getLogs filter object.
type FilterArgs struct {
	BlockHash *common.Hash     `json:"blockHash"`
	FromBlock string           `json:"fromBlock"`
	ToBlock   string           `json:"toBlock"`
	Addresses []common.Address `json:"address"`
	Topics    [][]common.Hash  `json:"topics"`
}

// EthAPI is the subset of the eth namespace used by the client.
// This was done because the ethapi package of go-ethereum is internal
// and there is no easy way to generate mocks from internal modules.
type EthAPI interface {
	ChainId(ctx context.Context) (*hexutil.Big, error)
	BlockNumber(ctx context.Context) (hexutil.Uint64, error)
	GasPrice(ctx context.Context) (*hexutil.Big, error)
	MaxPriorityFeePerGas(ctx context.Context) (*hexutil.Big, error)
	EstimateGas(ctx context.Context, args CallArgs) (hexutil.Uint64, error)
	Call(ctx context.Context, args CallArgs, block string) (hexutil.Bytes, error)
	GetTransactionCount(ctx context.Context, address common.Address, block string) (*hexutil.Uint64, error)
	GetBalance(ctx context.Context, address common.Address, block string) (*hexutil.Big, error)
	GetCode(ctx context.Context, address common.Address, block string) (hexutil.Bytes, error)
	GetBlockByNumber(ctx context.Context, number string, fullTx bool) (*types.Header, error)
	GetBlockByHash(ctx context.Context, hash common.Hash, fullTx bool) (*types.Header, error)
	GetTransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error)
	GetTransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	GetLogs(ctx context.Context, crit FilterArgs) ([]types.Log, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	Sign(ctx context.Context, address common.Address, data hexutil.Bytes) (hexutil.Bytes, error)
	SendTransaction(ctx context.Context, args CallArgs) (common.Hash, error)
	SendRawTransaction(ctx context.Context, encodedTx hexutil.Bytes) (common.Hash, error)
}

// Header returns a header that survives a JSON round trip.
func Header(number uint64, baseFee *big.Int) *types.Header {
	return &types.Header{
		ParentHash:  common.Hash{},
		UncleHash:   types.EmptyUncleHash,
		Root:        types.EmptyRootHash,
		TxHash:      types.EmptyTxsHash,
		ReceiptHash: types.EmptyReceiptsHash,
		Difficulty:  new(big.Int),
		Number:      new(big.Int).SetUint64(number),
		GasLimit:    30000000,
		Time:        number * 12,
		BaseFee:     baseFee,
	}
}
