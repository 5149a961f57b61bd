package transactions

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/rpc"
	"github.com/status-im/ethfacade/signer"
)

const (
	defaultGas = 90000

	gasPriceKey = "gasPrice"
)

// Transactor fills, signs and propagates transactions for locally held keys.
// It uses upstream to propagate transactions to the Ethereum network.
type Transactor struct {
	rpcWrapper *rpcWrapper
	nonce      *Nonce

	chainIDMu sync.Mutex
	chainID   uint64

	gasPrices *ttlcache.Cache[string, *big.Int]
	log       *zap.Logger
}

// NewTransactor returns a new Transactor. A zero chainID is asked from the node on first use.
func NewTransactor(client rpc.Caller, chainID uint64, gasPriceTTL time.Duration) *Transactor {
	return &Transactor{
		rpcWrapper: newRPCWrapper(client),
		nonce:      NewNonce(),
		chainID:    chainID,
		gasPrices:  ttlcache.New[string, *big.Int](ttlcache.WithTTL[string, *big.Int](gasPriceTTL)),
		log:        logutils.ZapLogger().Named("transactions.Transactor"),
	}
}

// ChainID returns the configured chain id, asking the node once when none was set.
func (t *Transactor) ChainID(ctx context.Context) (*big.Int, error) {
	t.chainIDMu.Lock()
	defer t.chainIDMu.Unlock()

	if t.chainID != 0 {
		return new(big.Int).SetUint64(t.chainID), nil
	}
	chainID, err := t.rpcWrapper.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain id")
	}
	t.chainID = chainID.Uint64()
	return chainID, nil
}

// NextNonce locks from and returns the nonce for its next transaction.
func (t *Transactor) NextNonce(ctx context.Context, from common.Address) (uint64, UnlockNonceFunc, error) {
	chainID, err := t.ChainID(ctx)
	if err != nil {
		return 0, nil, err
	}
	return t.nonce.Next(ctx, t.rpcWrapper, chainID.Uint64(), from)
}

// SuggestGasPrice returns the node's gas price, reused for the configured TTL.
func (t *Transactor) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if item := t.gasPrices.Get(gasPriceKey); item != nil {
		return new(big.Int).Set(item.Value()), nil
	}
	gasPrice, err := t.rpcWrapper.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas price")
	}
	t.gasPrices.Set(gasPriceKey, gasPrice, ttlcache.DefaultTTL)
	return new(big.Int).Set(gasPrice), nil
}

// Fill completes args with chain id, nonce, fees and gas and builds the unsigned
// transaction. The nonce of args.From stays locked until unlock is called.
func (t *Transactor) Fill(ctx context.Context, args SendTxArgs) (tx *gethtypes.Transaction, unlock UnlockNonceFunc, err error) {
	if !args.Valid() {
		return nil, nil, ErrInvalidSendTxArgs
	}

	chainID, err := t.ChainID(ctx)
	if err != nil {
		return nil, nil, err
	}

	nonce, release, err := t.nonce.Next(ctx, t.rpcWrapper, chainID.Uint64(), args.From)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get nonce")
	}
	defer func() {
		if err != nil {
			release(false, 0)
		}
	}()
	if args.Nonce != nil {
		nonce = uint64(*args.Nonce)
	}

	if err = t.fillFees(ctx, &args); err != nil {
		return nil, nil, err
	}

	var gas uint64
	if args.Gas != nil {
		gas = uint64(*args.Gas)
	} else {
		gas, err = t.rpcWrapper.EstimateGas(ctx, args.ToCallMsg())
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to estimate gas")
		}
		if gas < defaultGas {
			t.log.Info("default gas will be used because estimated is lower", zap.Uint64("estimated", gas), zap.Uint64("default", defaultGas))
			gas = defaultGas
		}
	}

	tx = t.buildTransaction(chainID, nonce, gas, args)
	return tx, release, nil
}

// SendTransaction fills args, signs the result with s and propagates it.
// An empty From is taken from the signer.
func (t *Transactor) SendTransaction(ctx context.Context, args SendTxArgs, s signer.Signer) (hash common.Hash, err error) {
	if args.From == (common.Address{}) {
		args.From = s.Address()
	}
	if args.From != s.Address() {
		return hash, ErrInvalidTxSender
	}

	tx, unlock, err := t.Fill(ctx, args)
	if err != nil {
		return hash, err
	}
	defer func() {
		unlock(err == nil, tx.Nonce())
	}()

	chainID, err := t.ChainID(ctx)
	if err != nil {
		return hash, err
	}
	signedTx, err := s.SignTx(tx, chainID)
	if err != nil {
		return hash, errors.Wrap(err, "failed to sign transaction")
	}

	return t.SendRawTransaction(ctx, signedTx)
}

// SendRawTransaction submits an already signed transaction.
func (t *Transactor) SendRawTransaction(ctx context.Context, signedTx *gethtypes.Transaction) (common.Hash, error) {
	if err := t.rpcWrapper.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}

func (t *Transactor) fillFees(ctx context.Context, args *SendTxArgs) error {
	if args.GasPrice != nil {
		return nil
	}

	if !args.IsDynamicFeeTx() {
		baseFee, err := t.rpcWrapper.LatestBaseFee(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get latest block")
		}
		if baseFee == nil {
			gasPrice, err := t.SuggestGasPrice(ctx)
			if err != nil {
				return err
			}
			args.GasPrice = (*hexutil.Big)(gasPrice)
			return nil
		}
		return t.fillDynamicFees(ctx, args, baseFee)
	}

	if args.MaxFeePerGas == nil {
		baseFee, err := t.rpcWrapper.LatestBaseFee(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get latest block")
		}
		if baseFee == nil {
			baseFee = new(big.Int)
		}
		return t.fillDynamicFees(ctx, args, baseFee)
	}
	return t.fillDynamicFees(ctx, args, nil)
}

// fillDynamicFees sets the tip from the node when missing and the fee cap to
// twice the base fee plus the tip.
func (t *Transactor) fillDynamicFees(ctx context.Context, args *SendTxArgs, baseFee *big.Int) error {
	if args.MaxPriorityFeePerGas == nil {
		tip, err := t.rpcWrapper.SuggestGasTipCap(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to suggest gas tip")
		}
		args.MaxPriorityFeePerGas = (*hexutil.Big)(tip)
	}
	if args.MaxFeePerGas == nil {
		feeCap := new(big.Int).Mul(baseFee, big.NewInt(2))
		feeCap.Add(feeCap, args.MaxPriorityFeePerGas.ToInt())
		args.MaxFeePerGas = (*hexutil.Big)(feeCap)
	}
	return nil
}

func (t *Transactor) buildTransaction(chainID *big.Int, nonce uint64, gas uint64, args SendTxArgs) *gethtypes.Transaction {
	var txData gethtypes.TxData

	value := (*big.Int)(args.Value)
	if value == nil {
		value = new(big.Int)
	}

	if args.IsDynamicFeeTx() {
		txData = &gethtypes.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			Gas:       gas,
			GasTipCap: (*big.Int)(args.MaxPriorityFeePerGas),
			GasFeeCap: (*big.Int)(args.MaxFeePerGas),
			To:        args.To,
			Value:     value,
			Data:      args.GetInput(),
		}
	} else {
		txData = &gethtypes.LegacyTx{
			Nonce:    nonce,
			GasPrice: (*big.Int)(args.GasPrice),
			Gas:      gas,
			To:       args.To,
			Value:    value,
			Data:     args.GetInput(),
		}
	}

	if args.To != nil {
		t.logNewTx(args, gas, value)
	} else {
		t.logNewContract(args, gas, value, nonce)
	}
	return gethtypes.NewTx(txData)
}

func (t *Transactor) logNewTx(args SendTxArgs, gas uint64, value *big.Int) {
	t.log.Info("New transaction",
		zap.Stringer("From", args.From),
		zap.Stringer("To", args.To),
		zap.Uint64("Gas", gas),
		zap.Stringer("GasPrice", args.GasPrice),
		zap.Stringer("MaxFeePerGas", args.MaxFeePerGas),
		zap.Stringer("Value", value),
	)
}

func (t *Transactor) logNewContract(args SendTxArgs, gas uint64, value *big.Int, nonce uint64) {
	t.log.Info("New contract",
		zap.Stringer("From", args.From),
		zap.Uint64("Gas", gas),
		zap.Stringer("GasPrice", args.GasPrice),
		zap.Stringer("MaxFeePerGas", args.MaxFeePerGas),
		zap.Stringer("Value", value),
		zap.Stringer("Contract address", crypto.CreateAddress(args.From, nonce)),
	)
}
