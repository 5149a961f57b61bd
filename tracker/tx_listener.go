package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
)

const maxReceiptPollInterval = 30 * time.Second

var (
	ErrListenerStopped = errors.New("transaction listener stopped")
	errNotMined        = errors.New("transaction not mined yet")
)

// TxListener waits for transactions to be mined.
type TxListener struct {
	client          rpc.Caller
	initialInterval time.Duration

	mu      sync.Mutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *zap.Logger
}

func NewTxListener(client rpc.Caller, initialInterval time.Duration) *TxListener {
	if initialInterval <= 0 {
		initialInterval = params.DefaultReceiptPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TxListener{
		client:          client,
		initialInterval: initialInterval,
		ctx:             ctx,
		cancel:          cancel,
		log:             logutils.ZapLogger().Named("tracker.TxListener"),
	}
}

// WaitMined polls the receipt of hash with exponential backoff until it exists,
// ctx is done or the listener is stopped. Errors returned by the node end the wait.
func (l *TxListener) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil, ErrListenerStopped
	}
	l.wg.Add(1)
	l.mu.Unlock()
	defer l.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.ctx, cancel)
	defer stop()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval
	b.MaxInterval = maxReceiptPollInterval
	b.MaxElapsedTime = 0

	receipt, err := backoff.RetryNotifyWithData(func() (*types.Receipt, error) {
		var r *types.Receipt
		err := l.client.CallContext(ctx, &r, "eth_getTransactionReceipt", hash)
		if err != nil {
			var rpcErr gethrpc.Error
			if errors.As(err, &rpcErr) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if r == nil {
			return nil, errNotMined
		}
		return r, nil
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		l.log.Debug("receipt not available", zap.Stringer("hash", hash), zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		if l.ctx.Err() != nil {
			return nil, ErrListenerStopped
		}
		return nil, err
	}
	return receipt, nil
}

// Stop aborts outstanding waits with ErrListenerStopped and waits for them to return.
func (l *TxListener) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	l.cancel()
	l.wg.Wait()
}
