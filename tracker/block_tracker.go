package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"

	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/params"
	"github.com/status-im/ethfacade/rpc"
)

// BlockTracker polls the latest block number and notifies subscribers when it grows.
type BlockTracker struct {
	client   rpc.Caller
	interval time.Duration
	timeout  time.Duration

	feed event.Feed

	mu     sync.RWMutex
	latest uint64

	startOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	log       *zap.Logger
}

// NewBlockTracker polls every interval. A non-positive interval falls back to
// params.DefaultBlockPollInterval.
func NewBlockTracker(client rpc.Caller, interval time.Duration) *BlockTracker {
	if interval <= 0 {
		interval = params.DefaultBlockPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BlockTracker{
		client:   client,
		interval: interval,
		timeout:  interval,
		ctx:      ctx,
		cancel:   cancel,
		log:      logutils.ZapLogger().Named("tracker.BlockTracker"),
	}
}

// Start begins polling. It is called implicitly by Subscribe.
func (t *BlockTracker) Start() {
	t.startOnce.Do(func() {
		t.wg.Add(1)
		go t.loop()
	})
}

// Latest returns the highest block number seen so far, zero before the first poll.
func (t *BlockTracker) Latest() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest
}

// Subscribe delivers every new block number to ch. Slow receivers block the
// tracker, so ch should be buffered.
func (t *BlockTracker) Subscribe(ch chan<- uint64) event.Subscription {
	sub := t.feed.Subscribe(ch)
	t.Start()
	return sub
}

// Poll fetches the latest block number once and notifies subscribers if it grew.
func (t *BlockTracker) Poll(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	if err := t.client.CallContext(ctx, &result, "eth_blockNumber"); err != nil {
		return 0, err
	}
	number := uint64(result)

	t.mu.Lock()
	grew := number > t.latest
	if grew {
		t.latest = number
	}
	t.mu.Unlock()

	if grew {
		t.feed.Send(number)
	}
	return number, nil
}

// Stop ends polling. Subscriptions stay valid but receive nothing more.
func (t *BlockTracker) Stop() {
	t.cancel()
	t.wg.Wait()
}

func (t *BlockTracker) loop() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		t.pollOnce()
		select {
		case <-ticker.C:
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *BlockTracker) pollOnce() {
	if t.ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(t.ctx, t.timeout)
	defer cancel()

	number, err := t.Poll(ctx)
	if err != nil {
		t.log.Warn("failed to poll block number", zap.Error(err))
		return
	}
	t.log.Debug("polled block number", zap.Uint64("number", number))
}
