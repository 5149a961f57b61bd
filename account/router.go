package account

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/metrics"
	"github.com/status-im/ethfacade/transactions"
)

// Dispatch targets reported in metrics.
const (
	targetFront    = "front"
	targetFallback = "fallback"
	targetRejected = "rejected"
)

// Router sends every operation to the front of the registry. Calls and gas
// estimates fall back to a readonly account when the registry is empty;
// signing and sending are rejected instead.
type Router struct {
	registry *Registry
	fallback Account
	log      *zap.Logger
}

func NewRouter(registry *Registry, fallback Account) *Router {
	return &Router{
		registry: registry,
		fallback: fallback,
		log:      logutils.ZapLogger().Named("account.Router"),
	}
}

// Target returns the account op is dispatched to.
func (r *Router) Target(op Operation) (Account, error) {
	front, ok := r.registry.Front()
	if ok {
		if !front.Capabilities().Has(op.Capability()) {
			r.record(op, targetRejected, front.ID())
			return nil, notSupported(op, front.ID())
		}
		r.record(op, targetFront, front.ID())
		return front, nil
	}

	switch op {
	case OpSign:
		r.record(op, targetRejected, "")
		return nil, ErrSignAccountRequired
	case OpSend:
		r.record(op, targetRejected, "")
		return nil, ErrSendAccountRequired
	}
	r.record(op, targetFallback, r.fallback.ID())
	return r.fallback, nil
}

func (r *Router) Sign(ctx context.Context, message []byte) (hexutil.Bytes, error) {
	a, err := r.Target(OpSign)
	if err != nil {
		return nil, err
	}
	return a.Sign(ctx, message)
}

func (r *Router) Send(ctx context.Context, args transactions.SendTxArgs) (common.Hash, error) {
	a, err := r.Target(OpSend)
	if err != nil {
		return common.Hash{}, err
	}
	return a.Send(ctx, args)
}

func (r *Router) Call(ctx context.Context, msg ethereum.CallMsg, block *big.Int) (hexutil.Bytes, error) {
	a, err := r.Target(OpCall)
	if err != nil {
		return nil, err
	}
	return a.Call(ctx, msg, block)
}

func (r *Router) Gas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	a, err := r.Target(OpGas)
	if err != nil {
		return 0, err
	}
	return a.Gas(ctx, msg)
}

func (r *Router) record(op Operation, target, id string) {
	metrics.DispatchCounter.WithLabelValues(string(op), target).Inc()
	r.log.Debug("dispatch", zap.String("operation", string(op)), zap.String("target", target), zap.String("account", id))
}
