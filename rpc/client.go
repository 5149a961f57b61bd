package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ethereum/go-ethereum/core/vm"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/status-im/ethfacade/circuitbreaker"
	"github.com/status-im/ethfacade/logutils"
	"github.com/status-im/ethfacade/metrics"
	"github.com/status-im/ethfacade/params"
)

// List of RPC client errors.
var (
	ErrClientClosed = errors.New("rpc client is closed")
	ErrNoProviders  = errors.New("no rpc providers configured")
)

// Caller is the part of the transport used by accounts, the explorer and the trackers.
type Caller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Handler defines handler for RPC methods.
type Handler func(context.Context, ...interface{}) (interface{}, error)

// Client is a JSON-RPC client over an ordered list of providers.
// Every call goes through a circuit breaker that falls back to the next
// provider when one fails, and through an optional rate limiter.
//
// Client is safe for concurrent use.
type Client struct {
	sync.RWMutex

	id        string
	providers []*Provider
	closed    bool

	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	callTimeout    time.Duration

	handlersMx sync.RWMutex       // mx guards handlers
	handlers   map[string]Handler // locally registered handlers
	logger     *zap.Logger
}

// NewClient dials every upstream URL of the config.
func NewClient(ctx context.Context, config *params.ClientConfig) (*Client, error) {
	urls := config.UpstreamConfig.URLs()
	clients := make([]*gethrpc.Client, 0, len(urls))
	for _, url := range urls {
		client, err := gethrpc.DialContext(ctx, url)
		if err != nil {
			for _, c := range clients {
				c.Close()
			}
			return nil, fmt.Errorf("dial upstream server %s: %w", url, err)
		}
		clients = append(clients, client)
	}
	return newClient(config, urls, clients)
}

// NewClientWithProviders wraps already connected clients, e.g. in-process ones.
// The first client is the main provider, the rest are fallbacks.
func NewClientWithProviders(config *params.ClientConfig, clients ...*gethrpc.Client) (*Client, error) {
	urls := make([]string, len(clients))
	for i := range clients {
		urls[i] = fmt.Sprintf("inproc://%d", i)
	}
	return newClient(config, urls, clients)
}

func newClient(config *params.ClientConfig, urls []string, clients []*gethrpc.Client) (*Client, error) {
	if len(clients) == 0 {
		return nil, ErrNoProviders
	}

	c := &Client{
		id:       uuid.New().String(),
		handlers: make(map[string]Handler),
		circuitBreaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{
			Timeout:                config.CircuitBreaker.Timeout,
			MaxConcurrentRequests:  config.CircuitBreaker.MaxConcurrentRequests,
			RequestVolumeThreshold: config.CircuitBreaker.RequestVolumeThreshold,
			SleepWindow:            config.CircuitBreaker.SleepWindow,
			ErrorPercentThreshold:  config.CircuitBreaker.ErrorPercentThreshold,
		}),
		callTimeout: config.RPCCallTimeout,
		logger:      logutils.ZapLogger().Named("rpc.Client"),
	}
	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.RequestsPerSecond)
	}

	for i, client := range clients {
		c.providers = append(c.providers, newProvider(c.id, i, urls[i], client))
	}

	return c, nil
}

// Providers returns a copy of the provider list in priority order.
func (c *Client) Providers() []Provider {
	c.RLock()
	defer c.RUnlock()

	providers := make([]Provider, len(c.providers))
	for i, p := range c.providers {
		providers[i] = *p
	}
	return providers
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// If there are any local handlers registered for this call, they will handle it.
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	// check locally registered handlers first
	if handler, ok := c.handler(method); ok {
		metrics.TransportCalls.WithLabelValues(method, "local").Inc()
		return c.callMethod(ctx, result, handler, args...)
	}

	return c.CallContextIgnoringLocalHandlers(ctx, result, method, args...)
}

// CallContextIgnoringLocalHandlers performs a JSON-RPC call against the providers
// even if a local handler is registered for the method.
func (c *Client) CallContextIgnoringLocalHandlers(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	providers, err := c.activeProviders()
	if err != nil {
		return err
	}

	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	var (
		mu      sync.Mutex
		answers = make(map[string]json.RawMessage, len(providers))
	)
	cmd := circuitbreaker.NewCommand(ctx, nil)
	for _, p := range providers {
		provider := p
		cmd.Add(circuitbreaker.NewFunctor(func(ctx context.Context) error {
			var raw json.RawMessage
			if err := provider.client.CallContext(ctx, &raw, method, args...); err != nil {
				return classify(err)
			}
			mu.Lock()
			answers[provider.circuit] = raw
			mu.Unlock()
			return nil
		}, provider.circuit))
	}

	start := time.Now()
	res := c.circuitBreaker.Execute(cmd)
	metrics.TransportLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if res.Error() != nil {
		metrics.TransportCalls.WithLabelValues(method, "error").Inc()
		c.logger.Debug("rpc call failed", zap.String("method", method), zap.String("circuit", res.Circuit()), zap.Error(res.Error()))
		return res.Error()
	}
	metrics.TransportCalls.WithLabelValues(method, "ok").Inc()

	if result == nil {
		return nil
	}
	mu.Lock()
	raw := answers[res.Circuit()]
	mu.Unlock()
	return json.Unmarshal(raw, result)
}

// BatchCallContext sends all given requests as a single batch to the first
// provider that answers.
func (c *Client) BatchCallContext(ctx context.Context, b []gethrpc.BatchElem) error {
	providers, err := c.activeProviders()
	if err != nil {
		return err
	}

	ctx, cancel, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	cmd := circuitbreaker.NewCommand(ctx, nil)
	for _, p := range providers {
		provider := p
		cmd.Add(circuitbreaker.NewFunctor(func(ctx context.Context) error {
			return classify(provider.client.BatchCallContext(ctx, b))
		}, provider.circuit))
	}
	return c.circuitBreaker.Execute(cmd).Error()
}

// Request performs a call and returns the raw JSON result.
func (c *Client) Request(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.CallContext(ctx, &result, method, args...); err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterHandler registers local handler for specific RPC method.
//
// If method is registered, it will be executed with given handler and
// never routed to the upstream servers.
func (c *Client) RegisterHandler(method string, handler Handler) {
	c.handlersMx.Lock()
	defer c.handlersMx.Unlock()

	c.handlers[method] = handler
}

// UnregisterHandler removes a previously registered local handler.
func (c *Client) UnregisterHandler(method string) {
	c.handlersMx.Lock()
	defer c.handlersMx.Unlock()

	delete(c.handlers, method)
}

// Close releases every provider connection. Calls made afterwards fail with ErrClientClosed.
func (c *Client) Close() {
	c.Lock()
	defer c.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for _, p := range c.providers {
		p.client.Close()
	}
	c.logger.Debug("rpc client closed", zap.Int("providers", len(c.providers)))
}

func (c *Client) activeProviders() ([]*Provider, error) {
	c.RLock()
	defer c.RUnlock()

	if c.closed {
		return nil, ErrClientClosed
	}
	return c.providers, nil
}

func (c *Client) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}
	if _, ok := ctx.Deadline(); !ok && c.callTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}

// callMethod calls registered RPC handler with given args and pointer to result.
func (c *Client) callMethod(ctx context.Context, result interface{}, handler Handler, args ...interface{}) error {
	response, err := handler(ctx, args...)
	if err != nil {
		return err
	}

	// if result is nil, just ignore result -
	// the same way as gethrpc.CallContext() caller would expect
	if result == nil {
		return nil
	}

	return setResultFromRPCResponse(result, response)
}

// handler is a concurrently safe method to get registered handler by name.
func (c *Client) handler(method string) (Handler, bool) {
	c.handlersMx.RLock()
	defer c.handlersMx.RUnlock()
	handler, ok := c.handlers[method]
	return handler, ok
}

// setResultFromRPCResponse goes through JSON so that local handlers produce
// exactly what a remote node would.
func setResultFromRPCResponse(result, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("invalid result type: %w", err)
	}
	return json.Unmarshal(data, result)
}

// vmErrors are EVM failures reported by the node. Another provider would
// execute the same code and fail the same way.
var vmErrors = []error{
	vm.ErrOutOfGas,
	vm.ErrCodeStoreOutOfGas,
	vm.ErrDepth,
	vm.ErrInsufficientBalance,
	vm.ErrContractAddressCollision,
	vm.ErrExecutionReverted,
	vm.ErrMaxCodeSizeExceeded,
	vm.ErrInvalidJump,
	vm.ErrWriteProtection,
	vm.ErrReturnDataOutOfBounds,
	vm.ErrGasUintOverflow,
	vm.ErrInvalidCode,
	vm.ErrNonceUintOverflow,
}

// errCodeReverted is the JSON-RPC error code geth uses for reverts.
const errCodeReverted = 3

func isVMError(err error) bool {
	if strings.HasPrefix(err.Error(), "execution reverted") {
		return true
	}
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == errCodeReverted {
		return true
	}
	for _, vmError := range vmErrors {
		if errors.Is(err, vmError) || err.Error() == vmError.Error() {
			return true
		}
	}
	return false
}

// classify marks VM errors as permanent so they stop the fallback chain.
// Any other failure, including node errors like "header not found", moves on
// to the next provider.
func classify(err error) error {
	if err != nil && isVMError(err) {
		return circuitbreaker.Permanent(err)
	}
	return err
}
